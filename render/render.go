// Package render turns a fetched body into displayable text.
package render

import (
	"io"
	"strings"
	"unicode"
)

// entities maps the character references that are decoded. Any other
// name is written back as-is.
var entities = map[string]string{
	"lt": "<",
	"gt": ">",
}

// Text strips markup from body and decodes &lt; and &gt;.
//
// Everything between '<' and '>' is dropped. Outside tags, "&name;" with an
// alphanumeric name is replaced by its entity when known and echoed
// otherwise. An '&' that does not start such a reference is kept literally.
func Text(body string) string {
	var sb strings.Builder
	sb.Grow(len(body))

	runes := []rune(body)
	inTag := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case inTag:
		case r == '&':
			name, end, ok := entityName(runes, i)
			if !ok {
				sb.WriteRune('&')
				continue
			}
			if decoded, known := entities[name]; known {
				sb.WriteString(decoded)
			} else {
				sb.WriteString("&" + name + ";")
			}
			i = end
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// entityName scans the reference starting at runes[start] == '&'. It
// returns the name and the index of the closing ';'.
func entityName(runes []rune, start int) (string, int, bool) {
	i := start + 1
	for i < len(runes) && isAlnum(runes[i]) {
		i++
	}
	if i == start+1 || i >= len(runes) || runes[i] != ';' {
		return "", 0, false
	}
	return string(runes[start+1 : i]), i, true
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Show writes the rendered form of body to w.
func Show(w io.Writer, body string) error {
	_, err := io.WriteString(w, Text(body))
	return err
}

// Source writes body to w unmodified, as requested by view-source.
func Source(w io.Writer, body string) error {
	_, err := io.WriteString(w, body)
	return err
}

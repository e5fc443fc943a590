package fetcher

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// Status is the parsed status line of a response.
type Status struct {
	Version string
	Code    string
	Reason  string
}

func (s Status) String() string {
	if s.Version == "" {
		return ""
	}
	return s.Version + " " + s.Code + " " + s.Reason
}

// Response is a decoded HTTP response. Headers are checked during decoding
// and then dropped.
type Response struct {
	Status Status
	Body   string
}

// Header keys whose presence means the body cannot be read as-is.
var unsupportedHeaders = []string{"transfer-encoding", "content-encoding"}

// ReadResponse decodes a status line, a header block and the body from r.
// The body is everything up to end of stream.
//
// Malformed input and unsupported encodings yield an error wrapping
// ErrProtocol. Errors from r are returned unchanged.
func ReadResponse(r *bufio.Reader) (*Response, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if strings.TrimSpace(line) == "" {
		return nil, protocolError("empty status line")
	}
	status, perr := parseStatusLine(line)
	if perr != nil {
		return nil, perr
	}

	// A stream that ends before the blank line simply has no body.
	headers := make(map[string]string)
	for err == nil {
		line, err = r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, protocolError("header line %q has no colon", line)
		}
		headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	for _, key := range unsupportedHeaders {
		if value, ok := headers[key]; ok {
			return nil, protocolError("unsupported %s: %s", key, value)
		}
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(body) {
		return nil, protocolError("body is not valid UTF-8")
	}

	return &Response{Status: status, Body: string(body)}, nil
}

// parseStatusLine splits off version and code; the reason phrase is the
// remainder with its inner spacing intact.
func parseStatusLine(line string) (Status, error) {
	line = strings.TrimSpace(line)
	version, rest, _ := strings.Cut(line, " ")
	code, reason, _ := strings.Cut(strings.TrimLeft(rest, " "), " ")
	reason = strings.TrimSpace(reason)
	if version == "" || code == "" || reason == "" {
		return Status{}, protocolError("malformed status line %q", line)
	}
	return Status{Version: version, Code: code, Reason: reason}, nil
}

package fetcher

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"textbrowse/locator"
)

// readData returns the payload of a data locator verbatim. No percent
// decoding and no media-type handling is done.
func readData(loc locator.Locator) (string, error) {
	_, payload, err := SplitData(loc.Path())
	if err != nil {
		return "", err
	}
	return payload, nil
}

// SplitData splits a "media-type,payload" string at its first comma.
func SplitData(path string) (mediaType, payload string, err error) {
	mediaType, payload, ok := strings.Cut(path, ",")
	if !ok {
		return "", "", fmt.Errorf("%w: data %q has no comma", locator.ErrMalformed, path)
	}
	return mediaType, payload, nil
}

// readFile reads the file named by loc as UTF-8 text.
func readFile(loc locator.Locator) (string, error) {
	f, err := os.Open(loc.Path())
	if err != nil {
		kind := ErrIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrNotFound
		}
		return "", &Error{Op: "open", Locator: loc.String(), Kind: kind, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &Error{Op: "read", Locator: loc.String(), Kind: ErrIO, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &Error{Op: "decode", Locator: loc.String(), Kind: ErrIO, Err: errors.New("file is not valid UTF-8")}
	}
	return string(data), nil
}

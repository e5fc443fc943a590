// Package locator parses resource locators into scheme, host, port and path.
package locator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Scheme is the access method of a locator.
type Scheme string

const (
	HTTP  Scheme = "http"
	HTTPS Scheme = "https"
	File  Scheme = "file"
	Data  Scheme = "data"
)

// viewSource wraps any other scheme and asks for the raw body.
const viewSource = "view-source"

var (
	// ErrMalformed is returned when the input cannot be split into its parts.
	ErrMalformed = errors.New("malformed locator")
	// ErrUnsupportedScheme is returned for a scheme outside http, https, file and data.
	ErrUnsupportedScheme = errors.New("unsupported scheme")
)

// DefaultPort returns the port used when none is given.
func (s Scheme) DefaultPort() uint16 {
	switch s {
	case HTTP:
		return 80
	case HTTPS:
		return 443
	}
	return 0
}

// Locator is a parsed resource address. The zero value is not valid; use Parse.
type Locator struct {
	scheme     Scheme
	viewSource bool
	host       string
	port       uint16
	path       string
}

func (l Locator) Scheme() Scheme   { return l.scheme }
func (l Locator) ViewSource() bool { return l.viewSource }
func (l Locator) Host() string     { return l.host }
func (l Locator) Port() uint16     { return l.port }
func (l Locator) Path() string     { return l.path }

// String re-serializes the locator. Default ports are omitted.
func (l Locator) String() string {
	var sb strings.Builder
	if l.viewSource {
		sb.WriteString(viewSource + ":")
	}
	sb.WriteString(string(l.scheme))
	switch l.scheme {
	case Data:
		sb.WriteString(":")
		sb.WriteString(l.path)
	case File:
		sb.WriteString(":///")
		sb.WriteString(l.path)
	default:
		sb.WriteString("://")
		sb.WriteString(l.host)
		if l.port != l.scheme.DefaultPort() {
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(int(l.port)))
		}
		sb.WriteString(l.path)
	}
	return sb.String()
}

// Parse splits raw into a Locator.
//
// The scheme is everything before the first colon. A "view-source:" prefix
// wraps another locator and only sets ViewSource on the result.
func Parse(raw string) (Locator, error) {
	token, rest, ok := strings.Cut(raw, ":")
	if !ok || token == "" {
		return Locator{}, fmt.Errorf("%w: %q has no scheme", ErrMalformed, raw)
	}

	scheme := strings.ToLower(token)
	if scheme == viewSource {
		inner, err := Parse(rest)
		if err != nil {
			return Locator{}, err
		}
		inner.viewSource = true
		return inner, nil
	}

	switch Scheme(scheme) {
	case Data:
		return parseData(rest)
	case File:
		return parseFile(rest)
	case HTTP, HTTPS:
		return parseNetwork(Scheme(scheme), rest)
	}
	return Locator{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, token)
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(raw string) Locator {
	l, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return l
}

func parseData(rest string) (Locator, error) {
	if !strings.Contains(rest, ",") {
		return Locator{}, fmt.Errorf("%w: data locator %q has no comma", ErrMalformed, rest)
	}
	return Locator{scheme: Data, path: rest}, nil
}

func parseFile(rest string) (Locator, error) {
	rest = strings.TrimPrefix(rest, "//")
	path := strings.TrimPrefix(rest, "/")
	if path == "" {
		return Locator{}, fmt.Errorf("%w: file locator has no path", ErrMalformed)
	}
	return Locator{scheme: File, path: path}, nil
}

func parseNetwork(scheme Scheme, rest string) (Locator, error) {
	rest = strings.TrimPrefix(rest, "//")
	if !strings.Contains(rest, "/") {
		rest += "/"
	}
	authority, path, _ := strings.Cut(rest, "/")

	host, port, err := splitAuthority(scheme, authority)
	if err != nil {
		return Locator{}, err
	}

	return Locator{
		scheme: scheme,
		host:   host,
		port:   port,
		path:   "/" + path,
	}, nil
}

func splitAuthority(scheme Scheme, authority string) (string, uint16, error) {
	host, portStr, hasPort := strings.Cut(authority, ":")
	if host == "" {
		return "", 0, fmt.Errorf("%w: missing host in %q", ErrMalformed, authority)
	}
	if !hasPort {
		return host, scheme.DefaultPort(), nil
	}
	if strings.Contains(portStr, ":") {
		return "", 0, fmt.Errorf("%w: bad host:port %q", ErrMalformed, authority)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return "", 0, fmt.Errorf("%w: invalid port %q", ErrMalformed, portStr)
	}
	return host, uint16(port), nil
}

package fetcher

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/net/idna"

	"textbrowse/locator"
)

// protocolVersion is the version written on the request line.
const protocolVersion = "HTTP/1.1"

// request opens a connection for loc, sends a GET and decodes the reply.
func (f *Fetcher) request(ctx context.Context, loc locator.Locator) (*Response, error) {
	log := zerolog.Ctx(ctx)

	host, err := asciiHost(loc.Host())
	if err != nil {
		return nil, &Error{Op: "dial", Locator: loc.String(), Kind: ErrConnection, Err: err}
	}
	addr := net.JoinHostPort(host, strconv.Itoa(int(loc.Port())))

	log.Debug().Str("addr", addr).Msg("Dialing")
	dialer := f.opts.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &Error{Op: "dial", Locator: loc.String(), Kind: ErrConnection, Err: err}
	}
	defer conn.Close()

	if loc.Scheme() == locator.HTTPS {
		tlsConn := tls.Client(conn, f.tlsConfig(host))
		defer tlsConn.Close()
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return nil, &Error{Op: "handshake", Locator: loc.String(), Kind: ErrConnection, Err: err}
		}
		log.Debug().Uint16("tls_version", tlsConn.ConnectionState().Version).Msg("TLS handshake complete")
		conn = tlsConn
	}

	if _, err := io.WriteString(conn, BuildRequest(host, loc.Path(), f.UserAgent())); err != nil {
		return nil, &Error{Op: "write", Locator: loc.String(), Kind: ErrConnection, Err: err}
	}

	resp, err := ReadResponse(bufio.NewReader(conn))
	if err != nil {
		return nil, &Error{Op: "read", Locator: loc.String(), Kind: kindOf(err), Err: err}
	}
	log.Debug().Str("status", resp.Status.String()).Msg("Response decoded")
	return resp, nil
}

// BuildRequest formats the GET request sent for path on host.
func BuildRequest(host, path, userAgent string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "GET %s %s\r\n", path, protocolVersion)
	fmt.Fprintf(&sb, "Host: %s\r\n", host)
	sb.WriteString("Connection: close\r\n")
	fmt.Fprintf(&sb, "User-Agent: %s\r\n", userAgent)
	sb.WriteString("\r\n")
	return sb.String()
}

func (f *Fetcher) tlsConfig(host string) *tls.Config {
	var cfg *tls.Config
	if f.opts.TLSConfig != nil {
		cfg = f.opts.TLSConfig.Clone()
	} else {
		cfg = &tls.Config{}
	}
	cfg.ServerName = host
	return cfg
}

// asciiHost converts an internationalized host name to its ASCII form.
// Plain ASCII hosts, including IP literals, pass through untouched.
func asciiHost(host string) (string, error) {
	if isASCII(host) {
		return host, nil
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("converting host %q: %w", host, err)
	}
	return ascii, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Package fetcher retrieves the body behind a locator over http, https, file or data.
package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"textbrowse/locator"
)

// DefaultUserAgent is sent when Options.UserAgent is empty.
const DefaultUserAgent = "textbrowse/1.0"

// Result contains the fetched body and metadata.
type Result struct {
	Body      string
	Locator   locator.Locator
	Status    Status // zero for file and data
	FetchTime time.Duration
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent string
	// TLSConfig is cloned for every https fetch. Nil means system roots.
	TLSConfig *tls.Config
	// Dialer opens TCP connections. Nil means a zero net.Dialer.
	Dialer *net.Dialer
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{UserAgent: DefaultUserAgent}
}

// Fetcher dispatches a locator to the matching transport. It keeps no
// state between fetches. The zero value uses DefaultOptions.
type Fetcher struct {
	opts Options
}

// New creates a fetcher, filling unset options with defaults.
func New(opts Options) *Fetcher {
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Dialer == nil {
		opts.Dialer = &net.Dialer{}
	}
	return &Fetcher{opts: opts}
}

// UserAgent returns the user agent sent with network requests.
func (f *Fetcher) UserAgent() string {
	if f.opts.UserAgent == "" {
		return DefaultUserAgent
	}
	return f.opts.UserAgent
}

// Fetch retrieves the body of loc. Every connection or file opened here is
// closed before Fetch returns.
//
// ctx bounds connection setup only; no timeout is applied otherwise.
func (f *Fetcher) Fetch(ctx context.Context, loc locator.Locator) (*Result, error) {
	start := time.Now()
	log := zerolog.Ctx(ctx).With().
		Str("fetch_id", uuid.NewString()).
		Str("scheme", string(loc.Scheme())).
		Logger()
	ctx = log.WithContext(ctx)

	result := &Result{Locator: loc}
	var err error
	switch loc.Scheme() {
	case locator.Data:
		result.Body, err = readData(loc)
	case locator.File:
		result.Body, err = readFile(loc)
	case locator.HTTP, locator.HTTPS:
		var resp *Response
		resp, err = f.request(ctx, loc)
		if err == nil {
			result.Body = resp.Body
			result.Status = resp.Status
		}
	default:
		err = fmt.Errorf("%w: %q", locator.ErrUnsupportedScheme, loc.Scheme())
	}
	if err != nil {
		log.Debug().Err(err).Msg("Fetch failed")
		return nil, err
	}

	result.FetchTime = time.Since(start)
	log.Debug().
		Int("bytes", len(result.Body)).
		Str("status", result.Status.String()).
		Dur("elapsed", result.FetchTime).
		Msg("Fetched")
	return result, nil
}

// kindOf maps a transport-level error to its failure kind.
func kindOf(err error) error {
	if errors.Is(err, ErrProtocol) {
		return ErrProtocol
	}
	return ErrConnection
}

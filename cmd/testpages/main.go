// Test pages fetches multiple locators through the full pipeline and
// reports how each one fared.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"textbrowse/fetcher"
	"textbrowse/locator"
	"textbrowse/render"
)

// Many real servers chunk or compress; those are expected to report a
// protocol error.
var testURLs = []string{
	"http://example.com",
	"https://example.com",
	"https://example.org/index.html",
	"view-source:http://example.com/",
	"data:text/html,<h1>Hello</h1>&lt;inline&gt;",
	"http://neverssl.com",
	"https://text.npr.org",
	"https://lite.cnn.com",
}

func main() {
	f := fetcher.New(fetcher.DefaultOptions())

	if len(os.Args) > 1 {
		// Single locator mode
		testURL(f, os.Args[1])
		return
	}

	for _, url := range testURLs {
		testURL(f, url)
		fmt.Println(strings.Repeat("=", 80))
	}
}

func testURL(f *fetcher.Fetcher, raw string) {
	fmt.Printf("Testing: %s\n", raw)

	loc, err := locator.Parse(raw)
	if err != nil {
		fmt.Printf("  ERROR parsing: %v\n", err)
		return
	}
	fmt.Printf("  Scheme: %s  Host: %q  Port: %d  Path: %s  ViewSource: %t\n",
		loc.Scheme(), loc.Host(), loc.Port(), loc.Path(), loc.ViewSource())

	res, err := f.Fetch(context.Background(), loc)
	if err != nil {
		fmt.Printf("  ERROR [%s]: %v\n", kindName(err), err)
		return
	}

	if res.Status.Version != "" {
		fmt.Printf("  Status: %s\n", res.Status)
	}
	fmt.Printf("  Body: %d bytes in %s\n", len(res.Body), res.FetchTime)

	text := res.Body
	if !loc.ViewSource() {
		text = render.Text(res.Body)
	}
	lines := nonBlankLines(text)
	fmt.Printf("  Rendered: %d non-blank lines\n", len(lines))
	for i, line := range lines {
		if i >= 5 {
			fmt.Printf("    ... and %d more\n", len(lines)-5)
			break
		}
		fmt.Printf("    %s\n", render.Truncate(line, 70))
	}
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func kindName(err error) string {
	switch {
	case errors.Is(err, fetcher.ErrProtocol):
		return "protocol"
	case errors.Is(err, fetcher.ErrConnection):
		return "connection"
	case errors.Is(err, fetcher.ErrNotFound):
		return "not found"
	case errors.Is(err, fetcher.ErrIO):
		return "io"
	case errors.Is(err, locator.ErrMalformed):
		return "malformed"
	}
	return "unknown"
}

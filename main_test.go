package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textbrowse/config"
	"textbrowse/fetcher"
	"textbrowse/locator"
)

func runArgs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunData(t *testing.T) {
	out, _, err := runArgs(t, "data:text/html,<p>A&lt;B</p>")
	require.NoError(t, err)
	assert.Equal(t, "A<B", out)
}

func TestRunViewSourceData(t *testing.T) {
	out, _, err := runArgs(t, "view-source:data:text/html,<p>A&lt;B</p>")
	require.NoError(t, err)
	assert.Equal(t, "<p>A&lt;B</p>", out)
}

func TestRunViewSourceFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.html")
	content := "<!DOCTYPE html>\n<html>\n<body>\n  <h1>Welcome &amp; hello</h1>\n  <p>x &lt; y</p>\n</body>\n</html>"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	out, _, err := runArgs(t, "view-source:file:///"+path)
	require.NoError(t, err)
	assert.Equal(t, content, out)

	out, _, err = runArgs(t, "file:///"+path)
	require.NoError(t, err)
	assert.Equal(t, "\n\n\n  Welcome &amp; hello\n  x < y\n\n", out)
}

func TestRunWrap(t *testing.T) {
	out, _, err := runArgs(t, "--width", "11", "data:,<p>hello world foo bar</p>")
	require.NoError(t, err)
	assert.Equal(t, "hello world\nfoo bar", out)

	out, _, err = runArgs(t, "--width", "5", "view-source:data:,hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", out, "view-source output is never wrapped")
}

func TestRunMissingLocator(t *testing.T) {
	_, stderr, err := runArgs(t)
	assert.ErrorIs(t, err, errMissingLocator)
	assert.Contains(t, stderr, "Usage: textbrowse")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want error
	}{
		{"no scheme", "example.com", locator.ErrMalformed},
		{"unsupported scheme", "ftp://example.com/", locator.ErrUnsupportedScheme},
		{"missing file", "file:///does/not/exist.html", fetcher.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runArgs(t, tt.arg)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, out)
		})
	}
}

func TestRunInitConfig(t *testing.T) {
	out, _, err := runArgs(t, "--init-config")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTOML(), out)
}

func TestRunHelp(t *testing.T) {
	out, _, err := runArgs(t, "-h")
	require.NoError(t, err)
	assert.Contains(t, out, "--user-agent")
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	out, stderr, err := runArgs(t, "-v", "data:,hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	assert.Contains(t, stderr, "Fetched")
	assert.Contains(t, stderr, "fetch_id=")
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"bogus\"\n"), 0644))

	_, _, err := runArgs(t, "--config", path, "data:,hi")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestRunBadFlagReportsOnce(t *testing.T) {
	out, stderr, err := runArgs(t, "--no-such-flag", "data:,hi")
	assert.ErrorContains(t, err, "unknown flag: --no-such-flag")
	assert.Empty(t, out)
	assert.Empty(t, stderr, "the caller prints parse errors")
}

// Textbrowse fetches a single locator and prints it as plain text.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"textbrowse/config"
	"textbrowse/fetcher"
	"textbrowse/locator"
	"textbrowse/render"
)

var errMissingLocator = errors.New("missing locator")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type options struct {
	configPath string
	initConfig bool
	wrap       bool
	width      int
	userAgent  string
	verbose    bool
	help       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *pflag.FlagSet, error) {
	var opts options
	flagSet := pflag.NewFlagSet("textbrowse", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "path to config file (default: ~/.config/textbrowse/config.toml)")
	flagSet.BoolVar(&opts.initConfig, "init-config", false, "print the default config and exit")
	flagSet.BoolVar(&opts.wrap, "wrap", false, "wrap rendered text to the terminal width")
	flagSet.IntVar(&opts.width, "width", 0, "wrap width in columns (implies --wrap)")
	flagSet.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header sent with http and https requests")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log fetch details to stderr")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return nil, flagSet, err
	}
	return &opts, flagSet, nil
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `textbrowse - fetch a locator and print it as text

Usage: textbrowse [options] <locator>

Locators:
  http://host[:port]/path
  https://host[:port]/path
  file:///relative/path, file:////absolute/path
  data:media-type,payload
  view-source:<any of the above>    print the raw body

Options:
%s`, flagSet.FlagUsages())
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, flagSet, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.help {
		printUsage(stdout, flagSet)
		return nil
	}
	if opts.initConfig {
		fmt.Fprint(stdout, config.DefaultTOML())
		return nil
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, opts, flagSet)

	logger, err := newLogger(stderr, cfg.Logging.Level)
	if err != nil {
		return err
	}
	ctx = logger.WithContext(ctx)

	if flagSet.NArg() == 0 {
		printUsage(stderr, flagSet)
		return errMissingLocator
	}
	loc, err := locator.Parse(flagSet.Arg(0))
	if err != nil {
		return err
	}
	logger.Debug().Stringer("locator", loc).Bool("view_source", loc.ViewSource()).Msg("Parsed locator")

	f := fetcher.New(fetcher.Options{UserAgent: cfg.Fetcher.UserAgent})
	logger.Debug().Str("user_agent", f.UserAgent()).Msg("Fetcher ready")
	result, err := f.Fetch(ctx, loc)
	if err != nil {
		return err
	}

	if loc.ViewSource() {
		return render.Source(stdout, result.Body)
	}
	if !cfg.Rendering.Wrap {
		return render.Show(stdout, result.Body)
	}
	width := cfg.Rendering.Width
	if opts.width == 0 {
		width = wrapWidth(stdout, width)
	}
	_, err = io.WriteString(stdout, render.Wrap(render.Text(result.Body), width))
	return err
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cfg *config.Config, opts *options, flagSet *pflag.FlagSet) {
	if flagSet.Changed("user-agent") {
		cfg.Fetcher.UserAgent = opts.userAgent
	}
	if opts.wrap {
		cfg.Rendering.Wrap = true
	}
	if opts.width > 0 {
		cfg.Rendering.Wrap = true
		cfg.Rendering.Width = opts.width
	}
	if opts.verbose {
		cfg.Logging.Level = zerolog.LevelDebugValue
	}
}

// wrapWidth prefers the terminal width of stdout, then the configured one.
func wrapWidth(stdout io.Writer, configured int) int {
	if f, ok := stdout.(*os.File); ok && render.IsTerminal(f) {
		if w, err := render.TerminalWidth(f); err == nil {
			return w
		}
	}
	return configured
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !render.IsTerminal(f)
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}).Level(lvl).With().Timestamp().Logger(), nil
}

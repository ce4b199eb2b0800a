// Package main is the entry point for swapsel.
//
// swapsel reads a document, selects byte ranges in it and swaps the text of
// the two non-empty selections.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/dshills/swapsel/internal/app"
	"github.com/dshills/swapsel/internal/engine/buffer"
	"github.com/dshills/swapsel/internal/engine/cursor"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK           = 0
	exitError        = 1
	exitNotSwappable = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// selectionList collects repeated -sel start:end flags in order.
type selectionList []cursor.Selection

func (s *selectionList) String() string {
	parts := make([]string, len(*s))
	for i, sel := range *s {
		parts[i] = fmt.Sprintf("%d:%d", sel.Anchor, sel.Head)
	}
	return strings.Join(parts, ",")
}

func (s *selectionList) Set(value string) error {
	startText, endText, ok := strings.Cut(value, ":")
	if !ok {
		return fmt.Errorf("selection %q must be start:end", value)
	}
	start, err := parseOffset(startText)
	if err != nil {
		return fmt.Errorf("selection %q: %w", value, err)
	}
	end, err := parseOffset(endText)
	if err != nil {
		return fmt.Errorf("selection %q: %w", value, err)
	}
	*s = append(*s, cursor.NewSelection(start, end))
	return nil
}

func parseOffset(s string) (buffer.ByteOffset, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("offset %d is negative", n)
	}
	return n, nil
}

type options struct {
	app        app.Options
	selections selectionList
	scriptPath string
	check      bool
	write      bool
	version    bool
	file       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var opts options

	fs := flag.NewFlagSet("swapsel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file")
	fs.Var(&opts.selections, "sel", "Selection as start:end byte offsets (repeatable, in order)")
	fs.StringVar(&opts.scriptPath, "script", "", "Lua script to run instead of the built-in swap")
	fs.BoolVar(&opts.check, "check", false, "Exit 0 if the selections can be swapped, 2 if not")
	fs.BoolVar(&opts.write, "w", false, "Write the result back to the file instead of stdout")
	fs.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.version, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "swapsel - swap the text of two selections\n\n")
		fmt.Fprintf(stderr, "Usage: swapsel [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  swapsel -sel 0:3 -sel 8:11 notes.txt      Print notes.txt with both ranges swapped\n")
		fmt.Fprintf(stderr, "  swapsel -w -sel 0:3 -sel 8:11 notes.txt   Swap in place\n")
		fmt.Fprintf(stderr, "  echo 'foo bar' | swapsel -sel 0:3 -sel 4:7\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.file = fs.Arg(0)
	default:
		return nil, errors.New("at most one file may be given")
	}
	if opts.write && opts.file == "" {
		return nil, errors.New("-w requires a file")
	}
	return &opts, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if opts.version {
		fmt.Fprintf(stdout, "swapsel %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	opts.app.LogOutput = stderr
	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return exitError
	}
	defer application.LogMetrics()

	if err := openDocument(application, opts.file, stdin); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if len(opts.selections) > 0 {
		if err := application.Select(opts.selections...); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	if opts.check {
		if application.CanSwap() {
			return exitOK
		}
		return exitNotSwappable
	}

	if opts.scriptPath != "" {
		err = application.RunScriptFile(ctx, opts.scriptPath)
	} else {
		var swapped bool
		swapped, err = application.Swap()
		if err == nil && !swapped {
			application.Logger().Info("nothing to swap: need exactly two non-empty selections")
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if opts.write {
		err = application.Save()
	} else {
		_, err = application.WriteTo(stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

// openDocument opens file, or stdin when file is empty. An interactive
// terminal on stdin is refused.
func openDocument(application *app.Application, file string, stdin io.Reader) error {
	if file != "" {
		_, err := application.Open(file)
		return err
	}

	if f, ok := stdin.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return errors.New("no file given and stdin is a terminal")
		}
	}
	_, err := application.OpenReader("<stdin>", stdin)
	return err
}

// Command worddiff prints a word-level diff of two texts.
//
// Usage:
//
//	worddiff old.txt new.txt
//	worddiff -I "-_." old.txt new.txt
//	git show HEAD:file.go | worddiff --stdin file.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dacharyc/worddiff"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Exit codes
const (
	exitIdentical = 0 // texts are identical
	exitDiffer    = 1 // texts differ
	exitError     = 2 // error occurred
)

// cliFlags holds all parsed command-line flags
type cliFlags struct {
	identifierChars   *string
	noIdentifierChars *bool
	mergeChanges      *bool
	parallelThreshold *int
	noColor           *bool
	colorSpec         *string
	stdinMode         *bool
	help              *bool
	version           *bool
	startDelete       *string
	stopDelete        *string
	startInsert       *string
	stopInsert        *string
	noDeleted         *bool
	noInserted        *bool
	noCommon          *bool
	statistics        *bool
	check             *bool
	logLevel          *string
}

// defineFlags sets up all command-line flags with config defaults
func defineFlags(fs *flag.FlagSet, cfg config) cliFlags {
	_ = fs.String("profile", "", "use settings from ~/.worddiffrc.<profile>")

	f := cliFlags{
		identifierChars:   fs.StringP("identifier-chars", "I", cfg.identifierChars, "punctuation characters that belong to identifier words"),
		noIdentifierChars: fs.Bool("no-identifier-chars", cfg.noIdentifierChars, "only letters and digits form identifier words"),
		mergeChanges:      fs.BoolP("merge-changes", "M", cfg.mergeChanges, "merge adjacent deleted and inserted runs into one change"),
		parallelThreshold: fs.Int("parallel-threshold", cfg.parallelThreshold, "minimum words per side to diff halves concurrently (0 disables)"),
		noColor:           fs.Bool("no-color", cfg.noColor, "disable colored output"),
		colorSpec:         fs.StringP("color", "c", cfg.colorSpec, "set colors for deleted/inserted text (format: del_fg[:del_bg],ins_fg[:ins_bg])"),
		stdinMode:         fs.Bool("stdin", false, "read old text from stdin, new text from the argument"),
		help:              fs.BoolP("help", "h", false, "show help"),
		version:           fs.BoolP("version", "v", false, "show version"),
		startDelete:       fs.StringP("start-delete", "w", cfg.startDelete, "string to mark begin of deleted text"),
		stopDelete:        fs.StringP("stop-delete", "x", cfg.stopDelete, "string to mark end of deleted text"),
		startInsert:       fs.StringP("start-insert", "y", cfg.startInsert, "string to mark begin of inserted text"),
		stopInsert:        fs.StringP("stop-insert", "z", cfg.stopInsert, "string to mark end of inserted text"),
		noDeleted:         fs.BoolP("no-deleted", "1", cfg.noDeleted, "suppress printing of deleted words"),
		noInserted:        fs.BoolP("no-inserted", "2", cfg.noInserted, "suppress printing of inserted words"),
		noCommon:          fs.BoolP("no-common", "3", cfg.noCommon, "suppress printing of common words"),
		statistics:        fs.BoolP("statistics", "s", cfg.statistics, "print statistics"),
		check:             fs.Bool("check", cfg.check, "verify that the diff reconstructs both inputs"),
		logLevel:          fs.String("log-level", cfg.logLevel, "log level (debug, info, warning, error)"),
	}

	fs.Lookup("color").NoOptDefVal = "default"
	return f
}

func usage(fs *flag.FlagSet, w io.Writer) {
	name := fs.Name()
	fmt.Fprintf(w, "Usage: %s [options] old new\n", name)
	fmt.Fprintf(w, "       %s [options] --stdin new\n", name)
	fmt.Fprintf(w, "\nWord-level diff.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExit codes:\n")
	fmt.Fprintf(w, "  0  texts are identical\n")
	fmt.Fprintf(w, "  1  texts differ\n")
	fmt.Fprintf(w, "  2  error occurred\n")
}

func parseLogLevel(s string) (log.Level, error) {
	level, err := log.ParseLevel(s)
	if err != nil {
		return level, errors.Wrapf(err, "log level")
	}
	return level, nil
}

// readInputTexts reads the old and new text from files or stdin.
func readInputTexts(fs *flag.FlagSet, stdinMode bool, stdin io.Reader) (text1, text2 string, err error) {
	if stdinMode {
		if fs.NArg() < 1 {
			return "", "", errors.New("--stdin mode requires one file argument")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "reading stdin")
		}
		text2, err = readFile(fs.Arg(0))
		if err != nil {
			return "", "", err
		}
		return string(data), text2, nil
	}

	if fs.NArg() < 2 {
		return "", "", errors.New("requires two file arguments")
	}
	if text1, err = readFile(fs.Arg(0)); err != nil {
		return "", "", err
	}
	if text2, err = readFile(fs.Arg(1)); err != nil {
		return "", "", err
	}
	return text1, text2, nil
}

// readFile reads an entire file into a string
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(data), nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	configPath, err := findConfigFile(prescanProfile(args[1:]))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := defineFlags(fs, cfg)
	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		usage(fs, stderr)
		return exitError
	}

	if *f.version {
		fmt.Fprintf(stdout, "worddiff version %s\n", Version)
		return exitIdentical
	}
	if *f.help {
		usage(fs, stdout)
		return exitIdentical
	}

	level, err := parseLogLevel(*f.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	logger.SetLevel(level)
	if configPath != "" {
		logger.WithField("path", configPath).Debug("Loaded config")
	}

	deleteColor, insertColor, err := parseColorSpec(*f.colorSpec)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	text1, text2, err := readInputTexts(fs, *f.stdinMode, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	opts := worddiff.Options{
		IdentifierChars:   *f.identifierChars,
		NoIdentifierChars: *f.noIdentifierChars,
		MergeChanges:      *f.mergeChanges,
		ParallelThreshold: *f.parallelThreshold,
	}

	started := time.Now()
	result, err := worddiff.DiffStringsContext(ctx, text1, text2, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", errors.Wrap(err, "diff"))
		return exitError
	}
	st := result.Statistics()
	logger.WithFields(log.Fields{
		"old_words": st.OldWords,
		"new_words": st.NewWords,
		"chunks":    len(result.Chunks),
		"elapsed":   time.Since(started),
	}).Debug("Computed diff")

	if *f.check {
		if err := result.Validate(); err != nil {
			logger.WithField("cause", err).Error("Diff does not reconstruct its inputs")
			return exitError
		}
		logger.Debug("Diff reconstructs both inputs")
	}

	useColor := !*f.noColor && os.Getenv("NO_COLOR") == "" && (isTerminal(stdout) || *f.colorSpec != "")
	fmtOpts := formatOptions{
		startDelete: *f.startDelete,
		stopDelete:  *f.stopDelete,
		startInsert: *f.startInsert,
		stopInsert:  *f.stopInsert,
		noDeleted:   *f.noDeleted,
		noInserted:  *f.noInserted,
		noCommon:    *f.noCommon,
		useColor:    useColor,
		deleteColor: deleteColor,
		insertColor: insertColor,
	}
	fmt.Fprintln(stdout, formatResult(result, fmtOpts))

	if *f.statistics {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, formatStatistics(st))
	}

	if result.HasChanges() {
		return exitDiffer
	}
	return exitIdentical
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

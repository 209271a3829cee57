package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dacharyc/worddiff"
)

// ANSI escape code constants
const (
	ansiReset       = "\033[0m"
	ansiDeleteColor = "\033[0;31;1m" // bold red
	ansiInsertColor = "\033[0;32;1m" // bold green
)

// colorNames lists the ANSI colors in code order: red is 31 as a
// foreground and 41 as a background. A "bright" prefix adds 60.
var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// colorCode returns the escape sequence for a named color.
func colorCode(name string, background bool) (string, bool) {
	code := 30
	if background {
		code = 40
	}
	if base, ok := strings.CutPrefix(name, "bright"); ok {
		name = base
		code += 60
	}
	i := slices.Index(colorNames, name)
	if i < 0 {
		return "", false
	}
	return fmt.Sprintf("\033[%dm", code+i), true
}

// formatOptions configures diff output formatting.
type formatOptions struct {
	startDelete string
	stopDelete  string
	startInsert string
	stopInsert  string

	noDeleted  bool
	noInserted bool
	noCommon   bool

	// useColor replaces the text markers with deleteColor/insertColor.
	useColor    bool
	deleteColor string
	insertColor string
}

// parseColor parses "fg" or "fg:bg" into an ANSI escape sequence.
// The empty string means no color.
func parseColor(spec string) (string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", nil
	}

	parts := strings.SplitN(spec, ":", 2)
	fgName := strings.ToLower(strings.TrimSpace(parts[0]))

	var result string
	if fgName != "" {
		fg, ok := colorCode(fgName, false)
		if !ok {
			return "", fmt.Errorf("unknown color: %s", fgName)
		}
		result = fg
	}

	if len(parts) > 1 {
		bgName := strings.ToLower(strings.TrimSpace(parts[1]))
		if bgName != "" {
			bg, ok := colorCode(bgName, true)
			if !ok {
				return "", fmt.Errorf("unknown background color: %s", bgName)
			}
			result += bg
		}
	}

	return result, nil
}

// parseColorSpec parses "delete_color,insert_color". A missing insert
// color falls back to bold green; "" and "default" select both defaults.
func parseColorSpec(spec string) (deleteColor, insertColor string, err error) {
	if spec == "" || spec == "default" {
		return ansiDeleteColor, ansiInsertColor, nil
	}

	parts := strings.SplitN(spec, ",", 2)
	deleteColor, err = parseColor(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("delete color: %w", err)
	}

	insertColor = ansiInsertColor
	if len(parts) > 1 {
		insertColor, err = parseColor(parts[1])
		if err != nil {
			return "", "", fmt.Errorf("insert color: %w", err)
		}
	}

	return deleteColor, insertColor, nil
}

// formatResult renders a diff result. Runs of deleted and inserted words
// are wrapped in markers (or colored); whitespace words are part of the
// stream, so the common text is reproduced verbatim.
func formatResult(r worddiff.Result, opts formatOptions) string {
	var sb strings.Builder
	for _, d := range worddiff.AggregateDiffs(r.Diffs()) {
		switch d.Type {
		case worddiff.Equal:
			if !opts.noCommon {
				sb.WriteString(d.Token)
			}
		case worddiff.Delete:
			if !opts.noDeleted {
				writeMarked(&sb, d.Token, opts.startDelete, opts.stopDelete, opts.deleteColor, opts.useColor)
			}
		case worddiff.Insert:
			if !opts.noInserted {
				writeMarked(&sb, d.Token, opts.startInsert, opts.stopInsert, opts.insertColor, opts.useColor)
			}
		}
	}
	return sb.String()
}

func writeMarked(sb *strings.Builder, token, start, stop, color string, useColor bool) {
	if useColor {
		sb.WriteString(color)
		sb.WriteString(token)
		sb.WriteString(ansiReset)
		return
	}
	sb.WriteString(start)
	sb.WriteString(token)
	sb.WriteString(stop)
}

// formatStatistics renders the word counts in the dwdiff layout.
func formatStatistics(st worddiff.Statistics) string {
	return fmt.Sprintf("old: %d words  %d %d%% common  %d %d%% deleted\n"+
		"new: %d words  %d %d%% common  %d %d%% inserted\n",
		st.OldWords,
		st.CommonWords, percent(st.CommonWords, st.OldWords),
		st.DeletedWords, percent(st.DeletedWords, st.OldWords),
		st.NewWords,
		st.CommonWords, percent(st.CommonWords, st.NewWords),
		st.InsertedWords, percent(st.InsertedWords, st.NewWords))
}

// percent calculates percentage, handling division by zero
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part * 100) / total
}

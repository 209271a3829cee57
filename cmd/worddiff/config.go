package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dacharyc/worddiff"
	"github.com/pkg/errors"
)

// config holds configuration from profile files
type config struct {
	identifierChars   string
	noIdentifierChars bool
	mergeChanges      bool
	parallelThreshold int
	noColor           bool
	colorSpec         string
	startDelete       string
	stopDelete        string
	startInsert       string
	stopInsert        string
	noDeleted         bool
	noInserted        bool
	noCommon          bool
	statistics        bool
	check             bool
	logLevel          string
}

// defaultConfig returns a config with default values
func defaultConfig() config {
	return config{
		identifierChars: worddiff.DefaultIdentifierChars,
		startDelete:     "[-",
		stopDelete:      "-]",
		startInsert:     "{+",
		stopInsert:      "+}",
		logLevel:        "warning",
	}
}

// prescanProfile extracts --profile value before flag parsing
func prescanProfile(args []string) string {
	for i, arg := range args {
		if arg == "--profile" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--profile=") {
			return strings.TrimPrefix(arg, "--profile=")
		}
	}
	return ""
}

// findConfigFile returns the path to the config file for the given profile.
// If a profile is specified but the file doesn't exist, it returns an error.
func findConfigFile(profile string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // No home dir, use defaults
	}

	if profile == "" {
		path := filepath.Join(home, ".worddiffrc")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			xdgConfig = filepath.Join(home, ".config")
		}
		path = filepath.Join(xdgConfig, "worddiff", "config")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", nil
	}

	path := filepath.Join(home, ".worddiffrc."+profile)
	if _, err := os.Stat(path); err != nil {
		return "", errors.Errorf("profile config file not found: %s", path)
	}
	return path, nil
}

// loadConfig reads a config file and returns the configuration.
// Lines are "key = value" or a bare "key" meaning true; '#' starts a comment.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "opening config %s", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var key, value string
		if idx := strings.Index(line, "="); idx >= 0 {
			key = strings.TrimSpace(line[:idx])
			value = strings.TrimSpace(line[idx+1:])
		} else {
			key = line
			value = "true"
		}

		if err := applyConfigOption(&cfg, key, value); err != nil {
			return cfg, errors.Wrapf(err, "%s: line %d", path, lineNum)
		}
	}

	return cfg, errors.Wrapf(scanner.Err(), "reading config %s", path)
}

// applyStringOption handles string config options
func applyStringOption(cfg *config, key, value string) bool {
	switch key {
	case "identifier-chars", "I":
		cfg.identifierChars = value
	case "color", "c":
		cfg.colorSpec = value
	case "start-delete", "w":
		cfg.startDelete = value
	case "stop-delete", "x":
		cfg.stopDelete = value
	case "start-insert", "y":
		cfg.startInsert = value
	case "stop-insert", "z":
		cfg.stopInsert = value
	default:
		return false
	}
	return true
}

// applyBoolOption handles boolean config options
func applyBoolOption(cfg *config, key, value string) bool {
	switch key {
	case "no-identifier-chars":
		cfg.noIdentifierChars = parseBool(value)
	case "merge-changes", "M":
		cfg.mergeChanges = parseBool(value)
	case "no-color":
		cfg.noColor = parseBool(value)
	case "no-deleted", "1":
		cfg.noDeleted = parseBool(value)
	case "no-inserted", "2":
		cfg.noInserted = parseBool(value)
	case "no-common", "3":
		cfg.noCommon = parseBool(value)
	case "statistics", "s":
		cfg.statistics = parseBool(value)
	case "check":
		cfg.check = parseBool(value)
	default:
		return false
	}
	return true
}

// applyConfigOption sets a config field based on key and value
func applyConfigOption(cfg *config, key, value string) error {
	if applyStringOption(cfg, key, value) {
		return nil
	}
	if applyBoolOption(cfg, key, value) {
		return nil
	}

	switch key {
	case "parallel-threshold":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("parallel-threshold must be a non-negative integer, got %q", value)
		}
		cfg.parallelThreshold = n
	case "log-level":
		if _, err := parseLogLevel(value); err != nil {
			return err
		}
		cfg.logLevel = value
	default:
		return fmt.Errorf("unknown option: %s", key)
	}
	return nil
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "yes" || s == "1" || s == ""
}

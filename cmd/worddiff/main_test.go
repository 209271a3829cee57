package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dacharyc/worddiff"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME and XDG_CONFIG_HOME at an empty directory so a
// developer's own profile cannot leak into the tests.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("NO_COLOR", "")
	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"worddiff"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		old      string
		new      string
		args     []string
		wantCode int
		wantOut  string
	}{
		{
			name:     "identical",
			old:      "Hello World",
			new:      "Hello World",
			wantCode: exitIdentical,
			wantOut:  "Hello World\n",
		},
		{
			name:     "inserted punctuation",
			old:      "Hello World",
			new:      "Hello World!",
			wantCode: exitDiffer,
			wantOut:  "Hello World{+!+}\n",
		},
		{
			name:     "replaced word",
			old:      "Hello Wind",
			new:      "Hello World",
			wantCode: exitDiffer,
			wantOut:  "Hello [-Wind-]{+World+}\n",
		},
		{
			name:     "merged change renders the same",
			old:      "Hello Wind",
			new:      "Hello World",
			args:     []string{"--merge-changes"},
			wantCode: exitDiffer,
			wantOut:  "Hello [-Wind-]{+World+}\n",
		},
		{
			name:     "custom markers",
			old:      "a b",
			new:      "a c",
			args:     []string{"-w", "<", "-x", ">", "-y", "(", "-z", ")"},
			wantCode: exitDiffer,
			wantOut:  "a <b>(c)\n",
		},
		{
			name:     "no deleted",
			old:      "a b",
			new:      "a c",
			args:     []string{"--no-deleted"},
			wantCode: exitDiffer,
			wantOut:  "a {+c+}\n",
		},
		{
			name:     "no common",
			old:      "a b",
			new:      "a c",
			args:     []string{"-3"},
			wantCode: exitDiffer,
			wantOut:  "[-b-]{+c+}\n",
		},
		{
			name:     "identifier chars disabled",
			old:      "foo-bar",
			new:      "foo-baz",
			args:     []string{"--no-identifier-chars"},
			wantCode: exitDiffer,
			wantOut:  "foo-[-bar-]{+baz+}\n",
		},
		{
			name:     "identifier chars default",
			old:      "foo-bar",
			new:      "foo-baz",
			wantCode: exitDiffer,
			wantOut:  "[-foo-bar-]{+foo-baz+}\n",
		},
		{
			name:     "parallel threshold does not change output",
			old:      "one two three four five six",
			new:      "one 2 three four 5 six",
			args:     []string{"--parallel-threshold", "1", "--check"},
			wantCode: exitDiffer,
			wantOut:  "one [-two-]{+2+} three four [-five-]{+5+} six\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolateHome(t)
			oldPath := writeFile(t, home, "old.txt", tt.old)
			newPath := writeFile(t, home, "new.txt", tt.new)

			args := append(append([]string{}, tt.args...), oldPath, newPath)
			code, out, stderr := runCmd(t, "", args...)
			require.Equal(t, tt.wantCode, code, "stderr: %s", stderr)
			require.Equal(t, tt.wantOut, out)
		})
	}
}

func TestRunStdin(t *testing.T) {
	home := isolateHome(t)
	newPath := writeFile(t, home, "new.txt", "x = y + 1")

	code, out, _ := runCmd(t, "x = y + 2", "--stdin", newPath)
	require.Equal(t, exitDiffer, code)
	require.Equal(t, "x = y + [-2-]{+1+}\n", out)
}

func TestRunErrors(t *testing.T) {
	home := isolateHome(t)
	oldPath := writeFile(t, home, "old.txt", "a")

	t.Run("missing argument", func(t *testing.T) {
		code, _, stderr := runCmd(t, "", oldPath)
		require.Equal(t, exitError, code)
		require.Contains(t, stderr, "requires two file arguments")
	})

	t.Run("missing file", func(t *testing.T) {
		code, _, stderr := runCmd(t, "", oldPath, filepath.Join(home, "nope.txt"))
		require.Equal(t, exitError, code)
		require.Contains(t, stderr, "nope.txt")
	})

	t.Run("stdin without argument", func(t *testing.T) {
		code, _, stderr := runCmd(t, "a", "--stdin")
		require.Equal(t, exitError, code)
		require.Contains(t, stderr, "--stdin mode requires one file argument")
	})

	t.Run("bad color", func(t *testing.T) {
		code, _, stderr := runCmd(t, "", "--color=mauve", oldPath, oldPath)
		require.Equal(t, exitError, code)
		require.Contains(t, stderr, "unknown color: mauve")
	})

	t.Run("bad log level", func(t *testing.T) {
		code, _, _ := runCmd(t, "", "--log-level", "chatty", oldPath, oldPath)
		require.Equal(t, exitError, code)
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _, stderr := runCmd(t, "", "--frobnicate", oldPath, oldPath)
		require.Equal(t, exitError, code)
		require.Contains(t, stderr, "Usage:")
	})

	t.Run("missing profile", func(t *testing.T) {
		code, _, stderr := runCmd(t, "", "--profile", "absent", oldPath, oldPath)
		require.Equal(t, exitError, code)
		require.Contains(t, stderr, "profile config file not found")
	})
}

func TestRunColor(t *testing.T) {
	home := isolateHome(t)
	oldPath := writeFile(t, home, "old.txt", "a b")
	newPath := writeFile(t, home, "new.txt", "a c")

	code, out, _ := runCmd(t, "", "--color=red,green", oldPath, newPath)
	require.Equal(t, exitDiffer, code)
	require.Equal(t, "a \033[31mb"+ansiReset+"\033[32mc"+ansiReset+"\n", out)

	t.Setenv("NO_COLOR", "1")
	_, out, _ = runCmd(t, "", "--color=red,green", oldPath, newPath)
	require.Equal(t, "a [-b-]{+c+}\n", out)
}

func TestRunStatistics(t *testing.T) {
	home := isolateHome(t)
	oldPath := writeFile(t, home, "old.txt", "Hello World")
	newPath := writeFile(t, home, "new.txt", "Hello World!")

	code, _, stderr := runCmd(t, "", "--statistics", oldPath, newPath)
	require.Equal(t, exitDiffer, code)
	require.Contains(t, stderr, "old: 3 words  3 100% common  0 0% deleted")
	require.Contains(t, stderr, "new: 4 words  3 75% common  1 25% inserted")
}

func TestRunDebugLogging(t *testing.T) {
	home := isolateHome(t)
	oldPath := writeFile(t, home, "old.txt", "a b")
	newPath := writeFile(t, home, "new.txt", "a c")

	_, _, stderr := runCmd(t, "", "--log-level", "debug", "--check", oldPath, newPath)
	require.Contains(t, stderr, "Computed diff")
	require.Contains(t, stderr, "chunks=3")
	require.Contains(t, stderr, "Diff reconstructs both inputs")
}

func TestRunProfile(t *testing.T) {
	home := isolateHome(t)
	writeFile(t, home, ".worddiffrc.angle", "# angle markers\nstart-delete = <\nstop-delete = >\nno-inserted\n")
	oldPath := writeFile(t, home, "old.txt", "a b")
	newPath := writeFile(t, home, "new.txt", "a c")

	code, out, stderr := runCmd(t, "", "--profile", "angle", oldPath, newPath)
	require.Equal(t, exitDiffer, code, "stderr: %s", stderr)
	require.Equal(t, "a <b>\n", out)

	// Flags override the profile.
	_, out, _ = runCmd(t, "", "--profile=angle", "--no-inserted=false", oldPath, newPath)
	require.Equal(t, "a <b>{+c+}\n", out)
}

func TestRunDefaultConfig(t *testing.T) {
	home := isolateHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".config", "worddiff"), 0o755))
	writeFile(t, filepath.Join(home, ".config", "worddiff"), "config", "identifier-chars = .\n")
	oldPath := writeFile(t, home, "old.txt", "os.Exit")
	newPath := writeFile(t, home, "new.txt", "os.Exit(1)")

	_, out, _ := runCmd(t, "", oldPath, newPath)
	require.Equal(t, "os.Exit{+(1)+}\n", out)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path gives defaults", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		require.Equal(t, defaultConfig(), cfg)
		require.Equal(t, worddiff.DefaultIdentifierChars, cfg.identifierChars)
	})

	t.Run("all option kinds", func(t *testing.T) {
		path := writeFile(t, dir, "full", strings.Join([]string{
			"identifier-chars = _",
			"merge-changes",
			"parallel-threshold = 64",
			"statistics = yes",
			"no-color = false",
			"log-level = debug",
		}, "\n"))
		cfg, err := loadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "_", cfg.identifierChars)
		require.True(t, cfg.mergeChanges)
		require.Equal(t, 64, cfg.parallelThreshold)
		require.True(t, cfg.statistics)
		require.False(t, cfg.noColor)
		require.Equal(t, "debug", cfg.logLevel)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeFile(t, dir, "unknown", "\n\nfrobnicate = 1\n")
		_, err := loadConfig(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "line 3")
		require.Contains(t, err.Error(), "unknown option: frobnicate")
	})

	for _, value := range []string{"lots", "5abc", "-1", ""} {
		t.Run("bad threshold "+value, func(t *testing.T) {
			path := writeFile(t, dir, "threshold", "parallel-threshold = "+value+"\n")
			_, err := loadConfig(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), "parallel-threshold must be a non-negative integer")
		})
	}

	t.Run("bad log level", func(t *testing.T) {
		path := writeFile(t, dir, "level", "log-level = chatty\n")
		_, err := loadConfig(path)
		require.Error(t, err)
	})
}

func TestPrescanProfile(t *testing.T) {
	require.Equal(t, "work", prescanProfile([]string{"--profile", "work", "a", "b"}))
	require.Equal(t, "home", prescanProfile([]string{"a", "--profile=home", "b"}))
	require.Equal(t, "", prescanProfile([]string{"a", "b", "--profile"}))
	require.Equal(t, "", prescanProfile(nil))
}

func TestParseColorSpec(t *testing.T) {
	tests := []struct {
		spec       string
		wantDelete string
		wantInsert string
		wantErr    bool
	}{
		{spec: "", wantDelete: ansiDeleteColor, wantInsert: ansiInsertColor},
		{spec: "default", wantDelete: ansiDeleteColor, wantInsert: ansiInsertColor},
		{spec: "red", wantDelete: "\033[31m", wantInsert: ansiInsertColor},
		{spec: "red,green", wantDelete: "\033[31m", wantInsert: "\033[32m"},
		{spec: "red:white,green:black", wantDelete: "\033[31m\033[47m", wantInsert: "\033[32m\033[40m"},
		{spec: "RED", wantDelete: "\033[31m", wantInsert: ansiInsertColor},
		{spec: "red,nope", wantErr: true},
		{spec: "red:nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			del, ins, err := parseColorSpec(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantDelete, del)
			require.Equal(t, tt.wantInsert, ins)
		})
	}
}

func TestColorCode(t *testing.T) {
	tests := []struct {
		name       string
		background bool
		want       string
		wantOK     bool
	}{
		{"black", false, "\033[30m", true},
		{"white", false, "\033[37m", true},
		{"brightred", false, "\033[91m", true},
		{"blue", true, "\033[44m", true},
		{"brightwhite", true, "\033[107m", true},
		{"bright", false, "", false},
		{"mauve", true, "", false},
	}
	for _, tt := range tests {
		got, ok := colorCode(tt.name, tt.background)
		require.Equal(t, tt.wantOK, ok, tt.name)
		require.Equal(t, tt.want, got, tt.name)
	}
}

func TestPercent(t *testing.T) {
	require.Equal(t, 0, percent(1, 0))
	require.Equal(t, 50, percent(1, 2))
	require.Equal(t, 33, percent(1, 3))
}

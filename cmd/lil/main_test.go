package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"lil-go/pkg/bstr"
	"lil-go/pkg/errs"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		line string
		want op
	}{
		{"insert 0 two", op{verb: "insert", index: 0, text: "two"}},
		{`insert 3 "a b\tc"`, op{verb: "insert", index: 3, text: "a b\tc"}},
		{"insert 1 rest of line", op{verb: "insert", index: 1, text: "rest of line"}},
		{"fill 2 5 x", op{verb: "fill", index: 2, count: 5, text: "x"}},
		{"append `q `", op{verb: "append", text: "q "}},
		{"erase 1 99", op{verb: "erase", index: 1, count: 99}},
		{"push !", op{verb: "push", text: "!"}},
		{"  pop  ", op{verb: "pop"}},
		{"clear", op{verb: "clear"}},
	}
	for _, tt := range tests {
		got, err := parseOp(tt.line)
		if err != nil {
			t.Errorf("parseOp(%q) failed: %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOp(%q): expected %+v, got %+v", tt.line, tt.want, got)
		}
	}

	for _, bad := range []string{"shout x", "insert x y", "erase 1", "fill 0 1 xy", "push", "append \"open"} {
		if _, err := parseOp(bad); !errors.Is(err, errs.InvalidArgument) {
			t.Errorf("parseOp(%q): expected InvalidArgument, got %v", bad, err)
		}
	}
}

func TestDemoScript(t *testing.T) {
	var s bstr.Str[[10]byte]
	s.AppendString("58")
	var out bytes.Buffer
	require.NoError(t, runScript(&out, &s, demoScript))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(demoScript)+2)
	want := []string{`"158"`, `"100058"`, `"10005008"`, `"100050080"`, `"100050080"`, `"1050080"`, `"two 10500"`, `"two 10500"`}
	for i, w := range want {
		require.True(t, strings.HasSuffix(lines[i+1], w), "step %d: %q", i, lines[i+1])
	}
	// push onto the full buffer is reported and skipped
	require.Contains(t, lines[9], "ResourceFull")
	require.True(t, strings.HasSuffix(lines[10], `"t"`), lines[10])
	require.True(t, strings.HasSuffix(lines[11], `""`), lines[11])
	require.Contains(t, lines[12], "ResourceEmpty")
	require.Equal(t, "len 0, cap 9, layout 00 00 00 00 00 00 00 00 00 09", lines[13])
}

func TestParseTimeSpec(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		spec string
		want time.Time
	}{
		{"90m", now.Add(-90 * time.Minute)},
		{"2d", now.Add(-48 * time.Hour)},
		{"1w", now.Add(-7 * 24 * time.Hour)},
		{"2023-10-27T15:04:05Z", time.Date(2023, 10, 27, 15, 4, 5, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseTimeSpec(tt.spec, now)
		require.NoError(t, err, tt.spec)
		require.True(t, got.Equal(tt.want), "%s: expected %v, got %v", tt.spec, tt.want, got)
	}
	_, err := parseTimeSpec("yesterday", now)
	require.Error(t, err)
	_, err = parseTimeSpec("xd", now)
	require.Error(t, err)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"lil"}, args...))
	return out.String(), err
}

func TestStoreCommands(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "lil.yaml")
	body := "store_file: " + filepath.Join(dir, "buffers.db") + "\nlog_file: " + filepath.Join(dir, "lil.db") + "\ndefault_budget: 8\n"
	require.NoError(t, os.WriteFile(conf, []byte(body), 0o600))
	t.Setenv("LIL_CONFIG", conf)

	_, err := run(t, "put", "word", "overflowing")
	require.NoError(t, err)
	out, err := run(t, "get", "word")
	require.NoError(t, err)
	require.Equal(t, "overflo\n", out)

	out, err = run(t, "get", "--layout", "word")
	require.NoError(t, err)
	require.Equal(t, "6f 76 65 72 66 6c 6f 00\n", out)

	_, err = run(t, "put", "--budget", "32", "long", "a longer value")
	require.NoError(t, err)
	out, err = run(t, "ls")
	require.NoError(t, err)
	require.Contains(t, out, "long")
	require.Contains(t, out, "word")

	snap := filepath.Join(dir, "snap.zst")
	out, err = run(t, "export", "--compression", "zstd", snap)
	require.NoError(t, err)
	require.Contains(t, out, "exported 2 buffer(s)")

	_, err = run(t, "rm", "word")
	require.NoError(t, err)
	_, err = run(t, "get", "word")
	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	require.Equal(t, 2, exit.ExitCode())

	out, err = run(t, "import", "--compression", "zstd", snap)
	require.NoError(t, err)
	require.Contains(t, out, "imported 2 buffer(s)")
	out, err = run(t, "get", "word")
	require.NoError(t, err)
	require.Equal(t, "overflo\n", out)

	out, err = run(t, "edit", "--init", "ab", "insert 1 XY", "erase 0 1")
	require.NoError(t, err)
	require.Contains(t, out, `"XYb"`)
}

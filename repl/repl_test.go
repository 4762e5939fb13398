package repl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/minilisp/diagnostic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReplWithString(t *testing.T, input string) (string, error) {
	t.Helper()
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	go func() {
		defer inW.Close() //nolint:errcheck // test cleanup
		_, _ = io.WriteString(inW, input)
	}()

	errc := make(chan error, 1)
	go func() {
		err := RunRepl("minilisp> ",
			WithStdin(inR),
			WithStderr(outW),
			WithHistoryFile(""),
			WithColor(diagnostic.ColorNever))
		inR.Close()  //nolint:errcheck,gosec // test cleanup
		outW.Close() //nolint:errcheck,gosec // test cleanup
		errc <- err
	}()

	var output bytes.Buffer
	_, _ = io.Copy(&output, outR)
	outR.Close() //nolint:errcheck,gosec // test cleanup

	return output.String(), <-errc
}

func TestEnsureHistoryFilePermissions_CreatesWithRestrictedMode(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, HistoryFileName)

	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err, "history file should be created")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "new history file should have mode 0600")
}

func TestEnsureHistoryFilePermissions_RestrictsExistingFile(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, HistoryFileName)

	err := os.WriteFile(histFile, []byte("some history"), 0644)
	require.NoError(t, err)

	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "existing history file should be restricted to 0600")

	data, err := os.ReadFile(histFile)
	require.NoError(t, err)
	assert.Equal(t, "some history", string(data))
}

func TestEnsureHistoryFilePermissions_EmptyPathNoOp(t *testing.T) {
	ensureHistoryFilePermissions("")
}

func TestRunRepl(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Simple Addition",
			input:    "(+ 1 1)\n",
			expected: []string{"2\n"},
		},
		{
			name:     "Multiple Lines",
			input:    "(def x\n  5)\n(* x x)\n",
			expected: []string{"25\n"},
		},
		{
			name:     "Unbound Symbol",
			input:    "fnord\n",
			expected: []string{"error[unbound-symbol]: unbound symbol: fnord", "(doc 'name)"},
		},
		{
			name:     "Native Error",
			input:    "(car 1)\n",
			expected: []string{"error[native-error]: car:"},
		},
		{
			name:  "Source Snippet",
			input: "(+ 1 2)\n(def f (lambda (x)\n  (car x)))\n(f 5)\n",
			expected: []string{
				"  --> stdin:3:3\n",
				" 3 |    (car x)))\n",
				"   |    ^^^^^^^ native-error\n",
				"   = in car at stdin:3:3\n",
				"   = in f at stdin:4:1\n",
			},
		},
		{
			name:     "Parse Error",
			input:    "(car 1))\n(+ 1 1)\n",
			expected: []string{"error[parse-error]: unexpected token", "2\n"},
		},
		{
			name:     "Recovers After Error",
			input:    "(car 1)\n(+ 40 2)\n",
			expected: []string{"native-error", "42\n"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := runReplWithString(t, tc.input)
			require.NoError(t, err)
			for _, want := range tc.expected {
				assert.Contains(t, got, want)
			}
		})
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), err
}

func outputLines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func TestGenerateCommand(t *testing.T) {
	corpus := writeCorpus(t, testCorpus)

	out, err := executeCommand(t, "", "generate", "-f", corpus, "-n", "4", "--seed", "42")
	require.NoError(t, err)

	lines := outputLines(out)
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Contains(t, testSentences, line)
	}
}

func TestGenerateCommandSeeded(t *testing.T) {
	corpus := writeCorpus(t, "One fish. Two fish. Red fish. Blue fish. Old fish. New fish.")
	args := []string{"generate", "-f", corpus, "-n", "10", "--seed", "7"}

	first, err := executeCommand(t, "", args...)
	require.NoError(t, err)
	second, err := executeCommand(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateCommandMultipleFiles(t *testing.T) {
	first := writeCorpus(t, "Hi.")
	second := writeCorpus(t, "Bye.")

	out, err := executeCommand(t, "", "generate", "-f", first, "-f", second, "-n", "10")
	require.NoError(t, err)
	for _, line := range outputLines(out) {
		assert.Contains(t, []string{"Hi.", "Bye."}, line)
	}
}

func TestGenerateCommandStdin(t *testing.T) {
	out, err := executeCommand(t, "Hi.", "generate", "-f", "-")
	require.NoError(t, err)
	assert.Equal(t, "Hi.\n", out)
}

func TestGenerateCommandZeroSentences(t *testing.T) {
	corpus := writeCorpus(t, testCorpus)

	out, err := executeCommand(t, "", "generate", "-f", corpus, "-n", "0")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGenerateCommandErrors(t *testing.T) {
	testCases := []struct {
		name    string
		corpus  string
		args    []string
		wantErr error
	}{
		{name: "empty corpus", corpus: "", wantErr: markov.ErrEmptyModel},
		{name: "dead end", corpus: "Hello world", args: []string{"--retries", "1"}, wantErr: markov.ErrMissingKey},
		{name: "step limit", corpus: "a a", args: []string{"--max-steps", "5"}, wantErr: markov.ErrStepLimitExceeded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			corpus := writeCorpus(t, tc.corpus)
			args := append([]string{"generate", "-f", corpus}, tc.args...)

			_, err := executeCommand(t, "", args...)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGenerateCommandBadInput(t *testing.T) {
	_, err := executeCommand(t, "", "generate")
	assert.Error(t, err, "--file is required")

	_, err = executeCommand(t, "", "generate", "-f", "does-not-exist.txt")
	assert.Error(t, err)

	corpus := writeCorpus(t, testCorpus)
	_, err = executeCommand(t, "", "generate", "-f", corpus, "-n", "-1")
	assert.Error(t, err)
}

func TestGenerateCommandLegacyBoundary(t *testing.T) {
	corpus := writeCorpus(t, testCorpus)

	out, err := executeCommand(t, "", "generate", "-f", corpus, "-n", "3", "--legacy-boundary")
	require.NoError(t, err)
	for _, line := range outputLines(out) {
		assert.Contains(t, testSentences, line)
	}
}

func TestTableCommand(t *testing.T) {
	corpus := writeCorpus(t, testCorpus)

	out, err := executeCommand(t, "", "table", "-f", corpus)
	require.NoError(t, err)

	var table map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	assert.Equal(t, map[string][]string{
		markov.SentinelKey: {"The", "The"},
		"The":              {"cat", "dog"},
		"cat":              {"sat."},
		"dog":              {"ran."},
	}, table)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wordchain "+Version)
}

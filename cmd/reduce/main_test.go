package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/reducer"
)

// writeConfig writes a configuration using the shared test tables.
func writeConfig(t *testing.T, withPreferences bool) string {
	t.Helper()
	root, err := filepath.Abs("../..")
	require.NoError(t, err)
	var b strings.Builder
	b.WriteString("tables:\n")
	if withPreferences {
		b.WriteString("  preferences: " + filepath.Join(root, "testdata", "preferences.txt") + "\n")
	}
	b.WriteString("  grammar_scores: " + filepath.Join(root, "testdata", "grammar_scores.txt") + "\n")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, logs bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	err := cmd.Execute()
	return out.String(), err
}

func TestReduceFile(t *testing.T) {
	out, err := execute(t, "", "--config", writeConfig(t, true), "../../testdata/ekki.json")
	require.NoError(t, err)

	var res struct {
		Score int               `json:"score"`
		Tree  *reducer.TreeNode `json:"tree"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Score)
	require.Len(t, res.Tree.Children, 3)
	assert.Equal(t, "Atviksliður", res.Tree.Children[2].Nonterminal)
}

func TestReduceWithoutPreferences(t *testing.T) {
	doc, err := os.ReadFile("../../testdata/ekki.json")
	require.NoError(t, err)

	out, err := execute(t, string(doc), "--config", writeConfig(t, false), "-")
	require.NoError(t, err)

	var res output
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Score, "noun +1 and Nl_nf +2")
	assert.Equal(t, "Nl_nf", res.Tree.Children[2].Nonterminal)
}

func TestReduceDump(t *testing.T) {
	out, err := execute(t, "", "--config", writeConfig(t, true), "--dump", "../../testdata/ekki.json")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "score 3\nSetning [0,3)\n"), out)
	assert.Contains(t, out, `ao: "ekki"`)
	assert.NotContains(t, out, "no_et_nf_hk")
}

func TestReduceErrors(t *testing.T) {
	_, err := execute(t, "{", "--config", writeConfig(t, true))
	require.ErrorIs(t, err, reducer.ErrBadDocument)

	_, err = execute(t, "", "missing.json")
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "", "a.json", "b.json")
	require.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("{}")))

	f, err := os.Create(filepath.Join(t.TempDir(), "forest.json"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f), "regular files are not terminals")
}

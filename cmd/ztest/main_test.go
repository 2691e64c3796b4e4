package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommittedFixturesMatchGoldens(t *testing.T) {
	files, err := expandGlobPatterns("../../tests/*.zig")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, file := range files {
		r := testFile(file)
		assert.Equal(t, "PASS", r.Status, "%s: %s\n%s", file, r.Message, r.Diff)
	}
}

func TestGoldenHashesMatchSources(t *testing.T) {
	files, err := expandGlobPatterns("../../tests/*.zig")
	require.NoError(t, err)
	for _, file := range files {
		data, err := os.ReadFile(goldenPath(file))
		require.NoError(t, err)
		var want Golden
		require.NoError(t, json.Unmarshal(data, &want))
		got, err := lex(file)
		require.NoError(t, err)
		assert.Equal(t, want.SourceHash, got.SourceHash, file)
		assert.Equal(t, want.Fingerprint, got.Fingerprint, file)
	}
}

func TestMissingGoldenIsAnError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "lonely.zig")
	require.NoError(t, os.WriteFile(file, []byte("const x = 1;\n"), 0o644))

	r := testFile(file)
	assert.Equal(t, "ERROR", r.Status)
	assert.True(t, failed([]*FileTestResult{r}))
}

func TestGeneratedGoldenPasses(t *testing.T) {
	file := filepath.Join(t.TempDir(), "fresh.zig")
	require.NoError(t, os.WriteFile(file, []byte("const x = 'a' +% 0x1F; $\n"), 0o644))
	require.NoError(t, writeGolden(file))
	assert.FileExists(t, filepath.Join(filepath.Dir(file), ".fresh.zig.json"))

	r := testFile(file)
	assert.Equal(t, "PASS", r.Status, r.Diff)

	require.NoError(t, os.WriteFile(file, []byte("const x = 'b' +% 0x1F; $\n"), 0o644))
	r = testFile(file)
	assert.Equal(t, "FAIL", r.Status)
	assert.NotEmpty(t, r.Diff)
}

func TestFailed(t *testing.T) {
	tests := []struct {
		statuses []string
		want     bool
	}{
		{nil, true},
		{[]string{"SKIP", "SKIP"}, true},
		{[]string{"PASS", "SKIP"}, false},
		{[]string{"PASS", "FAIL"}, true},
		{[]string{"PASS", "ERROR"}, true},
	}
	for _, tt := range tests {
		var results []*FileTestResult
		for _, s := range tt.statuses {
			results = append(results, &FileTestResult{Status: s})
		}
		assert.Equal(t, tt.want, failed(results), "%v", tt.statuses)
	}
}

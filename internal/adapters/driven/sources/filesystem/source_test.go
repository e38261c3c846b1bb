package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestConnect(t *testing.T) {
	src := NewSource(t.TempDir())
	require.NoError(t, src.Connect(context.Background()))
}

func TestConnect_MissingRoot(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, src.Connect(context.Background()))
}

func TestConnect_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.txt", "x")

	src := NewSource(filepath.Join(dir, "f.txt"))
	require.Error(t, src.Connect(context.Background()))
}

func TestIsRelevantFor(t *testing.T) {
	src := NewSource(t.TempDir())

	assert.True(t, src.IsRelevantFor("my local notes about standup"))
	assert.True(t, src.IsRelevantFor("which file has the config"))
	assert.False(t, src.IsRelevantFor("who said what in the channel"))
}

func TestSearch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "standup.md", "# Standup\nDiscussed the deploy pipeline today.")
	writeFile(t, dir, "notes/deploy.txt", "deploy deploy deploy pipeline checklist")
	writeFile(t, dir, "unrelated.md", "grocery list")
	writeFile(t, dir, "binary.bin", "deploy pipeline") // wrong extension, skipped

	src := NewSource(dir)

	results, err := src.Search(context.Background(), "deploy pipeline")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Both files contain both terms; extra occurrences rank deploy.txt higher.
	assert.Equal(t, filepath.Join("notes", "deploy.txt"), results[0].Title)
	assert.Equal(t, "standup.md", results[1].Title)

	assert.Equal(t, "Filesystem", results[0].Source)
	assert.Contains(t, results[0].URL, "file://")
	assert.Contains(t, results[0].Content, "deploy")
	assert.GreaterOrEqual(t, results[1].RelevanceScore, 1.0)
}

func TestSearch_PartialTermMatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "mentions pipeline only")
	writeFile(t, dir, "b.md", "mentions deploy and pipeline both")

	src := NewSource(dir)

	results, err := src.Search(context.Background(), "deploy pipeline")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "b.md", results[0].Title)
	assert.Greater(t, results[0].RelevanceScore, results[1].RelevanceScore)
}

func TestSearch_NoMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "nothing of interest")

	src := NewSource(dir)

	results, err := src.Search(context.Background(), "quasar telemetry")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_SkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".git/objects.md", "deploy pipeline")
	writeFile(t, dir, "visible.md", "deploy pipeline")

	src := NewSource(dir)

	results, err := src.Search(context.Background(), "deploy")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "visible.md", results[0].Title)
}

func TestSearch_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "deploy")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewSource(dir)

	_, err := src.Search(ctx, "deploy")
	require.Error(t, err)
}

func TestSearch_SnippetTruncated(t *testing.T) {
	dir := t.TempDir()
	long := "deploy "
	for i := 0; i < 60; i++ {
		long += "pipeline padding words "
	}
	writeFile(t, dir, "long.md", long)

	src := NewSource(dir)

	results, err := src.Search(context.Background(), "deploy")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.LessOrEqual(t, len(results[0].Content), snippetLength+3)
}

package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/textassist/pkg/wordindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dict_0002.bin", chunkBytes(t, "banana", "band"))
	writeFile(t, dir, "dict_0001.bin", chunkBytes(t, "apple"))
	writeFile(t, dir, "extra.txt", []byte("receive\n"))
	writeFile(t, dir, "README.md", []byte("not a word list"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755))

	idx := wordindex.New()
	sources, err := LoadDir(dir, idx)
	require.NoError(t, err)
	require.Len(t, sources, 3)

	assert.Equal(t, filepath.Join(dir, "dict_0001.bin"), sources[0].Filename)
	assert.Equal(t, 1, sources[0].WordCount)
	assert.Equal(t, 2, sources[1].WordCount)
	assert.Equal(t, FormatText, sources[2].Format)
	assert.Equal(t, 4, idx.Len())
}

func TestLoadDirSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("apple\n"))
	writeFile(t, dir, "b.txt", nil)

	rec := &recorder{}
	sources, err := LoadDir(dir, rec)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, []string{"apple"}, rec.words)
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir(), &recorder{})
	assert.Error(t, err)

	_, err = LoadDir(filepath.Join(t.TempDir(), "missing"), &recorder{})
	assert.Error(t, err)
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "words.txt", []byte("apple\nbanana\n"))

	n, err := LoadPath(file, &recorder{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = LoadPath(dir, &recorder{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec := &recorder{}
	n, err = LoadPath("", rec)
	require.NoError(t, err)
	assert.Equal(t, len(rec.words), n)
	assert.Contains(t, rec.words, "receive")
}

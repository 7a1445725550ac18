package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, 3, c.Editor.SuggestLimit)
	assert.Equal(t, 2, c.Editor.MinCorrectLen)
	assert.Equal(t, 2, c.Editor.MaxDistance)
	assert.Equal(t, 64, c.Server.MaxLimit)
	assert.Equal(t, 60, c.Server.MaxPrefix)
	assert.Equal(t, 1<<20, c.Server.MaxText)
	assert.Equal(t, "", c.Dict.Path)
	assert.Equal(t, 256, c.Dict.RecentWords)
	assert.True(t, c.CLI.Highlight)
	assert.Empty(t, c.Validate(), "defaults are valid")
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[editor]
suggest_limit = 5
max_distance = 1

[dict]
path = "words.txt"
`)

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Editor.SuggestLimit)
	assert.Equal(t, 1, c.Editor.MaxDistance)
	assert.Equal(t, 2, c.Editor.MinCorrectLen, "missing keys keep defaults")
	assert.Equal(t, filepath.Join(filepath.Dir(path), "words.txt"), c.DictPath(path))
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// max_limit has the wrong type, the rest of the file is still usable
	path := writeConfig(t, `
[server]
max_limit = "many"
max_prefix = 30

[cli]
highlight = false
`)

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, c.Server.MaxLimit)
	assert.Equal(t, 30, c.Server.MaxPrefix)
	assert.False(t, c.CLI.Highlight)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := writeConfig(t, "this is [not toml")

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestValidateClampsValues(t *testing.T) {
	c := DefaultConfig()
	c.Editor.MaxDistance = -1
	c.Server.MaxLimit = 0
	c.Dict.RecentWords = -10
	c.Editor.SuggestLimit = 100

	fixed := c.Validate()

	assert.ElementsMatch(t, []string{
		"editor.max_distance", "server.max_limit", "dict.recent_words", "editor.suggest_limit",
	}, fixed)
	assert.Equal(t, 2, c.Editor.MaxDistance)
	assert.Equal(t, 64, c.Server.MaxLimit)
	assert.Equal(t, 256, c.Dict.RecentWords)
	assert.Equal(t, 64, c.Editor.SuggestLimit)
}

func TestLoadConfigValidates(t *testing.T) {
	path := writeConfig(t, "[editor]\nmax_distance = -3\n")

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Editor.MaxDistance)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	c, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, reloaded)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	c := DefaultConfig()
	c.Dict.Path = "/usr/share/dict/words.txt"
	c.CLI.NoFilter = true

	require.NoError(t, SaveConfig(c, path))

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, reloaded)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[editor]\nsuggest_limit = 7\n")

	c, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 7, c.Editor.SuggestLimit)
}

func TestSessionOptions(t *testing.T) {
	c := DefaultConfig()
	c.Editor.SuggestLimit = 4
	c.Dict.RecentWords = 10

	opts := c.SessionOptions()
	assert.Equal(t, 4, opts.SuggestLimit)
	assert.Equal(t, 2, opts.MinCorrectLen)
	assert.Equal(t, 2, opts.MaxDistance)
	assert.Equal(t, 10, opts.RecentWords)
}

func TestDictPath(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "", c.DictPath("/etc/textassist/config.toml"))

	c.Dict.Path = "/abs/words.txt"
	assert.Equal(t, "/abs/words.txt", c.DictPath("/etc/textassist/config.toml"))

	c.Dict.Path = "dicts"
	assert.Equal(t, "/etc/textassist/dicts", c.DictPath("/etc/textassist/config.toml"))
}

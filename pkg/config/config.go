/*
Package config manages the TOML config for textassist.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/textassist/internal/utils"
	"github.com/bastiangx/textassist/pkg/session"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// EditorConfig tunes the suggest and autocorrect pipeline.
type EditorConfig struct {
	SuggestLimit  int `toml:"suggest_limit"`
	MinCorrectLen int `toml:"min_correct_len"`
	MaxDistance   int `toml:"max_distance"`
}

// ServerConfig bounds what IPC requests may ask for.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit"`
	MaxPrefix int `toml:"max_prefix"`
	MaxText   int `toml:"max_text"`
}

// DictConfig holds vocabulary options.
// An empty Path selects the embedded seed list.
type DictConfig struct {
	Path        string `toml:"path"`
	RecentWords int    `toml:"recent_words"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	Highlight bool `toml:"highlight"`
	NoFilter  bool `toml:"no_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/textassist
// 2. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "textassist")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: ~/.config/textassist/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	opts := session.DefaultOptions()
	return &Config{
		Editor: EditorConfig{
			SuggestLimit:  opts.SuggestLimit,
			MinCorrectLen: opts.MinCorrectLen,
			MaxDistance:   opts.MaxDistance,
		},
		Server: ServerConfig{
			MaxLimit:  64,
			MaxPrefix: 60,
			MaxText:   1 << 20,
		},
		Dict: DictConfig{
			Path:        "",
			RecentWords: opts.RecentWords,
		},
		CLI: CliConfig{
			Highlight: true,
			NoFilter:  false,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values that fail to parse fall back to
// their defaults and out-of-range values are clamped by Validate.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	unknown, err := utils.DecodeTOMLFile(configPath, config)
	if err != nil {
		config = tryPartialParse(configPath)
	}
	for _, key := range unknown {
		log.Warnf("Unknown config key %q in %s", key, configPath)
	}

	config.Validate()
	return config, nil
}

// tryPartialParse keeps every value of a broken file that still has the right type
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	data, err := utils.DecodeTOMLMap(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.Section(data, "editor"); ok {
		extractEditorConfig(section, &config.Editor)
	}
	if section, ok := utils.Section(data, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.Section(data, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.Section(data, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config
}

func extractEditorConfig(data map[string]any, editor *EditorConfig) {
	if val, ok := utils.Int(data, "suggest_limit"); ok {
		editor.SuggestLimit = val
	}
	if val, ok := utils.Int(data, "min_correct_len"); ok {
		editor.MinCorrectLen = val
	}
	if val, ok := utils.Int(data, "max_distance"); ok {
		editor.MaxDistance = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.Int(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.Int(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.Int(data, "max_text"); ok {
		server.MaxText = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.String(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.Int(data, "recent_words"); ok {
		dict.RecentWords = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.Bool(data, "highlight"); ok {
		cli.Highlight = val
	}
	if val, ok := utils.Bool(data, "no_filter"); ok {
		cli.NoFilter = val
	}
}

// Validate resets out-of-range values to their defaults and returns the
// keys it changed.
func (c *Config) Validate() []string {
	def := DefaultConfig()
	var fixed []string

	clamp := func(key string, val *int, min, fallback int) {
		if *val < min {
			log.Warnf("Config %s = %d is out of range, using %d", key, *val, fallback)
			*val = fallback
			fixed = append(fixed, key)
		}
	}

	clamp("editor.suggest_limit", &c.Editor.SuggestLimit, 0, def.Editor.SuggestLimit)
	clamp("editor.min_correct_len", &c.Editor.MinCorrectLen, 0, def.Editor.MinCorrectLen)
	clamp("editor.max_distance", &c.Editor.MaxDistance, 0, def.Editor.MaxDistance)
	clamp("server.max_limit", &c.Server.MaxLimit, 1, def.Server.MaxLimit)
	clamp("server.max_prefix", &c.Server.MaxPrefix, 1, def.Server.MaxPrefix)
	clamp("server.max_text", &c.Server.MaxText, 1, def.Server.MaxText)
	clamp("dict.recent_words", &c.Dict.RecentWords, 0, def.Dict.RecentWords)

	if c.Editor.SuggestLimit > c.Server.MaxLimit {
		log.Warnf("Config editor.suggest_limit = %d exceeds server.max_limit, using %d", c.Editor.SuggestLimit, c.Server.MaxLimit)
		c.Editor.SuggestLimit = c.Server.MaxLimit
		fixed = append(fixed, "editor.suggest_limit")
	}
	return fixed
}

// SessionOptions converts the editor section into session settings.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		SuggestLimit:  c.Editor.SuggestLimit,
		MinCorrectLen: c.Editor.MinCorrectLen,
		MaxDistance:   c.Editor.MaxDistance,
		RecentWords:   c.Dict.RecentWords,
	}
}

// DictPath resolves Dict.Path against the directory of the loaded config file.
func (c *Config) DictPath(configPath string) string {
	base := ""
	if configPath != "" {
		base = filepath.Dir(configPath)
	}
	return utils.ExpandPath(c.Dict.Path, base)
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.WriteTOML(config, configPath)
}

/*
Package config manages the TOML configuration of the puzzle service.
*/
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DefaultPath is read when no --config flag is given and the file exists.
const DefaultPath = "xpuzzle.toml"

// Config holds the entire config structure
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Generator GeneratorConfig `toml:"generator"`
	Gemini    GeminiConfig    `toml:"gemini"`
	Store     StoreConfig     `toml:"store"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig has HTTP related options. UploadRate counts generation requests
// per minute and IP, MoveRate counts moves per second and IP.
type ServerConfig struct {
	Port       string `toml:"port"`
	UploadRate int    `toml:"upload_rate"`
	MoveRate   int    `toml:"move_rate"`
}

// GeneratorConfig holds puzzle generation options.
type GeneratorConfig struct {
	Language  string `toml:"language"`
	FillCount int    `toml:"fill_count"`
	MaxWords  int    `toml:"max_words"`
	WordList  string `toml:"word_list"`
}

type GeminiConfig struct {
	ProjectID string `toml:"project_id"`
	Region    string `toml:"region"`
	Model     string `toml:"model"`
}

// StoreConfig selects persistence. An empty path keeps puzzles in memory only.
type StoreConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       "8080",
			UploadRate: 5,
			MoveRate:   60,
		},
		Generator: GeneratorConfig{
			Language:  "de",
			FillCount: 20,
			MaxWords:  400,
		},
		Gemini: GeminiConfig{
			Region: "europe-west1",
			Model:  "gemini-2.5-flash",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// default values.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. DefaultPath in the working directory
// 3. Builtin defaults
//
// Environment overrides are applied last in every case.
func LoadConfigWithPriority(customConfigPath string) (*Config, string) {
	config, path := loadFile(customConfigPath)
	config.ApplyEnv(os.Getenv)
	return config, path
}

func loadFile(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		config, err := LoadConfig(customConfigPath)
		if err == nil {
			log.Debugf("Loaded config from custom path: %s", customConfigPath)
			return config, customConfigPath
		}
		log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
	}

	if _, err := os.Stat(DefaultPath); err != nil {
		return DefaultConfig(), ""
	}
	config, err := LoadConfig(DefaultPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using builtin defaults...", DefaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", DefaultPath)
	return config, DefaultPath
}

// ApplyEnv overrides config values from the environment. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("GCP_PROJECT_ID"); v != "" {
		c.Gemini.ProjectID = v
	}
	if v := getenv("GCP_REGION"); v != "" {
		c.Gemini.Region = v
	}
	if v := getenv("XPUZZLE_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
}

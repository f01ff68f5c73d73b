package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DefaultEngine string                   `toml:"default_engine"`
	Engines       map[string]*EngineConfig `toml:"engine"`
	Models        ModelsConfig             `toml:"models"`
	Roles         map[string]*RoleConfig   `toml:"role"`
	Gateway       GatewayConfig            `toml:"gateway"`
	Services      ServicesConfig           `toml:"services"`
	Trace         TraceConfig              `toml:"trace"`
	DB            DBConfig                 `toml:"db"`
}

type EngineConfig struct {
	Type    string `toml:"type"` // "claude" or "openai"
	Binary  string `toml:"binary"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// ModelsConfig overrides the model ID bound to a cost tier. The tier
// structure itself is fixed in the profile resolver.
type ModelsConfig struct {
	Cheapest string `toml:"cheapest"`
	Fast     string `toml:"fast"`
	Balanced string `toml:"balanced"`
	Deepest  string `toml:"deepest"`
}

type RoleConfig struct {
	SystemPrompt string   `toml:"system_prompt"`
	Tools        []string `toml:"tools"`
	Depth        string   `toml:"depth"`
}

type GatewayConfig struct {
	Addr  string `toml:"addr"`
	Token string `toml:"token"`
}

type ServicesConfig struct {
	Brave BraveConfig `toml:"brave"`
}

type BraveConfig struct {
	APIKey string `toml:"api_key"`
}

type TraceConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
	URLPath  string `toml:"url_path"`
	APIKey   string `toml:"api_key"`
}

type DBConfig struct {
	Path string `toml:"path"`
}

func Load() (*Config, error) {
	cfg := &Config{
		DefaultEngine: "claude",
		Engines: map[string]*EngineConfig{
			"claude": {
				Type:   "claude",
				Binary: "claude",
			},
		},
		Gateway: GatewayConfig{
			Addr: ":8585",
		},
		DB: DBConfig{
			Path: defaultDBPath(),
		},
	}

	path := Path()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Path returns the config file location.
func Path() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "scout", "config.toml")
}

func defaultDBPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, ".local", "share", "scout", "scout.db")
}

package config

import (
	"os"

	"github.com/jinzhu/configor"
)

// Config - Application configuration
type Config struct {
	Debug bool   `yaml:"debug" default:"false" env:"DEBUG"`
	Log   string `yaml:"log" env:"LOG_PATH"`

	Toolchain struct {
		ApktoolPath        string `yaml:"apktool_path" default:"apktool" env:"APKTOOL_PATH"`
		JarsignerPath      string `yaml:"jarsigner_path" default:"jarsigner" env:"JARSIGNER_PATH"`
		ZipalignPath       string `yaml:"zipalign_path" default:"zipalign" env:"ZIPALIGN_PATH"`
		TimestampAuthority string `yaml:"timestamp_authority" default:"http://timestamp.comodoca.com/rfc3161" env:"TSA_URL"`
	} `yaml:"toolchain"`

	Keystore struct {
		Path     string `yaml:"path" env:"KEYSTORE_PATH"`
		Password string `yaml:"password" env:"KEYSTORE_PASSWORD"`
		KeyAlias string `yaml:"key_alias" env:"KEY_ALIAS"`
	} `yaml:"keystore"`
}

// LoadConfig - Load configuration file. A missing file is not an error: the
// defaults and environment overrides alone describe a working toolchain.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	loader := configor.New(&configor.Config{
		Debug:      false,
		Verbose:    false,
		Silent:     true,
		AutoReload: false,
	})

	if _, err := os.Stat(path); err != nil {
		return cfg, loader.Load(cfg)
	}

	return cfg, loader.Load(cfg, path)
}

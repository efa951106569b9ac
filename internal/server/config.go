package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/trial-score/pkg/utils"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "TRIALSCORE_"
	ConfigPath = "TRIALSCORE_CONFIG"
)

type Config struct {
	Port        string `koanf:"port"`
	UseHttp2    bool   `koanf:"use_http2"`
	CorsOrigins string `koanf:"cors_origins"`
	// BodyLimit uses echo's size notation, e.g. "32M".
	BodyLimit string `koanf:"body_limit"`
	Env       string `koanf:"env"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:        "8080",
		CorsOrigins: "*",
		BodyLimit:   "32M",
		Env:         "local",
	}
}

// LoadConfig layers defaults, the YAML file named by TRIALSCORE_CONFIG and
// TRIALSCORE_* environment variables, lowest precedence first.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(ConfigPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// TRIALSCORE_USE_HTTP2 -> use_http2
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *DefaultConfig()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}
	if strings.TrimSpace(cfg.BodyLimit) == "" {
		cfg.BodyLimit = DefaultConfig().BodyLimit
	}

	return &cfg, nil
}

func (c *Config) Origins() []string {
	origins := utils.SplitTrim(c.CorsOrigins, ",")
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}

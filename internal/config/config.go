package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const homeDirName = ".dlc"

// Config is the client configuration read from the environment.
type Config struct {
	APIURL         string        `env:"DLC_API_URL"         envDefault:"http://localhost:8080"`
	AssistantURL   string        `env:"DLC_ASSISTANT_URL"   envDefault:"http://localhost:5005"`
	RequestTimeout time.Duration `env:"DLC_REQUEST_TIMEOUT" envDefault:"10s"`
	ReplyStagger   time.Duration `env:"DLC_STAGGER"         envDefault:"500ms"`
	FallbackDelay  time.Duration `env:"DLC_FALLBACK_DELAY"  envDefault:"1s"`
	Home           string        `env:"DLC_HOME"`
	SecretBackend  string        `env:"DLC_SECRET_BACKEND"  envDefault:"auto"`
	PassDir        string        `env:"DLC_PASS_DIR"`
	Verbose        bool          `env:"DLC_VERBOSE"`
}

// Secret backends accepted by DLC_SECRET_BACKEND.
const (
	SecretBackendAuto = "auto"
	SecretBackendPass = "pass"
	SecretBackendFile = "file"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and fills the home directory from the user's
// home when DLC_HOME is unset.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.Home) == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.Home = filepath.Join(userHome, homeDirName)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var err error
	if strings.TrimSpace(c.APIURL) == "" {
		err = errors.Join(err, errors.New("DLC_API_URL is empty"))
	}
	if strings.TrimSpace(c.AssistantURL) == "" {
		err = errors.Join(err, errors.New("DLC_ASSISTANT_URL is empty"))
	}
	if c.RequestTimeout <= 0 {
		err = errors.Join(err, errors.New("DLC_REQUEST_TIMEOUT must be positive"))
	}
	if c.ReplyStagger < 0 || c.FallbackDelay < 0 {
		err = errors.Join(err, errors.New("reply delays must not be negative"))
	}
	switch c.SecretBackend {
	case SecretBackendAuto, SecretBackendPass, SecretBackendFile:
	default:
		err = errors.Join(err, fmt.Errorf("DLC_SECRET_BACKEND %q is not one of auto, pass, file", c.SecretBackend))
	}
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) SecretsDir() string {
	return filepath.Join(c.Home, "secrets")
}

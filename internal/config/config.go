package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = ".sapcliconfig"
	DefaultHTTPSPort  = 443
	DefaultHTTPPort   = 80
	EnvPrefix         = "SAP_"
)

var ErrNotFound = errors.New("config file not found")

var clientPattern = regexp.MustCompile(`^[0-9]{3}$`)

type Profile struct {
	Host      string `yaml:"host" env:"ASHOST"`
	Port      int    `yaml:"port,omitempty" env:"PORT"`
	Client    string `yaml:"client" env:"CLIENT"`
	User      string `yaml:"user" env:"USER"`
	Password  string `yaml:"password" env:"PASSWORD"`
	SSL       *bool  `yaml:"ssl,omitempty" env:"SSL"`
	SSLVerify *bool  `yaml:"ssl_verify,omitempty" env:"SSL_VERIFY"`
}

type LogConfig struct {
	Level  string `yaml:"level,omitempty" env:"LEVEL"`
	Format string `yaml:"format,omitempty" env:"FORMAT"`
	Path   string `yaml:"path,omitempty" env:"PATH"`
}

type Config struct {
	Profiles       map[string]*Profile `yaml:"profiles"`
	DefaultProfile string              `yaml:"default_profile"`
	Log            LogConfig           `yaml:"log,omitempty"`
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigFile), nil
}

func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = defaultPath(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s\nRun 'sapcli config setup' to create one", ErrNotFound, path)
		}
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}

	if err := env.ParseWithOptions(&cfg.Log, env.Options{Prefix: EnvPrefix + "LOG_"}); err != nil {
		return nil, fmt.Errorf("invalid log environment: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a configuration with a single "env" profile taken purely
// from SAP_* environment variables.
func FromEnv() (*Config, error) {
	p := &Profile{}
	if err := p.ApplyEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Profiles:       map[string]*Profile{"env": p},
		DefaultProfile: "env",
	}
	if err := env.ParseWithOptions(&cfg.Log, env.Options{Prefix: EnvPrefix + "LOG_"}); err != nil {
		return nil, fmt.Errorf("invalid log environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = defaultPath(); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	// 0600: owner read/write only (contains password)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

func (c *Config) GetProfile(name string) (*Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		return nil, fmt.Errorf("no profile specified and no default profile set")
	}

	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile '%s' not found", name)
	}

	return p, nil
}

// ApplyEnv overrides profile fields with SAP_* environment variables and
// then resolves the port default from the effective SSL setting.
func (p *Profile) ApplyEnv() error {
	if err := env.ParseWithOptions(p, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	p.applyDefaults()
	return nil
}

func (p *Profile) applyDefaults() {
	if p.Port == 0 {
		if p.UseSSL() {
			p.Port = DefaultHTTPSPort
		} else {
			p.Port = DefaultHTTPPort
		}
	}
}

// UseSSL reports whether the profile connects over HTTPS (the default).
func (p *Profile) UseSSL() bool {
	return p.SSL == nil || *p.SSL
}

// VerifySSL reports whether server certificates are verified (the default).
func (p *Profile) VerifySSL() bool {
	return p.SSLVerify == nil || *p.SSLVerify
}

func (p *Profile) Validate() error {
	if p.Host == "" {
		return fmt.Errorf("host is required")
	}
	if !clientPattern.MatchString(p.Client) {
		return fmt.Errorf("client must be a three digit number")
	}
	if p.User == "" {
		return fmt.Errorf("user is required")
	}
	if p.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

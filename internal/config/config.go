package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"quietspot/internal/repositories"
)

const (
	BackendSQL      = "sql"
	BackendSupabase = "supabase"

	defaultAddress     = ":4000"
	defaultRefreshSpec = "@every 10m"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Backend  string `yaml:"backend"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Supabase struct {
		URL string `yaml:"url"`
		Key string `yaml:"key"`
	} `yaml:"supabase"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Mapbox struct {
		AccessToken string    `yaml:"access_token"`
		Style       string    `yaml:"style"`
		Center      []float64 `yaml:"center"`
		Zoom        float64   `yaml:"zoom"`
	} `yaml:"mapbox"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Geo struct {
		RefreshSpec string `yaml:"refresh_spec"`
	} `yaml:"geo"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// LoadConfig reads path (if it exists) and applies environment overrides.
// An empty path means env-only.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, errors.Wrapf(err, "unmarshal config %s", path)
			}
		case os.IsNotExist(err):
		default:
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return errors.Wrap(err, "parse PORT")
		}
		c.Server.Address = ":" + v
	}
	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Backend, "BACKEND")
	setString(&c.Supabase.URL, "SUPABASE_URL")
	setString(&c.Supabase.Key, "SUPABASE_KEY")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Mapbox.AccessToken, "MAPBOX_ACCESS_TOKEN")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = defaultAddress
	}
	if c.Backend == "" {
		c.Backend = BackendSQL
	}
	if c.Database.Driver == "" {
		c.Database.Driver = repositories.DriverPostgres
	}
	if c.Geo.RefreshSpec == "" {
		c.Geo.RefreshSpec = defaultRefreshSpec
	}
}

// Validate checks what serve needs. The mapbox token is checked separately
// when the map settings are built.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQL:
		if !repositories.SupportedDriver(c.Database.Driver) {
			return errors.Errorf("unsupported database driver %q", c.Database.Driver)
		}
		if c.Database.URL == "" {
			return errors.New("database.url is required for the sql backend")
		}
	case BackendSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return errors.New("supabase.url and supabase.key are required for the supabase backend")
		}
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	return nil
}

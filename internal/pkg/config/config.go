package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	PolicyBasic  = "basic"
	PolicyBearer = "bearer"

	SourceStatic = "static"
	SourceUsers  = "users"

	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	HTTP    HTTPConfig
	Auth    AuthConfig
	Catalog CatalogConfig
	Users   UsersConfig
	Homes   HomesConfig

	Mongo    MongoConfig
	Redis    RedisConfig
	Postgres PostgresConfig
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT,     default=10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT,    default=10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT, default=15s"`
}

type AuthConfig struct {
	Policy       string        `env:"AUTH_POLICY,           default=basic"`
	Realm        string        `env:"AUTH_REALM,            default=Restricted"`
	Source       string        `env:"AUTH_PRINCIPAL_SOURCE, default=static"`
	Username     string        `env:"AUTH_USERNAME,         default=Kishore Ram M"`
	Password     string        `env:"AUTH_PASSWORD,         default=KRM143"`
	PasswordHash string        `env:"AUTH_PASSWORD_HASH"`
	Role         string        `env:"AUTH_ROLE,             default=USER"`
	BcryptCost   int           `env:"AUTH_BCRYPT_COST,      default=10"`
	ExemptPaths  []string      `env:"AUTH_EXEMPT_PATHS"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"AUTH_TOKEN_TTL,        default=24h"`

	Throttle ThrottleConfig
}

type ThrottleConfig struct {
	Enabled     bool          `env:"AUTH_THROTTLE_ENABLED,      default=false"`
	MaxFailures int           `env:"AUTH_THROTTLE_MAX_FAILURES, default=5"`
	Window      time.Duration `env:"AUTH_THROTTLE_WINDOW,       default=15m"`
}

type CatalogConfig struct {
	SeedPolicy string `env:"CATALOG_SEED_POLICY, default=startup"`
	Strict     bool   `env:"CATALOG_STRICT,      default=true"`
}

type UsersConfig struct {
	Backend string `env:"USER_STORE, default=memory"`
}

type HomesConfig struct {
	Backend string `env:"HOME_STORE, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=catalog"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type PostgresConfig struct {
	DSN string `env:"DATABASE_URL"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects unknown enum values and missing secrets.
func (c *Config) Validate() error {
	var errs []error

	switch c.Auth.Policy {
	case PolicyBasic:
	case PolicyBearer:
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required when AUTH_POLICY=bearer"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_POLICY %q", c.Auth.Policy))
	}

	switch c.Auth.Source {
	case SourceStatic:
		if c.Auth.Username == "" {
			errs = append(errs, errors.New("AUTH_USERNAME is required"))
		}
	case SourceUsers:
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_PRINCIPAL_SOURCE %q", c.Auth.Source))
	}

	switch c.Users.Backend {
	case BackendMemory, BackendMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown USER_STORE %q", c.Users.Backend))
	}

	switch c.Homes.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when HOME_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown HOME_STORE %q", c.Homes.Backend))
	}

	switch c.Catalog.SeedPolicy {
	case "startup", "on-empty", "none":
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_SEED_POLICY %q", c.Catalog.SeedPolicy))
	}

	return errors.Join(errs...)
}

package config

import "time"

// Backend selects which record-store implementation the factory builds.
// The value is read once at process start and is immutable afterwards.
const (
	BackendPostgres = "postgres"
	BackendLocal    = "local"
)

// Config is the root application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Summary  SummaryConfig  `yaml:"summary"`
	Log      LogConfig      `yaml:"log"`
}

// StoreConfig selects the backend and configures the local one.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"STORE_BACKEND" env-default:"postgres"`
	// LocalPath is the SQLite file used by the local backend.
	LocalPath string `yaml:"local_path" env:"STORE_LOCAL_PATH" env-default:"./holidaygo.db"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// WriteDSN, when set, is used for all mutating statements; it is expected to
// carry an elevated role so administrator writes bypass viewer-scoped
// row-level policies. When empty, reads and writes share DSN.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	WriteDSN        string        `yaml:"write_dsn"          env:"DATABASE_WRITE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds access-token validation settings.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"holidaygo"`
}

// SummaryConfig holds generative team-summary settings.
// The Anthropic API key is read by the SDK from ANTHROPIC_API_KEY.
type SummaryConfig struct {
	Model    string `yaml:"model"     env:"SUMMARY_MODEL"     env-default:"claude-sonnet-4-5"`
	MaxWords int    `yaml:"max_words" env:"SUMMARY_MAX_WORDS" env-default:"150"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

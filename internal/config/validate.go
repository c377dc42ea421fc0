package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when store.backend is %q", BackendPostgres)
		}
	case BackendLocal:
		if c.Store.LocalPath == "" {
			return fmt.Errorf("store.local_path is required when store.backend is %q", BackendLocal)
		}
	default:
		return fmt.Errorf("store.backend must be %q or %q (got %q)", BackendPostgres, BackendLocal, c.Store.Backend)
	}

	// The secret is optional (the core runs fine without token validation),
	// but a short secret is worse than none.
	if s := c.Auth.JWTSecret; s != "" && len(s) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(s))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Summary.MaxWords <= 0 {
		return fmt.Errorf("summary.max_words must be > 0 (got %d)", c.Summary.MaxWords)
	}

	return nil
}

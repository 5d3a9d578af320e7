package kv

import (
	"fmt"

	"github.com/newthinker/stockdeck/internal/core"
)

// Config selects and configures a backend
type Config struct {
	Backend string // "memory", "file", "sqlite" or "s3"
	Path    string // directory for "file"
	DSN     string // database path for "sqlite"
	S3      S3Config
}

// Open creates the configured store
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		if cfg.Path == "" {
			return nil, core.WrapError(core.ErrConfigMissing, fmt.Errorf("file backend requires a path"))
		}
		return NewLocalFS(cfg.Path)
	case "sqlite":
		if cfg.DSN == "" {
			return nil, core.WrapError(core.ErrConfigMissing, fmt.Errorf("sqlite backend requires a dsn"))
		}
		return NewSQLite(cfg.DSN)
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, core.WrapError(core.ErrConfigMissing, fmt.Errorf("s3 backend requires a bucket"))
		}
		return NewS3(cfg.S3)
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown storage backend: %s", cfg.Backend))
	}
}

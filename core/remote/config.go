package remote

import (
	"time"

	"github.com/lakospeter91/appleremote/core/provision"
)

const (
	DefaultKillTimeout  = 2 * time.Second
	DefaultMaxLineBytes = 4096
)

// Config holds environment-driven settings for a Remote.
// Load it with config.Load and pass it to NewFromConfig.
type Config struct {
	// HelperPath is the absolute path of the iremotepipe executable.
	// Empty means provision.DefaultPath().
	HelperPath string `env:"APPLEREMOTE_HELPER_PATH"`

	// KillTimeout is how long the helper gets to exit after SIGTERM before it is killed.
	KillTimeout time.Duration `env:"APPLEREMOTE_KILL_TIMEOUT" envDefault:"2s"`

	// MaxLineBytes caps a single helper output line. Longer lines end the stream with ErrStream.
	MaxLineBytes int `env:"APPLEREMOTE_MAX_LINE_BYTES" envDefault:"4096"`
}

// DefaultConfig returns the configuration used when nothing is set in the environment.
func DefaultConfig() Config {
	return Config{
		KillTimeout:  DefaultKillTimeout,
		MaxLineBytes: DefaultMaxLineBytes,
	}
}

// NewFromConfig creates a Remote from cfg. Options are applied after the config values,
// so they take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Remote, error) {
	path := cfg.HelperPath
	if path == "" {
		p, err := provision.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	base := []Option{
		WithKillTimeout(cfg.KillTimeout),
		WithMaxLineBytes(cfg.MaxLineBytes),
	}
	return New(path, append(base, opts...)...)
}

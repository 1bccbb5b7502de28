// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/lakospeter91/appleremote/core/config"
//
//	func main() {
//		var cfg remote.Config
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//
//		r, err := remote.NewFromConfig(cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 remote.Config
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 remote.Config
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	config.MustLoad(&remote.Config{})
//	config.MustLoad(&redis.Config{})
//
// Tests that change the environment between loads should call Reset.
package config

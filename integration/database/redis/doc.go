// Package redis provides Redis client initialization, health checking and an event sink
// that forwards Apple Remote events to a pub/sub channel.
//
// This package wraps the go-redis client with connection validation and retry logic, and
// adds EventSink, a remote.Handler that publishes each event as JSON. Other processes can
// subscribe to the channel and react to button presses without owning the helper process.
//
// # Key Features
//
//   - Connect: Creates a Redis client with exponential retry logic and connection verification
//   - Healthcheck: Returns a health check function for monitoring Redis connectivity
//   - EventSink: Publishes every remote event to Config.EventsChannel
//
// # Configuration
//
// All configuration is handled through the Config struct with environment variable mapping:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//		EventsChannel  string        `env:"REDIS_EVENTS_CHANNEL" envDefault:"appleremote:events"`
//	}
//
// The configuration supports both redis:// and rediss:// (TLS) URL schemes.
//
// # Usage Example
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("Failed to connect to Redis:", err)
//	}
//	defer client.Close()
//
//	r.AddListener(redis.NewEventSink(client, cfg.EventsChannel))
//
// Subscribers receive messages like:
//
//	{"button":"VOLUME_UP","phase":"HOLD_STARTED","origin":"5f0c...","line":"{\"type\":\"up\",\"hold\":true,\"pressed\":true}","received_at":"..."}
//
// Publishing is synchronous and runs on the remote's read loop. Wrap the sink with
// remote.WithTimeout when Redis latency must not delay other listeners.
//
// # Error Handling
//
// The package defines domain-specific errors that can be checked using errors.Is():
//
//   - ErrFailedToParseRedisConnString: Returned when the Redis connection URL is malformed
//   - ErrRedisNotReady: Returned when Redis doesn't become ready within the timeout period
//   - ErrEmptyConnectionURL: Returned when no connection URL is provided
//   - ErrHealthcheckFailed: Returned when health check ping fails
//   - ErrPublishFailed: Returned by EventSink when an event cannot be encoded or published
//
// # Retry Logic and Timeouts
//
// Connection establishment uses exponential backoff to handle transient network issues:
//
//   - RetryAttempts (3): Number of connection attempts before giving up
//   - RetryInterval (5s): Base interval between retry attempts
//   - ConnectTimeout (30s): Overall timeout for the entire connection process
//
// The retry logic respects context cancellation and will abort early if the context
// deadline is exceeded during the retry process.
package redis

// Package logger provides structured logging utilities built on Go's standard slog package.
//
// It offers a small factory for environment-specific loggers and a set of attribute
// helpers that keep key names consistent across the remote engine, the helper
// provisioning code and integrations.
//
// # Basic Usage
//
//	import "github.com/lakospeter91/appleremote/core/logger"
//
//	// Development: colored text (plain when not a terminal), debug level, stdout
//	log := logger.New(logger.WithDevelopment("appleremote"))
//
//	// Production: JSON format, info level
//	log := logger.New(
//		logger.WithProduction("appleremote"),
//		logger.WithOutput(os.Stderr),
//	)
//
//	log.Info("helper started",
//		logger.Component("appleremote"),
//		logger.PID(cmd.Process.Pid),
//		logger.Path(helperPath),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or zero inputs, which slog drops, so they
// are safe to use without checks:
//
//	log.Error("handler failed",
//		logger.Error(err),          // dropped when err == nil
//		logger.RemoteID(remoteID),  // dropped when empty
//		logger.Line(rawLine),
//		logger.Elapsed(start),
//	)
//
// # Disabling Output
//
// Components in this module default to Discard() and accept a logger through a
// functional option, so logging is opt-in:
//
//	r, err := remote.New(path, remote.WithLogger(log))
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger

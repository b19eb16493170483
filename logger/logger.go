package logger

// Logger provides a standardized logging interface for the Drip client.
// It defines methods for different log levels (Debug, Info, Warn, Error) to enable
// consistent logging throughout the client library. This interface allows users
// to plug in their preferred logging implementation (e.g., glog, logrus, zap, standard log)
// or use the provided Noop logger to disable logging entirely.
//
// The logger is used throughout the client for:
// - API request/response debugging
// - Batch chunk progress
// - Retry attempt tracking
// - Connection and transport issues
//
// Messages never contain credentials.
//
// Usage Example:
//
//	// Using with a custom logger implementation
//	client, err := drip.NewClient(apiKey, accountId, drip.WithLogger(myLogger))
//
//	// Using zerolog
//	client, err := drip.NewClient(apiKey, accountId,
//	    drip.WithLogger(logger.NewZerolog(zerolog.New(os.Stderr))))
//
//	// Disable logging entirely
//	client, err := drip.NewClient(apiKey, accountId, drip.WithLogger(&logger.Noop{}))
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Package logging provides a minimal logging facade for the engmat wrappers.
//
// The Logger interface wraps a subset of log/slog so applications can route
// wrapper diagnostics into whatever logging system they already run.
//
// # Implementations
//
//	// slog.Default()
//	logger := logging.New(nil)
//
//	// zap
//	zl, _ := zap.NewDevelopment()
//	logger := logging.NewZap(zl)
//
//	// discard
//	logger := logging.Nop()
//
// # Redaction
//
// Evaluated expressions may carry data the caller does not want in logs. The
// engine session logs logging.Redacted("expr") in their place unless
// engmat.Config.LogExpressions is set:
//
//	logger.Debug(ctx, "evaluate", logging.Redacted("expr"))
//	// Logs: expr="[redacted]"
package logging

// Package logger provides a structured logging facility based on Zap.
//
// New builds a development logger at debug level and a production logger
// otherwise, with json or console encoding.
//
// WithRayID attaches the request's ray id (set by the rayid middleware) so every
// log line of a request can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger

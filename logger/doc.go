// Package logger provides structured logging for progressive and its
// tooling using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. A progressive.Waiter
// logs through this package when given progressive.WithLogger.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("wordcount")
//	log.Info("run finished", logger.Fields("lines", 1200))
package logger

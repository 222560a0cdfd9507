// Package logging provides structured logging for watch.
//
// The terminal belongs to the display while the run loop is active, so logs
// never go to stderr. When logging is enabled they are written as JSON lines
// to watch.log in the configured directory; otherwise [NopLogger] discards
// them.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dir, "info", logging.RotationConfig{MaxSizeMB: 10, MaxBackups: 3})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	iterLog := logger.WithCommand("make test").WithIteration(3)
//	iterLog.Info("command finished", "exit_code", 0)
//
// # Rotation
//
// [RotatingWriter] rotates watch.log once it exceeds MaxSizeMB, keeping up
// to MaxBackups numbered copies (watch.log.1 is the newest). It works on any
// afero.Fs so tests can run against an in-memory filesystem.
package logging

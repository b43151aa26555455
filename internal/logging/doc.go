// Package logging provides structured logging for panelkit.
//
// It wraps Go's log/slog to produce JSON lines. The TUI owns the terminal, so
// logs go to a file under the configured log directory, or are discarded when
// logging is disabled.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO", logging.DefaultRotation())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("component mounted", "namespace", "panel/general")
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	componentLogger := logger.WithComponent("panel/general")
//	componentLogger.Debug("tab route registered", "route", "panel/general/style")
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"tab route registered","component":"panel/general","route":"panel/general/style"}
package logging

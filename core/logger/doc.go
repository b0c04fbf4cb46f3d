// Package logger builds the zap loggers used by every mccraft command.
//
// logger.Config comes from the LOG_LEVEL and LOG_FORMAT settings. A debug level
// switches to zap's development preset; console format adds colored levels and
// drops stack traces, which suits `mccraft import` run from a terminal. Servers
// and cron jobs keep the json default.
//
// # Import runs
//
// The importer logs one Info line per phase and tags every entry about a single
// export file with its name through ForFile, so a skipped file can be found with
// a filter on "file". The bulk loader logs at Warn right before it drops the
// relaxed foreign keys and indexes and again once they are restored: an import
// that dies between the two leaves a database that needs `mccraft migrate`.
//
//	log, err := logger.New(&cfg.Log)
//	if err != nil {
//		return err
//	}
//	logger.ForFile(log, "Smelting.json").Info("Imported tooltips", zap.Int("names", 812))
//
// # Requests
//
// WithRayID adds the ray id stored by the rayid middleware, so every line of one
// HTTP request can be correlated:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Failed to load recipe", zap.Error(err))
package logger

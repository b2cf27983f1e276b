// Package logger provides a structured logging facility based on Zap.
//
// The debug level selects zap's development configuration, every other level
// the production one. The console format uses colored capital levels and no
// stack traces, which suits interactive CLI runs; json suits scheduled jobs.
//
// # Run correlation
//
// Each CLI run gets a random run id. WithRunID attaches it to a logger so all
// lines of one reconciliation can be grepped together.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log = logger.WithRunID(log, uuid.NewString())
//	log.Info("Reconciliation finished", zap.Int("added", stats.Added))
package logger

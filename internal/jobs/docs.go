// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// OutboxDispatchJob drains the notification outbox: it claims a batch of
// pending intents, publishes them through the notifier and records the
// outcome. Intents the notifier refuses stay pending until they reach the
// attempt limit.
//
// # Usage
//
//	dispatch := jobs.NewOutboxDispatchJob(handler, cfg.OutboxSchedule, cfg.OutboxBatchSize, cfg.OutboxMaxAttempts, logger)
//	jobManager := jobs.NewJobManager(dispatch)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Delivery failures of single intents are logged with their notification id
//   - A failed batch is logged and retried on the next tick
//   - Failed job starts stop any already running jobs
package jobs

package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxSchedule runs the dispatcher every five seconds.
const DefaultOutboxSchedule = "*/5 * * * * *"

// NotificationDispatcher drains one batch of the notification outbox.
type NotificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (commands.DispatchResult, error)
}

// OutboxDispatchJob periodically publishes pending notification intents.
// A run that is still in progress when the next tick fires is not overlapped.
type OutboxDispatchJob struct {
	dispatcher  NotificationDispatcher
	schedule    string
	batchSize   int
	maxAttempts int
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewOutboxDispatchJob creates a job running dispatcher on schedule.
// An empty schedule selects DefaultOutboxSchedule. Overlapping runs are skipped.
func NewOutboxDispatchJob(
	dispatcher NotificationDispatcher,
	schedule string,
	batchSize, maxAttempts int,
	logger *slog.Logger,
) *OutboxDispatchJob {
	if schedule == "" {
		schedule = DefaultOutboxSchedule
	}
	return &OutboxDispatchJob{
		dispatcher:  dispatcher,
		schedule:    schedule,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		cron:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:      logger.With("component", "outbox_dispatch_job"),
	}
}

// Name identifies the job in logs.
func (j *OutboxDispatchJob) Name() string {
	return "outbox dispatch job"
}

// Start validates the batch settings and schedules the dispatcher.
func (j *OutboxDispatchJob) Start() error {
	if _, err := commands.NewDispatchNotificationsCommand(j.batchSize, j.maxAttempts); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started", "schedule", j.schedule)
	return nil
}

// RunOnce dispatches a single batch and logs the outcome.
func (j *OutboxDispatchJob) RunOnce(ctx context.Context) commands.DispatchResult {
	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize, j.maxAttempts)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid dispatch settings", "error", err)
		return commands.DispatchResult{}
	}

	result, err := j.dispatcher.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox dispatch failed", "error", err)
		return result
	}

	for _, f := range result.Failed {
		j.logger.ErrorContext(ctx, "Notification not delivered",
			"notification_id", f.NotificationID.String(),
			"recipient", f.Recipient.String(),
			"error", f.Err,
		)
	}
	if result.Dispatched > 0 {
		j.logger.DebugContext(ctx, "Notifications dispatched", "count", result.Dispatched)
	}
	return result
}

// Stop waits for a running dispatch to finish.
func (j *OutboxDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcelquote/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// tickTimeout bounds a single run of any job.
const tickTimeout = 30 * time.Second

// ReleaseHandler confirms scheduled orders whose pickup time has come.
type ReleaseHandler interface {
	Handle(ctx context.Context, cmd commands.ReleaseScheduledOrdersCommand) (int, error)
}

// ScheduledReleaseJob moves Scheduled orders to Confirmed once their pickup
// time arrives.
type ScheduledReleaseJob struct {
	handler  ReleaseHandler
	cmd      commands.ReleaseScheduledOrdersCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewScheduledReleaseJob creates the job. schedule is a six-field cron
// expression (seconds first) or a descriptor such as "@every 30s".
func NewScheduledReleaseJob(
	handler ReleaseHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) (*ScheduledReleaseJob, error) {
	cmd, err := commands.NewReleaseScheduledOrdersCommand(batchSize)
	if err != nil {
		return nil, err
	}
	return &ScheduledReleaseJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     newCron(),
		logger:   logger.With("component", "scheduled_release_job"),
	}, nil
}

// Start registers the job on its schedule and starts the scheduler.
func (j *ScheduledReleaseJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Scheduled release job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *ScheduledReleaseJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Scheduled release job stopped")
}

// RunOnce releases one batch and returns how many orders were confirmed.
func (j *ScheduledReleaseJob) RunOnce(ctx context.Context) (int, error) {
	return j.handler.Handle(ctx, j.cmd)
}

func (j *ScheduledReleaseJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	released, err := j.RunOnce(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Scheduled release job failed", "error", err)
		return
	}
	if released > 0 {
		j.logger.InfoContext(ctx, "Released scheduled orders", "count", released)
	}
}

// newCron returns a scheduler that accepts seconds and never overlaps runs of
// the same job.
func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}

package jobs

import (
	"context"
	"log/slog"

	"parcelquote/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TrackingHandler moves active orders one step along their timeline.
type TrackingHandler interface {
	Handle(ctx context.Context, cmd commands.AdvanceTrackingCommand) (int, error)
}

// TrackingProgressJob simulates delivery progress: each tick advances every
// active order by one status.
type TrackingProgressJob struct {
	handler  TrackingHandler
	cmd      commands.AdvanceTrackingCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewTrackingProgressJob(
	handler TrackingHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) (*TrackingProgressJob, error) {
	cmd, err := commands.NewAdvanceTrackingCommand(batchSize)
	if err != nil {
		return nil, err
	}
	return &TrackingProgressJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     newCron(),
		logger:   logger.With("component", "tracking_progress_job"),
	}, nil
}

func (j *TrackingProgressJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking progress job started", "schedule", j.schedule)
	return nil
}

func (j *TrackingProgressJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Tracking progress job stopped")
}

// RunOnce advances one batch and returns how many orders moved.
func (j *TrackingProgressJob) RunOnce(ctx context.Context) (int, error) {
	return j.handler.Handle(ctx, j.cmd)
}

func (j *TrackingProgressJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	advanced, err := j.RunOnce(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking progress job failed", "error", err)
		return
	}
	if advanced > 0 {
		j.logger.DebugContext(ctx, "Advanced order tracking", "count", advanced)
	}
}

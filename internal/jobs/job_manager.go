package jobs

import (
	"fmt"
	"log/slog"
)

// Config holds job schedules and the batch size shared by both jobs.
type Config struct {
	ReleaseSchedule  string
	TrackingSchedule string
	BatchSize        int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	releaseJob  *ScheduledReleaseJob
	trackingJob *TrackingProgressJob
}

// NewJobManager creates both jobs. It fails when the batch size is out of range.
func NewJobManager(
	cfg Config,
	releaseHandler ReleaseHandler,
	trackingHandler TrackingHandler,
	logger *slog.Logger,
) (*JobManager, error) {
	releaseJob, err := NewScheduledReleaseJob(releaseHandler, cfg.ReleaseSchedule, cfg.BatchSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduled release job: %w", err)
	}
	trackingJob, err := NewTrackingProgressJob(trackingHandler, cfg.TrackingSchedule, cfg.BatchSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracking progress job: %w", err)
	}
	return &JobManager{releaseJob: releaseJob, trackingJob: trackingJob}, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.releaseJob.Start(); err != nil {
		return fmt.Errorf("failed to start scheduled release job: %w", err)
	}

	if err := jm.trackingJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.releaseJob.Stop()
		return fmt.Errorf("failed to start tracking progress job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks.
func (jm *JobManager) StopAll() {
	jm.trackingJob.Stop()
	jm.releaseJob.Stop()
}

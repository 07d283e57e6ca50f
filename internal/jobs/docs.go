// Package jobs provides scheduled background tasks for the parcel service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field. A run that
// is still in progress when the next one is due is skipped.
//
// # Available Jobs
//
// 1. ScheduledReleaseJob - confirms Scheduled orders whose pickup time has arrived
// 2. TrackingProgressJob - advances each active order one status per tick
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(jobs.Config{
//		ReleaseSchedule:  "@every 30s",
//		TrackingSchedule: "@every 1m",
//		BatchSize:        100,
//	}, releaseHandler, trackingHandler, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Handler errors are logged and the job keeps its schedule. A job that fails
// to start stops the jobs already started.
package jobs

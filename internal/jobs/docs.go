// Package jobs provides scheduled background tasks for the bookstore ordering
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order housekeeping.
//
// # Available Jobs
//
// 1. DraftExpiryJob - Runs every minute to cancel draft orders abandoned
// longer than the configured TTL.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required jobs
//	jobManager := jobs.NewJobManager(draftExpiryJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The expiry job ignores drafts that disappear between the query and the
//     cancel command; everything else is logged and the job moves on to the
//     next draft.
package jobs

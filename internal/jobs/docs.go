// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. PendingTimeoutJob - Runs every minute to fail orders stuck in pending
// longer than the configured age, usually left behind by a payment gateway
// outage between the pending insert and the confirmation write
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(failStaleOrdersHandler, cfg.PendingTimeout, logger)
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
// - The sweep runs in one transaction; an order contested by a concurrent
// writer is skipped and picked up on the next run
// - Sweep failures are logged and retried on the next tick, never escalated
package jobs

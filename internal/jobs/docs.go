// Package jobs contains the scheduled background work of the service.
// Jobs are cron-driven, run command handlers, and log failures instead of
// crashing; the JobManager starts and stops them with the process.
package jobs

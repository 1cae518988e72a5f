// Package jobs provides scheduled background tasks for the parcel service.
//
// Jobs use github.com/robfig/cron/v3 with six-field schedules (seconds
// first) and skip a tick while the previous run is still going.
//
// # Available Jobs
//
// PaymentSweepJob lists unpaid parcels that have a checkout session and
// reconciles each of them. It covers gateway callbacks that never arrived.
// Unpaid sessions are the normal case and are not logged as errors.
//
// # Usage
//
//	sweep := jobs.NewPaymentSweepJob(parcels, reconcileHandler, m, cfg.PaymentSweepSchedule, 0, logger)
//	jobManager := jobs.NewJobManager(sweep)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
package jobs

package jobs

import (
	"context"
	"errors"
	"log/slog"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/domain/model/parcel"
	"parceldelivery/internal/metrics"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSweepSchedule  = "0 */2 * * * *"
	DefaultSweepBatchSize = 50
	sweepMetricsSource    = "sweep"
)

type AwaitingPaymentLister interface {
	ListAwaitingPayment(ctx context.Context, limit int) ([]*parcel.Parcel, error)
}

type PaymentReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcilePaymentCommand) (commands.ReconcilePaymentResult, error)
}

// PaymentSweepJob re-runs reconciliation for parcels whose checkout was
// started but never confirmed, so a lost gateway callback does not leave a
// paid parcel unpaid. Reconciliation is idempotent, so a sweep racing a late
// callback is harmless.
type PaymentSweepJob struct {
	lister     AwaitingPaymentLister
	reconciler PaymentReconciler
	metrics    *metrics.Metrics
	schedule   string
	batchSize  int
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPaymentSweepJob uses a six-field cron schedule (with seconds). An empty
// schedule or a non-positive batch size falls back to the defaults.
func NewPaymentSweepJob(
	lister AwaitingPaymentLister,
	reconciler PaymentReconciler,
	m *metrics.Metrics,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *PaymentSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if batchSize <= 0 {
		batchSize = DefaultSweepBatchSize
	}

	return &PaymentSweepJob{
		lister:     lister,
		reconciler: reconciler,
		metrics:    m,
		schedule:   schedule,
		batchSize:  batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "payment_sweep_job"),
	}
}

func (j *PaymentSweepJob) Name() string { return "payment sweep" }

// Start schedules the sweep. It fails on an invalid schedule.
func (j *PaymentSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Payment sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment sweep job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *PaymentSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Payment sweep job stopped")
}

// RunOnce reconciles one batch and returns how many payments it recorded.
// A failure for one parcel is logged and does not stop the batch; only a
// failure to list parcels is returned.
func (j *PaymentSweepJob) RunOnce(ctx context.Context) (int, error) {
	parcels, err := j.lister.ListAwaitingPayment(ctx, j.batchSize)
	if err != nil {
		return 0, err
	}

	recorded := 0
	for _, p := range parcels {
		if ctx.Err() != nil {
			return recorded, ctx.Err()
		}

		cmd, err := commands.NewReconcilePaymentCommand(p.CheckoutSession())
		if err != nil {
			j.logger.WarnContext(ctx, "Skipping parcel with unusable checkout session",
				"parcel_id", p.ID().String(), "error", err)
			continue
		}

		result, err := j.reconciler.Handle(ctx, cmd)
		j.metrics.ObserveReconciliation(sweepMetricsSource, result, err)

		switch {
		case err == nil && !result.Duplicate:
			recorded++
			j.logger.InfoContext(ctx, "Recovered payment",
				"parcel_id", p.ID().String(), "tracking_id", result.TrackingID.String())
		case err == nil, errors.Is(err, commands.ErrPaymentNotCompleted):
			// customer has not paid yet, or a callback got there first
		default:
			j.logger.ErrorContext(ctx, "Reconciliation failed",
				"parcel_id", p.ID().String(), "error", err)
		}
	}

	return recorded, nil
}

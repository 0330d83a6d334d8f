package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// StaleDraftFinder lists draft orders created before a cutoff.
type StaleDraftFinder interface {
	Handle(ctx context.Context, query queries.GetStaleDraftOrdersQuery) ([]queries.GetStaleDraftOrdersQueryResponse, error)
}

// OrderCanceller cancels a single order.
type OrderCanceller interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
}

// DraftExpiryJob cancels draft orders that customers abandoned.
// Runs every minute, finds drafts older than the configured TTL and cancels
// them through the regular cancel command so the usual events fire.
type DraftExpiryJob struct {
	queryHandler  StaleDraftFinder
	cancelHandler OrderCanceller
	ttl           time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewDraftExpiryJob creates a job that expires drafts older than ttl.
func NewDraftExpiryJob(
	queryHandler StaleDraftFinder,
	cancelHandler OrderCanceller,
	ttl time.Duration,
	logger *slog.Logger,
) *DraftExpiryJob {
	return &DraftExpiryJob{
		queryHandler:  queryHandler,
		cancelHandler: cancelHandler,
		ttl:           ttl,
		cron:          cron.New(),
		logger:        logger.With("component", "draft_expiry_job"),
	}
}

// Start begins the draft expiry job to run every minute.
func (j *DraftExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft expiry job started (running every minute)",
		"ttl", j.ttl.String())
	return nil
}

// Stop stops the draft expiry job.
func (j *DraftExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Draft expiry job stopped")
}

func (j *DraftExpiryJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetStaleDraftOrdersQuery(time.Now().UTC().Add(-j.ttl))
	if err != nil {
		j.logger.ErrorContext(ctx, "Draft expiry job failed to build query", "error", err)
		return
	}

	drafts, err := j.queryHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Draft expiry job failed to find stale drafts", "error", err)
		return
	}

	for _, draft := range drafts {
		cmd, cmdErr := commands.NewCancelOrderCommand(draft.ID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Draft expiry job failed to build cancel command",
				"order_id", draft.ID.String(), "error", cmdErr)
			continue
		}

		if cancelErr := j.cancelHandler.Handle(ctx, cmd); cancelErr != nil {
			// A draft placed or cancelled between query and cancel is not an error
			if errors.Is(cancelErr, errs.ErrObjectNotFound) ||
				errors.Is(cancelErr, order.ErrInvalidStatusTransition) {
				continue
			}

			j.logger.ErrorContext(ctx, "Draft expiry job failed to cancel stale draft",
				"order_id", draft.ID.String(), "error", cancelErr)
			continue
		}

		j.logger.InfoContext(ctx, "Cancelled stale draft order",
			"order_id", draft.ID.String(),
			"customer_id", draft.CustomerID,
			"created_at", draft.CreatedAt)
	}
}

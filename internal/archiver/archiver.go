package archiver

import (
	"context"

	"github.com/MrSnakeDoc/xmarks/internal/logger"
	"github.com/MrSnakeDoc/xmarks/internal/sources/bird"
	"github.com/MrSnakeDoc/xmarks/internal/storage"
)

// Archiver records bookmarks as archived in the local ledger and
// best-effort removes them on the remote service.
//
// Archival is one-way (Active -> Archived) and idempotent. A remote
// failure never blocks the local state change: the user's view must stay
// consistent with their intent even when the remote side is unreachable.
type Archiver struct {
	client bird.Client
	store  storage.Store
	logger logger.Logger
}

// New creates an archiver.
func New(client bird.Client, store storage.Store, log logger.Logger) *Archiver {
	return &Archiver{
		client: client,
		store:  store,
		logger: log,
	}
}

// Archive marks id as archived. Already-archived ids return immediately
// with no remote call and no write. Only the final ledger persistence can
// fail the operation.
//
// No existence check is made against the bookmark collection: archiving
// an unknown id simply records it in the ledger.
func (a *Archiver) Archive(ctx context.Context, id string) error {
	ids, err := a.store.LoadArchivedIDs(ctx)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			a.logger.Debug("bookmark already archived",
				logger.String("id", id))
			return nil
		}
	}

	if err := a.client.Unbookmark(ctx, id); err != nil {
		a.logger.Warn("remote unbookmark failed, archiving locally anyway",
			logger.String("id", id),
			logger.Error(err))
	} else {
		a.logger.Info("removed remote bookmark",
			logger.String("id", id))
	}

	return a.store.UpdateArchivedIDs(ctx, func(current []string) ([]string, bool, error) {
		for _, existing := range current {
			if existing == id {
				return current, false, nil
			}
		}
		return append(current, id), true, nil
	})
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bizledger/internal/entity"
)

// Adopt claims owner's migration marker and copies snap into owner's records,
// all in one transaction. Records get fresh ids. When the marker is already
// held, by an earlier call or by another process sharing the database,
// nothing is copied and copied is false.
func (s *SQLStore) Adopt(ctx context.Context, owner uuid.UUID, snap entity.Snapshot, at time.Time) (n int, copied bool, err error) {
	if err := s.checkOwner(owner); err != nil {
		return 0, false, err
	}
	err = s.WithTx(ctx, func(tx *SQLStore) error {
		claimed, err := tx.claimMarker(ctx, owner, 0, at)
		if err != nil || !claimed {
			return err
		}
		for _, r := range snap.Transactions {
			if _, err := tx.InsertTransaction(ctx, owner, r); err != nil {
				return err
			}
			n++
		}
		for _, r := range snap.PettyCashEntries {
			if _, err := tx.InsertPettyCashEntry(ctx, owner, r); err != nil {
				return err
			}
			n++
		}
		for _, r := range snap.Budgets {
			if _, err := tx.InsertBudget(ctx, owner, r); err != nil {
				return err
			}
			n++
		}
		for _, r := range snap.BalanceSheetItems {
			if _, err := tx.InsertBalanceSheetItem(ctx, owner, r); err != nil {
				return err
			}
			n++
		}
		copied = true
		return tx.setMarkerRecords(ctx, owner, n)
	})
	if err != nil {
		return 0, false, err
	}
	if !copied {
		n = 0
	}
	s.logger.Info("migrate.local", "owner_id", owner, "records", n, "copied", copied)
	return n, copied, nil
}

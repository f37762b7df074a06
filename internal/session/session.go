// Package session holds the records of the active owner. It picks the
// backend from the request identity (durable store for a principal, local
// buffer otherwise), caches the owner's snapshot, and migrates the local
// buffer into the durable store once per owner.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/repository"
)

// ErrNoDurableStore is returned by MigrateLocal when only a local buffer is configured.
var ErrNoDurableStore = errors.New("no durable store configured")

// Adopter moves a snapshot into an owner's durable records exactly once.
type Adopter interface {
	Adopt(ctx context.Context, owner uuid.UUID, snap entity.Snapshot, at time.Time) (int, bool, error)
}

// Durable is the durable backend.
type Durable interface {
	repository.Store
	Adopter
}

// Session is safe for concurrent use. Only one owner's snapshot is cached
// at a time; resolving a different owner drops the others.
type Session struct {
	local    repository.Store
	durable  Durable
	identity IdentityProvider
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	cache map[uuid.UUID]*entity.Snapshot
}

// New builds a session. durable may be nil, in which case every owner is
// served from the local buffer.
func New(local repository.Store, durable Durable, identity IdentityProvider, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if identity == nil {
		identity = ContextIdentity{}
	}
	return &Session{
		local:    local,
		durable:  durable,
		identity: identity,
		logger:   logger,
		now:      time.Now,
		cache:    make(map[uuid.UUID]*entity.Snapshot),
	}
}

// resolve returns the backend and owner for ctx and evicts cache entries of
// every other owner. Callers hold s.mu.
func (s *Session) resolve(ctx context.Context) (repository.Store, uuid.UUID) {
	owner := uuid.Nil
	var store repository.Store = s.local
	if p, ok := s.identity.Principal(ctx); ok {
		owner = p.ID
		if s.durable != nil {
			store = s.durable
		}
	}
	for id := range s.cache {
		if id != owner {
			delete(s.cache, id)
			s.logger.Debug("session.cache.evict", "owner_id", id)
		}
	}
	return store, owner
}

// load returns the cached snapshot of the active owner, reading it from the
// backend on first use. Callers hold s.mu.
func (s *Session) load(ctx context.Context) (*entity.Snapshot, repository.Store, uuid.UUID, error) {
	store, owner := s.resolve(ctx)
	if snap, ok := s.cache[owner]; ok {
		return snap, store, owner, nil
	}
	snap, err := store.Snapshot(ctx, owner)
	if err != nil {
		return nil, nil, uuid.Nil, err
	}
	s.cache[owner] = &snap
	s.logger.Debug("session.cache.load", "owner_id", owner, "durable", store.Durable(),
		"transactions", len(snap.Transactions))
	return &snap, store, owner, nil
}

// Snapshot returns a copy of the active owner's records.
func (s *Session) Snapshot(ctx context.Context) (entity.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, _, _, err := s.load(ctx)
	if err != nil {
		return entity.Snapshot{}, err
	}
	return entity.Snapshot{
		Transactions:      slices.Clone(snap.Transactions),
		PettyCashEntries:  slices.Clone(snap.PettyCashEntries),
		Budgets:           slices.Clone(snap.Budgets),
		BalanceSheetItems: slices.Clone(snap.BalanceSheetItems),
	}, nil
}

// Owner reports the active owner and whether it is an authenticated principal.
func (s *Session) Owner(ctx context.Context) (uuid.UUID, bool) {
	p, ok := s.identity.Principal(ctx)
	return p.ID, ok
}

func (s *Session) AddTransaction(ctx context.Context, tx entity.Transaction) (entity.Transaction, error) {
	if err := validateTransaction(tx); err != nil {
		return entity.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, store, owner, err := s.load(ctx)
	if err != nil {
		return entity.Transaction{}, err
	}
	saved, err := store.InsertTransaction(ctx, owner, tx)
	if err != nil {
		return entity.Transaction{}, err
	}
	snap.Transactions = append([]entity.Transaction{saved}, snap.Transactions...)
	return saved, nil
}

func (s *Session) AddPettyCashEntry(ctx context.Context, e entity.PettyCashEntry) (entity.PettyCashEntry, error) {
	if err := validatePettyCash(e); err != nil {
		return entity.PettyCashEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, store, owner, err := s.load(ctx)
	if err != nil {
		return entity.PettyCashEntry{}, err
	}
	saved, err := store.InsertPettyCashEntry(ctx, owner, e)
	if err != nil {
		return entity.PettyCashEntry{}, err
	}
	snap.PettyCashEntries = append([]entity.PettyCashEntry{saved}, snap.PettyCashEntries...)
	return saved, nil
}

// AddBudget derives the end date from the period when it is missing.
func (s *Session) AddBudget(ctx context.Context, b entity.Budget) (entity.Budget, error) {
	if b.EndDate.IsZero() && !b.StartDate.IsZero() {
		b.EndDate = entity.BudgetEndDate(b.StartDate, b.Period)
	}
	if err := validateBudget(b); err != nil {
		return entity.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, store, owner, err := s.load(ctx)
	if err != nil {
		return entity.Budget{}, err
	}
	saved, err := store.InsertBudget(ctx, owner, b)
	if err != nil {
		return entity.Budget{}, err
	}
	snap.Budgets = append([]entity.Budget{saved}, snap.Budgets...)
	return saved, nil
}

func (s *Session) AddBalanceSheetItem(ctx context.Context, item entity.BalanceSheetItem) (entity.BalanceSheetItem, error) {
	if err := validateBalanceSheetItem(item); err != nil {
		return entity.BalanceSheetItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, store, owner, err := s.load(ctx)
	if err != nil {
		return entity.BalanceSheetItem{}, err
	}
	saved, err := store.InsertBalanceSheetItem(ctx, owner, item)
	if err != nil {
		return entity.BalanceSheetItem{}, err
	}
	snap.BalanceSheetItems = append([]entity.BalanceSheetItem{saved}, snap.BalanceSheetItems...)
	return saved, nil
}

// Update changes fields of one record and drops the cached snapshot so the
// next read sees the stored values.
func (s *Session) Update(ctx context.Context, c repository.Collection, id uuid.UUID, fields repository.Fields) error {
	if err := validateFields(fields); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	store, owner := s.resolve(ctx)
	if err := store.Update(ctx, c, owner, id, fields); err != nil {
		return err
	}
	delete(s.cache, owner)
	return nil
}

// Delete removes one record of the active owner.
func (s *Session) Delete(ctx context.Context, c repository.Collection, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, owner := s.resolve(ctx)
	if err := store.Delete(ctx, c, owner, id); err != nil {
		return err
	}
	if snap, ok := s.cache[owner]; ok {
		switch c {
		case repository.Transactions:
			snap.Transactions = slices.DeleteFunc(snap.Transactions, func(r entity.Transaction) bool { return r.ID == id })
		case repository.PettyCashEntries:
			snap.PettyCashEntries = slices.DeleteFunc(snap.PettyCashEntries, func(r entity.PettyCashEntry) bool { return r.ID == id })
		case repository.Budgets:
			snap.Budgets = slices.DeleteFunc(snap.Budgets, func(r entity.Budget) bool { return r.ID == id })
		case repository.BalanceSheetItems:
			snap.BalanceSheetItems = slices.DeleteFunc(snap.BalanceSheetItems, func(r entity.BalanceSheetItem) bool { return r.ID == id })
		}
	}
	return nil
}

// MigrateLocal copies the anonymous local buffer into the durable store for
// the active principal. It runs at most once per principal; later calls
// return 0. The local buffer is left as is.
func (s *Session) MigrateLocal(ctx context.Context) (int, error) {
	p, ok := s.identity.Principal(ctx)
	if !ok {
		return 0, common.NewAppError("NO_IDENTITY", "migration requires a signed-in user", common.ErrUnauthorized)
	}
	if s.durable == nil {
		return 0, ErrNoDurableStore
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buffered, err := s.local.Snapshot(ctx, uuid.Nil)
	if err != nil {
		return 0, common.WrapError(err, "read local buffer")
	}
	n, copied, err := s.durable.Adopt(ctx, p.ID, buffered, s.now())
	if err != nil {
		s.logger.Error("session.migrate.failed", "owner_id", p.ID, "error", err)
		return 0, err
	}
	if copied {
		delete(s.cache, p.ID)
		s.logger.Info("session.migrate.ok", "owner_id", p.ID, "records", n)
	}
	return n, nil
}

// Restore inserts every record of snap for the active owner. Records are
// validated first; a store failure leaves earlier records committed and
// reports how many were written.
func (s *Session) Restore(ctx context.Context, snap entity.Snapshot) (int, error) {
	var errs []error
	for _, r := range snap.Transactions {
		errs = append(errs, validateTransaction(r))
	}
	for _, r := range snap.PettyCashEntries {
		errs = append(errs, validatePettyCash(r))
	}
	for _, r := range snap.Budgets {
		errs = append(errs, validateBudget(r))
	}
	for _, r := range snap.BalanceSheetItems {
		errs = append(errs, validateBalanceSheetItem(r))
	}
	if err := errors.Join(errs...); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	store, owner := s.resolve(ctx)
	delete(s.cache, owner)

	n := 0
	fail := func(err error) (int, error) {
		s.logger.Error("session.restore.partial", "owner_id", owner, "inserted", n, "error", err)
		return n, fmt.Errorf("restore stopped after %d records: %w", n, err)
	}
	for _, r := range snap.Transactions {
		if _, err := store.InsertTransaction(ctx, owner, r); err != nil {
			return fail(err)
		}
		n++
	}
	for _, r := range snap.PettyCashEntries {
		if _, err := store.InsertPettyCashEntry(ctx, owner, r); err != nil {
			return fail(err)
		}
		n++
	}
	for _, r := range snap.Budgets {
		if _, err := store.InsertBudget(ctx, owner, r); err != nil {
			return fail(err)
		}
		n++
	}
	for _, r := range snap.BalanceSheetItems {
		if _, err := store.InsertBalanceSheetItem(ctx, owner, r); err != nil {
			return fail(err)
		}
		n++
	}
	s.logger.Info("session.restore.ok", "owner_id", owner, "records", n)
	return n, nil
}

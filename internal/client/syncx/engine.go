// Package syncx implements the dual-store sync engine: the single point of
// truth for which record store serves an operation and how faults are
// recovered.
//
// Every operation is attempted against the remote store first and retried
// against the local store on any store-level fault. This is fail-over, not
// replication: no write is attempted against both stores for a single call,
// and local-only writes are never reconciled back into the remote store once
// connectivity returns.
package syncx

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillgraph/skillgraph/internal/client/store"
	"github.com/skillgraph/skillgraph/internal/common"
	"github.com/skillgraph/skillgraph/internal/logging"
	"github.com/skillgraph/skillgraph/internal/models"
)

// Engine orchestrates reads and writes against the two record stores.
// Callers never observe which store served a request; they only see the
// terminal account errors or common.ErrPersistenceUnavailable when both
// stores faulted.
type Engine struct {
	remote store.RecordStore
	local  store.RecordStore
	logger logging.Logger
}

// NewEngine builds an Engine over the given remote and local stores.
func NewEngine(remote, local store.RecordStore, logger logging.Logger) *Engine {
	return &Engine{
		remote: remote,
		local:  local,
		logger: logger.With("module", "sync_engine"),
	}
}

// terminal reports whether err must be surfaced verbatim instead of
// triggering failover.
func terminal(err error) bool {
	return errors.Is(err, common.ErrDuplicateIdentity) ||
		errors.Is(err, common.ErrInvalidCredential)
}

// CreateAccount registers the account remote-first.
func (e *Engine) CreateAccount(ctx context.Context, name, email, password string) (*models.Identity, error) {
	id, err := e.remote.CreateAccount(ctx, name, email, password)
	if err == nil || terminal(err) {
		return id, err
	}
	e.logger.Warn(ctx, "remote signup failed, switching to local store", "error", err)

	id, err = e.local.CreateAccount(ctx, name, email, password)
	if err != nil && !terminal(err) {
		return nil, fmt.Errorf("%w: signup", common.ErrPersistenceUnavailable)
	}
	return id, err
}

// Authenticate verifies credentials remote-first.
func (e *Engine) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	id, err := e.remote.Authenticate(ctx, email, password)
	if err == nil || terminal(err) {
		return id, err
	}
	e.logger.Warn(ctx, "remote login failed, switching to local store", "error", err)

	id, err = e.local.Authenticate(ctx, email, password)
	if err != nil && !terminal(err) {
		return nil, fmt.Errorf("%w: login", common.ErrPersistenceUnavailable)
	}
	return id, err
}

// AuthenticateFederated resolves the external identity remote-first.
func (e *Engine) AuthenticateFederated(ctx context.Context, externalID, email, name string) (*models.Identity, error) {
	id, err := e.remote.AuthenticateFederated(ctx, externalID, email, name)
	if err == nil {
		return id, nil
	}
	e.logger.Warn(ctx, "remote federated login failed, switching to local store", "error", err)

	id, err = e.local.AuthenticateFederated(ctx, externalID, email, name)
	if err != nil {
		return nil, fmt.Errorf("%w: federated login", common.ErrPersistenceUnavailable)
	}
	return id, nil
}

// WriteSlice persists one slice write remote-first. The caller never
// observes a store fault as long as one store accepts the write.
func (e *Engine) WriteSlice(ctx context.Context, userID string, slice models.Slice, value any) error {
	err := e.remote.WriteSlice(ctx, userID, slice, value)
	if err == nil {
		return nil
	}
	e.logger.Warn(ctx, "remote slice write failed, switching to local store",
		"slice", slice, "error", err)

	if err := e.local.WriteSlice(ctx, userID, slice, value); err != nil {
		return fmt.Errorf("%w: writing %s", common.ErrPersistenceUnavailable, slice)
	}
	return nil
}

// ReadAll hydrates the full record remote-first. Explicit absence is
// (nil, nil); both stores faulting yields ErrPersistenceUnavailable.
func (e *Engine) ReadAll(ctx context.Context, userID string) (*models.UserRecord, error) {
	rec, err := e.remote.ReadAll(ctx, userID)
	if err == nil {
		return rec, nil
	}
	e.logger.Warn(ctx, "remote read failed, switching to local store", "error", err)

	rec, err = e.local.ReadAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: reading record", common.ErrPersistenceUnavailable)
	}
	return rec, nil
}

package userstore

import (
	"context"
	"errors"

	"github.com/dalemusser/accidentdash/internal/app/system/auth"
	"github.com/dalemusser/accidentdash/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Fetcher implements auth.UserFetcher so the session middleware sees the
// current row for the signed-in email on every request.
type Fetcher struct {
	store *Store
	log   *zap.Logger
}

// NewFetcher creates a UserFetcher backed by the given store.
func NewFetcher(store *Store, logger *zap.Logger) *Fetcher {
	return &Fetcher{store: store, log: logger}
}

// FetchUser returns nil if the user no longer exists or the lookup fails.
func (f *Fetcher) FetchUser(ctx context.Context, email string) *auth.SessionUser {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	u, err := f.store.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && f.log != nil {
			f.log.Warn("session user lookup failed", zap.Error(err))
		}
		return nil
	}
	return &auth.SessionUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Package drafts persists wizard forms in Redis so vendors can resume a flow
// later or from another device.
package drafts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/festivo/festivo-backend/internal/wizard"
	"github.com/festivo/festivo-backend/pkg/config"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
	"github.com/festivo/festivo-backend/pkg/redis"
)

type cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	DraftKey(wizardKind, ownerID string) string
}

// Store is a redis-backed wizard.DraftStore.
type Store struct {
	cache cache
	ttl   time.Duration
}

var _ wizard.DraftStore = (*Store)(nil)

func NewStore(client *redis.Client, cfg config.DraftsConfig) (*Store, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "redis client is required")
	}
	return &Store{cache: client, ttl: cfg.TTL}, nil
}

// SaveDraft serializes the form as-is. Drafts are never validated; a half
// finished record is the whole point.
func (s *Store) SaveDraft(ctx context.Context, kind, ownerID string, form wizard.Form) error {
	payload, err := json.Marshal(form)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal wizard draft")
	}
	if err := s.cache.Set(ctx, s.cache.DraftKey(kind, ownerID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store wizard draft")
	}
	return nil
}

// LoadDraft returns nil without error when no draft exists.
func (s *Store) LoadDraft(ctx context.Context, kind, ownerID string) (*wizard.Form, error) {
	raw, err := s.cache.Get(ctx, s.cache.DraftKey(kind, ownerID))
	if err != nil {
		if redis.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wizard draft")
	}
	var form wizard.Form
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode wizard draft")
	}
	return &form, nil
}

// DeleteDraft drops a stored draft, typically after a successful submit.
func (s *Store) DeleteDraft(ctx context.Context, kind, ownerID string) error {
	if err := s.cache.Del(ctx, s.cache.DraftKey(kind, ownerID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wizard draft")
	}
	return nil
}

package drafts

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/festivo/festivo-backend/internal/wizard"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

type stubCache struct {
	values  map[string]string
	setErr  error
	getErr  error
	lastTTL time.Duration
}

func newStubCache() *stubCache {
	return &stubCache{values: map[string]string{}}
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.lastTTL = ttl
	switch v := value.(type) {
	case []byte:
		s.values[key] = string(v)
	case string:
		s.values[key] = v
	}
	return nil
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (s *stubCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *stubCache) DraftKey(kind, ownerID string) string {
	return "fv:draft:" + kind + ":" + ownerID
}

func TestDraftRoundTrip(t *testing.T) {
	t.Parallel()

	cache := newStubCache()
	store := &Store{cache: cache, ttl: time.Hour}

	form := wizard.Form{
		Record:      wizard.Record{"title": "Half Done", "capacity": float64(120)},
		Attachments: []wizard.Attachment{{ID: "att-1", Name: "barn.jpg"}},
	}
	if err := store.SaveDraft(context.Background(), "service_card", "vendor-1", form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.lastTTL != time.Hour {
		t.Fatalf("ttl not applied: %v", cache.lastTTL)
	}

	loaded, err := store.LoadDraft(context.Background(), "service_card", "vendor-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded == nil || loaded.Record["title"] != "Half Done" {
		t.Fatalf("unexpected draft: %+v", loaded)
	}
	if len(loaded.Attachments) != 1 || loaded.Attachments[0].Name != "barn.jpg" {
		t.Fatalf("attachments lost: %+v", loaded.Attachments)
	}
}

func TestLoadDraftMissIsNil(t *testing.T) {
	t.Parallel()

	store := &Store{cache: newStubCache(), ttl: time.Hour}
	loaded, err := store.LoadDraft(context.Background(), "service_card", "vendor-9")
	if err != nil || loaded != nil {
		t.Fatalf("miss should be nil, nil: %+v %v", loaded, err)
	}
}

func TestDraftDependencyErrors(t *testing.T) {
	t.Parallel()

	cache := newStubCache()
	cache.setErr = errors.New("redis down")
	store := &Store{cache: cache, ttl: time.Hour}

	err := store.SaveDraft(context.Background(), "service_card", "vendor-1", wizard.Form{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	cache.getErr = errors.New("redis down")
	_, err = store.LoadDraft(context.Background(), "service_card", "vendor-1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestDeleteDraft(t *testing.T) {
	t.Parallel()

	cache := newStubCache()
	store := &Store{cache: cache, ttl: time.Hour}
	if err := store.SaveDraft(context.Background(), "service_card", "vendor-1", wizard.Form{Record: wizard.Record{}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.DeleteDraft(context.Background(), "service_card", "vendor-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := store.LoadDraft(context.Background(), "service_card", "vendor-1")
	if err != nil || loaded != nil {
		t.Fatalf("draft should be gone: %+v %v", loaded, err)
	}
}

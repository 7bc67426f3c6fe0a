package wizard

import (
	"context"
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

// StepsFactory resolves a wizard kind into its step definitions and initial
// record. The concrete forms register themselves through this hook so the
// engine package stays free of domain rules.
type StepsFactory func(kind string) ([]Step, Record, error)

// Snapshot is the client-facing view of a wizard instance after any operation.
type Snapshot struct {
	ID          uuid.UUID    `json:"id"`
	Kind        string       `json:"kind"`
	CurrentStep int          `json:"current_step"`
	StepCount   int          `json:"step_count"`
	StepTitle   string       `json:"step_title"`
	Record      Record       `json:"record"`
	Errors      FieldErrors  `json:"errors"`
	Attachments []Attachment `json:"attachments"`
}

// Service manages live wizard instances keyed by id.
type Service interface {
	Start(ctx context.Context, kind, ownerID string) (Snapshot, error)
	Get(ctx context.Context, id uuid.UUID) (Snapshot, error)
	Next(ctx context.Context, id uuid.UUID) (Snapshot, error)
	Previous(ctx context.Context, id uuid.UUID) (Snapshot, error)
	GoTo(ctx context.Context, id uuid.UUID, step int) (Snapshot, error)
	UpdateField(ctx context.Context, id uuid.UUID, key string, value any) (Snapshot, error)
	AddAttachment(ctx context.Context, id uuid.UUID, att Attachment) (Snapshot, error)
	SaveDraft(ctx context.Context, id uuid.UUID) (Snapshot, error)
	RestoreDraft(ctx context.Context, id uuid.UUID) (Snapshot, bool, error)
	Submit(ctx context.Context, id uuid.UUID) (Snapshot, SubmitResult, error)
}

// managed wraps an engine with its own lock; the engine itself is not safe
// for concurrent use.
type managed struct {
	mu     sync.Mutex
	engine *Engine
}

type service struct {
	factory StepsFactory
	sink    Sink
	drafts  DraftStore

	mu        sync.RWMutex
	instances map[uuid.UUID]*managed
}

// NewService builds the wizard registry. The sink and draft store may be nil
// in tests; the engine reports a dependency error if they are exercised.
func NewService(factory StepsFactory, sink Sink, drafts DraftStore) (Service, error) {
	if factory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "steps factory is required")
	}
	return &service{
		factory:   factory,
		sink:      sink,
		drafts:    drafts,
		instances: make(map[uuid.UUID]*managed),
	}, nil
}

func (s *service) Start(ctx context.Context, kind, ownerID string) (Snapshot, error) {
	if ownerID == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	steps, initial, err := s.factory(kind)
	if err != nil {
		return Snapshot{}, err
	}
	engine, err := NewEngine(kind, ownerID, steps, s.sink, s.drafts, initial)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build wizard engine")
	}

	id := uuid.New()
	s.mu.Lock()
	s.instances[id] = &managed{engine: engine}
	s.mu.Unlock()

	return snapshot(id, engine), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	return s.with(id, func(*Engine) error { return nil })
}

func (s *service) Next(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	return s.with(id, func(e *Engine) error {
		e.Next()
		return nil
	})
}

func (s *service) Previous(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	return s.with(id, func(e *Engine) error {
		e.Previous()
		return nil
	})
}

func (s *service) GoTo(ctx context.Context, id uuid.UUID, step int) (Snapshot, error) {
	return s.with(id, func(e *Engine) error {
		e.GoTo(step)
		return nil
	})
}

func (s *service) UpdateField(ctx context.Context, id uuid.UUID, key string, value any) (Snapshot, error) {
	if key == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "field key is required")
	}
	return s.with(id, func(e *Engine) error {
		e.UpdateField(key, value)
		return nil
	})
}

func (s *service) AddAttachment(ctx context.Context, id uuid.UUID, att Attachment) (Snapshot, error) {
	if att.ID == "" {
		att.ID = uuid.NewString()
	}
	return s.with(id, func(e *Engine) error {
		e.AddAttachment(att)
		return nil
	})
}

func (s *service) SaveDraft(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	return s.with(id, func(e *Engine) error {
		return e.SaveDraft(ctx)
	})
}

func (s *service) RestoreDraft(ctx context.Context, id uuid.UUID) (Snapshot, bool, error) {
	inst, err := s.instance(id)
	if err != nil {
		return Snapshot{}, false, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	restored, err := inst.engine.RestoreDraft(ctx)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snapshot(id, inst.engine), restored, nil
}

func (s *service) Submit(ctx context.Context, id uuid.UUID) (Snapshot, SubmitResult, error) {
	inst, err := s.instance(id)
	if err != nil {
		return Snapshot{}, SubmitResult{}, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	result, err := inst.engine.Submit(ctx)
	if err != nil {
		return snapshot(id, inst.engine), SubmitResult{}, err
	}
	return snapshot(id, inst.engine), result, nil
}

func (s *service) with(id uuid.UUID, op func(*Engine) error) (Snapshot, error) {
	inst, err := s.instance(id)
	if err != nil {
		return Snapshot{}, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if err := op(inst.engine); err != nil {
		return Snapshot{}, err
	}
	return snapshot(id, inst.engine), nil
}

func (s *service) instance(id uuid.UUID) (*managed, error) {
	s.mu.RLock()
	inst, ok := s.instances[id]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wizard not found")
	}
	return inst, nil
}

func snapshot(id uuid.UUID, e *Engine) Snapshot {
	form := e.Form()
	return Snapshot{
		ID:          id,
		Kind:        e.Kind(),
		CurrentStep: e.CurrentStep(),
		StepCount:   e.StepCount(),
		StepTitle:   e.StepTitle(),
		Record:      form.Record,
		Errors:      e.Errors(),
		Attachments: form.Attachments,
	}
}

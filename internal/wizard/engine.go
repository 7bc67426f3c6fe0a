package wizard

import (
	"context"
	"fmt"

	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
	"go.uber.org/multierr"
)

// Record is the shared form record patched field by field across steps.
type Record map[string]any

// Attachment is an opaque handle to an uploaded binary. Attachments live
// beside the record, not inside it, so serialization can treat them apart
// from scalar fields.
type Attachment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Ref         string `json:"ref"`
}

// Form pairs the record with its attachments; it is what validators see and
// what drafts and submissions serialize.
type Form struct {
	Record      Record       `json:"record"`
	Attachments []Attachment `json:"attachments"`
}

// FieldErrors maps field names to user-facing messages.
type FieldErrors map[string]string

// Validator checks one step's slice of the form. The engine carries no domain
// rules of its own.
type Validator func(Form) FieldErrors

// Step is a static step definition.
type Step struct {
	Ordinal  int
	Title    string
	Validate Validator
}

// Submission is the serialized wizard output handed to the sink.
type Submission struct {
	Kind        string       `json:"kind"`
	OwnerID     string       `json:"owner_id"`
	Record      Record       `json:"record"`
	Attachments []Attachment `json:"attachments"`
}

// SubmitResult reports the sink's decision. A non-success result is a
// recoverable server/validation outcome, not an error.
type SubmitResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// Sink receives completed wizard records.
type Sink interface {
	Submit(ctx context.Context, submission Submission) (SubmitResult, error)
}

// DraftStore persists partial forms; drafts are unvalidated by design.
type DraftStore interface {
	SaveDraft(ctx context.Context, kind, ownerID string, form Form) error
	LoadDraft(ctx context.Context, kind, ownerID string) (*Form, error)
}

// Engine drives one wizard instance. It is not safe for concurrent use; the
// owning service serializes access per instance.
type Engine struct {
	kind    string
	ownerID string
	steps   []Step
	sink    Sink
	drafts  DraftStore

	form    Form
	current int
	errors  FieldErrors
}

// NewEngine validates the step definitions and builds an engine positioned on
// step 1 with the provided initial record.
func NewEngine(kind, ownerID string, steps []Step, sink Sink, drafts DraftStore, initial Record) (*Engine, error) {
	var errs []error
	if kind == "" {
		errs = append(errs, fmt.Errorf("wizard kind required"))
	}
	if len(steps) == 0 {
		errs = append(errs, fmt.Errorf("at least one step required"))
	}
	for i, step := range steps {
		if step.Ordinal != i+1 {
			errs = append(errs, fmt.Errorf("step %q has ordinal %d, want %d", step.Title, step.Ordinal, i+1))
		}
		if step.Validate == nil {
			errs = append(errs, fmt.Errorf("step %q has no validator", step.Title))
		}
	}
	if combined := multierr.Combine(errs...); combined != nil {
		return nil, combined
	}

	record := Record{}
	for k, v := range initial {
		record[k] = v
	}

	return &Engine{
		kind:    kind,
		ownerID: ownerID,
		steps:   steps,
		sink:    sink,
		drafts:  drafts,
		form:    Form{Record: record, Attachments: []Attachment{}},
		current: 1,
		errors:  FieldErrors{},
	}, nil
}

// Kind returns the wizard kind.
func (e *Engine) Kind() string { return e.kind }

// OwnerID returns the owning vendor/user id.
func (e *Engine) OwnerID() string { return e.ownerID }

// CurrentStep returns the 1-based step index.
func (e *Engine) CurrentStep() int { return e.current }

// StepCount returns N.
func (e *Engine) StepCount() int { return len(e.steps) }

// StepTitle returns the current step's title.
func (e *Engine) StepTitle() string { return e.steps[e.current-1].Title }

// Form returns a copy of the record and attachments.
func (e *Engine) Form() Form {
	record := make(Record, len(e.form.Record))
	for k, v := range e.form.Record {
		record[k] = v
	}
	attachments := make([]Attachment, len(e.form.Attachments))
	copy(attachments, e.form.Attachments)
	return Form{Record: record, Attachments: attachments}
}

// Errors returns a copy of the current error map.
func (e *Engine) Errors() FieldErrors {
	out := make(FieldErrors, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

// Next validates the current step. On success it advances (capped at N) and
// clears errors; on failure it stays put and stores them. Next never advances
// past a failing validator.
func (e *Engine) Next() bool {
	errs := e.steps[e.current-1].Validate(e.Form())
	if len(errs) > 0 {
		e.errors = errs
		return false
	}
	e.errors = FieldErrors{}
	if e.current < len(e.steps) {
		e.current++
	}
	return true
}

// Previous steps back unconditionally, floored at step 1. The record is left
// untouched so re-entering a step shows everything already typed.
func (e *Engine) Previous() {
	if e.current > 1 {
		e.current--
	}
}

// GoTo jumps directly to a step, clamped to [1, N]. Unlike Next it does not
// validate; step indicators allow free movement in either direction.
func (e *Engine) GoTo(step int) {
	if step < 1 {
		step = 1
	}
	if step > len(e.steps) {
		step = len(e.steps)
	}
	e.current = step
}

// UpdateField patches one record field and clears any stale error for it.
func (e *Engine) UpdateField(key string, value any) {
	e.form.Record[key] = value
	delete(e.errors, key)
}

// AddAttachment registers an attachment handle.
func (e *Engine) AddAttachment(att Attachment) {
	e.form.Attachments = append(e.form.Attachments, att)
	delete(e.errors, "attachments")
}

// Submit re-validates the current (final) step, then hands the whole form to
// the sink. The step position is left alone on success; navigation after a
// successful submit belongs to the caller.
func (e *Engine) Submit(ctx context.Context) (SubmitResult, error) {
	if errs := e.steps[e.current-1].Validate(e.Form()); len(errs) > 0 {
		e.errors = errs
		return SubmitResult{}, pkgerrors.New(pkgerrors.CodeValidation, "wizard step is incomplete").WithDetails(errs)
	}
	if e.sink == nil {
		return SubmitResult{}, pkgerrors.New(pkgerrors.CodeDependency, "submission sink not configured")
	}

	form := e.Form()
	result, err := e.sink.Submit(ctx, Submission{
		Kind:        e.kind,
		OwnerID:     e.ownerID,
		Record:      form.Record,
		Attachments: form.Attachments,
	})
	if err != nil {
		return SubmitResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit wizard record")
	}
	return result, nil
}

// SaveDraft serializes the full form without validating it.
func (e *Engine) SaveDraft(ctx context.Context) error {
	if e.drafts == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "draft store not configured")
	}
	if err := e.drafts.SaveDraft(ctx, e.kind, e.ownerID, e.Form()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wizard draft")
	}
	return nil
}

// RestoreDraft replaces the form with a stored draft, if one exists.
func (e *Engine) RestoreDraft(ctx context.Context) (bool, error) {
	if e.drafts == nil {
		return false, pkgerrors.New(pkgerrors.CodeDependency, "draft store not configured")
	}
	form, err := e.drafts.LoadDraft(ctx, e.kind, e.ownerID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wizard draft")
	}
	if form == nil {
		return false, nil
	}
	if form.Record == nil {
		form.Record = Record{}
	}
	if form.Attachments == nil {
		form.Attachments = []Attachment{}
	}
	e.form = *form
	e.errors = FieldErrors{}
	return true, nil
}

// Package submission runs a form through validation, rendering,
// persistence and delivery.
package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"mtadmin/internal/domain/delivery"
	"mtadmin/internal/domain/record"
)

// State is a stage of a submission.
type State string

const (
	StateValidating State = "validating"
	StateRendering  State = "rendering"
	StatePersisting State = "persisting"
	StateDelivering State = "delivering"
	StateDone       State = "done"
)

// Status is the combined outcome of a submission.
type Status string

const (
	// StatusSuccess: persisted and delivered.
	StatusSuccess Status = "success"
	// StatusPartialSuccess: persisted, delivery failed or not configured.
	StatusPartialSuccess Status = "partial_success"
	// StatusPartial: not persisted; Delivered reports what happened.
	StatusPartial Status = "partial"
	// StatusValidationFailed: nothing was rendered, stored or sent.
	StatusValidationFailed Status = "validation_failed"
)

// Store is the part of the record store used by submissions.
type Store interface {
	Append(rec *record.Record) error
	Exists(id string) bool
	Get(id string) (*record.Record, error)
	Update(id string, fields record.Fields) error
}

// Renderer formats the channel message.
type Renderer interface {
	RenderRecord(rec *record.Record) string
}

// WebhookResolver resolves the webhook URL of a record type.
type WebhookResolver interface {
	URLFor(t record.RecType) string
}

// Result is what a submission reports back to the caller.
type Result struct {
	Status    Status
	Message   string
	Record    *record.Record
	Persisted bool
	Delivered bool
	// Err is the validation or persistence error, if any.
	Err    error
	States []State
}

// Succeeded reports whether the record was both persisted and delivered.
func (r Result) Succeeded() bool {
	return r.Status == StatusSuccess
}

type Service struct {
	validator record.Validator
	renderer  Renderer
	store     Store
	deliverer delivery.Deliverer
	webhooks  WebhookResolver
	log       *slog.Logger
	now       func() time.Time
}

func NewService(
	validator record.Validator,
	renderer Renderer,
	store Store,
	deliverer delivery.Deliverer,
	webhooks WebhookResolver,
	log *slog.Logger,
) *Service {
	return &Service{
		validator: validator,
		renderer:  renderer,
		store:     store,
		deliverer: deliverer,
		webhooks:  webhooks,
		log:       log.With("component", "submission"),
		now:       time.Now,
	}
}

// Submit validates fields, renders the message, appends a record and posts
// the message. A persistence failure does not stop delivery.
func (s *Service) Submit(ctx context.Context, typ record.RecType, fields record.Fields) Result {
	res := Result{States: []State{StateValidating}}
	log := s.log.With("record_type", typ)

	fields = s.validator.Normalize(typ, fields)
	if err := s.validator.Validate(typ, fields); err != nil {
		log.Info("submission rejected", "error", err)
		res.Status = StatusValidationFailed
		res.Err = err
		res.States = append(res.States, StateDone)
		return res
	}

	res.States = append(res.States, StateRendering)
	now := s.now()
	rec := record.New(typ, fields, now)
	rec.ID = record.UniqueID(rec.ID, s.store.Exists)
	res.Record = rec
	res.Message = s.renderer.RenderRecord(rec)

	res.States = append(res.States, StatePersisting)
	if err := s.store.Append(rec); err != nil {
		log.Error("record not persisted", "record_id", rec.ID, "error", err)
		res.Err = err
	} else {
		res.Persisted = true
	}

	res.States = append(res.States, StateDelivering)
	res.Delivered = s.deliverer.Deliver(ctx, delivery.Request{
		Message:    res.Message,
		URL:        s.webhooks.URLFor(typ),
		RecordID:   rec.ID,
		RecordType: typ,
	})

	switch {
	case res.Persisted && res.Delivered:
		res.Status = StatusSuccess
	case res.Persisted:
		res.Status = StatusPartialSuccess
	default:
		res.Status = StatusPartial
	}
	res.States = append(res.States, StateDone)

	log.Info("submission done",
		"record_id", rec.ID,
		"status", res.Status,
		"persisted", res.Persisted,
		"delivered", res.Delivered,
	)
	return res
}

// Edit validates fields against the type of record id and replaces them.
// Edits are never delivered.
func (s *Service) Edit(_ context.Context, id string, fields record.Fields) (*record.Record, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	fields = s.validator.Normalize(rec.Type, fields)
	if err := s.validator.Validate(rec.Type, fields); err != nil {
		return nil, err
	}
	if err := s.store.Update(id, fields); err != nil {
		return nil, fmt.Errorf("update record %s: %w", id, err)
	}

	rec.Fields = fields
	s.log.Info("record edited", "record_id", id, "record_type", rec.Type)
	return rec, nil
}

// Rerender reproduces the message of a stored record.
func (s *Service) Rerender(rec *record.Record) string {
	return s.renderer.RenderRecord(rec)
}

// Describe turns a result into a one-line summary for the user.
func Describe(res Result) string {
	switch res.Status {
	case StatusSuccess:
		return fmt.Sprintf("record %s saved and delivered", res.Record.ID)
	case StatusPartialSuccess:
		return fmt.Sprintf("record %s saved, delivery failed (webhook missing or unreachable)", res.Record.ID)
	case StatusPartial:
		if res.Delivered {
			return fmt.Sprintf("delivered, but record could not be saved: %v", res.Err)
		}
		return fmt.Sprintf("record could not be saved and delivery failed: %v", res.Err)
	case StatusValidationFailed:
		var verr *record.ValidationError
		if errors.As(res.Err, &verr) {
			return "invalid input: " + verr.Error()
		}
		return fmt.Sprintf("invalid input: %v", res.Err)
	default:
		return string(res.Status)
	}
}

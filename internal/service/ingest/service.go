package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memberwise/memberful-go/internal/storage"
	"github.com/memberwise/memberful-go/internal/xslog"
	"github.com/memberwise/memberful-go/webhooks"
)

type ProcessRequest struct {
	Body      []byte
	Signature string
}

type Service interface {
	// ProcessWebhook verifies the signature, parses the event, records it,
	// and dispatches it to registered handlers.
	// Returns webhooks.ErrMissingSignature if the signature header is empty.
	// Returns webhooks.ErrInvalidSignature if the signature doesn't match.
	// Returns an *webhooks.UnsupportedEventTypeError for unknown event types
	// (the caller may treat that as success).
	ProcessWebhook(ctx context.Context, req ProcessRequest) error
}

var _ Service = (*Processor)(nil)

type Processor struct {
	processor *webhooks.Processor
	mux       *webhooks.Mux
	events    storage.EventStore
}

func NewProcessor(secret string, events storage.EventStore, mux *webhooks.Mux) *Processor {
	if mux == nil {
		mux = webhooks.NewMux()
	}
	return &Processor{
		processor: webhooks.NewProcessor(secret),
		mux:       mux,
		events:    events,
	}
}

func (p *Processor) ProcessWebhook(ctx context.Context, req ProcessRequest) error {
	ev, err := p.processor.Process(req.Body, req.Signature)
	if err != nil {
		return err
	}

	if p.events != nil {
		rec := storage.EventRecord{
			ID:         uuid.New().String(),
			Type:       ev.EventType(),
			ReceivedAt: time.Now().UTC(),
			Payload:    req.Body,
		}
		if err := p.events.Add(ctx, rec); err != nil {
			// recording failures should not drop the event
			xslog.FromContext(ctx).WarnContext(ctx, "failed to record webhook event",
				xslog.EventType(string(ev.EventType())), xslog.Error(err))
		}
	}

	if err := p.mux.Dispatch(ctx, ev); err != nil {
		return fmt.Errorf("failed to dispatch %s event: %w", ev.EventType(), err)
	}

	xslog.FromContext(ctx).InfoContext(ctx, "webhook processed",
		xslog.EventType(string(ev.EventType())))
	return nil
}

// IsUnsupported reports whether err came from an unrecognized event type.
func IsUnsupported(err error) bool {
	var unsupported *webhooks.UnsupportedEventTypeError
	return errors.As(err, &unsupported)
}

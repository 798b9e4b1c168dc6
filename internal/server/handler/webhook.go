package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/memberwise/memberful-go/internal/service/ingest"
	"github.com/memberwise/memberful-go/internal/xerrors"
	"github.com/memberwise/memberful-go/internal/xslog"
	"github.com/memberwise/memberful-go/webhooks"
)

type Webhook struct {
	service ingest.Service
}

func NewWebhook(service ingest.Service) *Webhook {
	return &Webhook{service: service}
}

// HandleWebhook handles POST /webhooks/memberful requests.
func (h *Webhook) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read webhook body", xslog.Error(err))
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("failed to read request body")))
		return
	}

	req := ingest.ProcessRequest{
		Body:      body,
		Signature: r.Header.Get(webhooks.HeaderSignature),
	}

	if err := h.service.ProcessWebhook(ctx, req); err != nil {
		if errors.Is(err, webhooks.ErrMissingSignature) {
			logger.WarnContext(ctx, "missing webhook signature header")
			xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("missing signature header")))
			return
		}

		if errors.Is(err, webhooks.ErrInvalidSignature) {
			logger.WarnContext(ctx, "invalid webhook signature")
			xerrors.WriteError(ctx, w, xerrors.Unauthorized(xerrors.WithMessage("invalid signature")))
			return
		}

		if ingest.IsUnsupported(err) {
			logger.WarnContext(ctx, "unsupported webhook event", xslog.Error(err))
			xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage(err.Error())))
			return
		}

		var verr *webhooks.ValidationError
		if errors.As(err, &verr) {
			logger.WarnContext(ctx, "malformed webhook payload", xslog.Error(err))
			xerrors.WriteError(ctx, w, xerrors.Validation(
				map[string]string{verr.Entity: verr.Msg},
				xerrors.WithMessage("malformed webhook payload"),
			))
			return
		}

		logger.ErrorContext(ctx, "failed to process webhook", xslog.Error(err))
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithMessage("failed to process webhook"), xerrors.WithCause(err)))
		return
	}

	w.WriteHeader(http.StatusOK)
}

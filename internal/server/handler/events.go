package handler

import (
	"net/http"
	"strconv"

	"github.com/memberwise/memberful-go/internal/storage"
	"github.com/memberwise/memberful-go/internal/xerrors"
	"github.com/memberwise/memberful-go/internal/xhttp"
	"github.com/memberwise/memberful-go/internal/xslog"
)

const defaultRecentLimit = 50

type Events struct {
	store storage.EventStore
}

func NewEvents(store storage.EventStore) *Events {
	return &Events{store: store}
}

// HandleRecent handles GET /events requests, returning recently
// received webhook events newest first.
func (h *Events) HandleRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultRecentLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("invalid limit parameter")))
			return
		}
		limit = n
	}

	records, err := h.store.Recent(ctx, limit)
	if err != nil {
		xslog.FromContext(ctx).ErrorContext(ctx, "failed to list events", xslog.Error(err))
		xerrors.WriteError(ctx, w, xerrors.Internal(xerrors.WithCause(err)))
		return
	}

	xslog.FromContext(ctx).DebugContext(ctx, "listed events", xslog.Count(len(records)))

	type response struct {
		Events []storage.EventRecord `json:"events"`
		Count  int                   `json:"count"`
	}
	xhttp.WriteOK(w, response{Events: records, Count: len(records)})
}

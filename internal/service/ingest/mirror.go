package ingest

import (
	"context"

	"github.com/memberwise/memberful-go/internal/storage"
	"github.com/memberwise/memberful-go/internal/xslog"
	"github.com/memberwise/memberful-go/webhooks"
)

// RegisterMemberMirror wires member lifecycle events into the member store,
// keeping a local copy of member state in sync with the platform.
func RegisterMemberMirror(mux *webhooks.Mux, members *storage.MemberStore) {
	mux.Handle(func(ctx context.Context, ev webhooks.Event) error {
		switch e := ev.(type) {
		case webhooks.MemberSignupEvent:
			return members.Upsert(ctx, &e.Member)
		case webhooks.MemberUpdatedEvent:
			return members.Upsert(ctx, &e.Member)
		case webhooks.MemberDeletedEvent:
			xslog.FromContext(ctx).InfoContext(ctx, "member deleted",
				xslog.MemberID(e.Member.ID))
			return members.Delete(ctx, e.Member.ID)
		}
		return nil
	}, webhooks.EventMemberSignup, webhooks.EventMemberUpdated, webhooks.EventMemberDeleted)
}

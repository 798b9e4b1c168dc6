package webhooks

import (
	"fmt"

	go_json "github.com/goccy/go-json"
)

// ParsePayload decodes a raw webhook body into the matching typed event.
// It is a pure function: the discriminator is matched exactly against the
// supported set and the corresponding variant is decoded from the same
// bytes. A missing or unknown discriminator yields
// *UnsupportedEventTypeError; schema violations yield *ValidationError.
func ParsePayload(data []byte) (Event, error) {
	var probe struct {
		Event *string `json:"event"`
	}
	if err := go_json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	if probe.Event == nil {
		return nil, &UnsupportedEventTypeError{}
	}

	switch EventType(*probe.Event) {
	case EventMemberSignup:
		return decodeEvent[MemberSignupEvent](data)
	case EventMemberUpdated:
		return decodeEvent[MemberUpdatedEvent](data)
	case EventMemberDeleted:
		return decodeEvent[MemberDeletedEvent](data)
	case EventSubscriptionCreated:
		return decodeEvent[SubscriptionCreatedEvent](data)
	case EventSubscriptionUpdated:
		return decodeEvent[SubscriptionUpdatedEvent](data)
	case EventSubscriptionActivated:
		return decodeEvent[SubscriptionActivatedEvent](data)
	case EventSubscriptionDeactivated:
		return decodeEvent[SubscriptionDeactivatedEvent](data)
	case EventSubscriptionDeleted:
		return decodeEvent[SubscriptionDeletedEvent](data)
	case EventSubscriptionRenewed:
		return decodeEvent[SubscriptionRenewedEvent](data)
	case EventOrderPurchased:
		return decodeEvent[OrderPurchasedEvent](data)
	case EventOrderRefunded:
		return decodeEvent[OrderRefundedEvent](data)
	case EventOrderCompleted:
		return decodeEvent[OrderCompletedEvent](data)
	case EventOrderSuspended:
		return decodeEvent[OrderSuspendedEvent](data)
	case EventPlanCreated:
		return decodeEvent[SubscriptionPlanCreatedEvent](data)
	case EventPlanUpdated:
		return decodeEvent[SubscriptionPlanUpdatedEvent](data)
	case EventPlanDeleted:
		return decodeEvent[SubscriptionPlanDeletedEvent](data)
	case EventDownloadCreated:
		return decodeEvent[DownloadCreatedEvent](data)
	case EventDownloadUpdated:
		return decodeEvent[DownloadUpdatedEvent](data)
	case EventDownloadDeleted:
		return decodeEvent[DownloadDeletedEvent](data)
	default:
		return nil, &UnsupportedEventTypeError{Event: *probe.Event}
	}
}

func decodeEvent[T Event](data []byte) (Event, error) {
	var e T
	if err := go_json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e, nil
}

package webhooks

import "fmt"

// EventType is the fixed discriminator string carried in a payload's
// top-level "event" field. Matching is exact and case-sensitive.
type EventType string

const (
	EventMemberSignup            EventType = "member_signup"
	EventMemberUpdated           EventType = "member_updated"
	EventMemberDeleted           EventType = "member.deleted"
	EventSubscriptionCreated     EventType = "subscription.created"
	EventSubscriptionUpdated     EventType = "subscription.updated"
	EventSubscriptionActivated   EventType = "subscription.activated"
	EventSubscriptionDeactivated EventType = "subscription.deactivated"
	EventSubscriptionDeleted     EventType = "subscription.deleted"
	EventSubscriptionRenewed     EventType = "subscription.renewed"
	EventOrderPurchased          EventType = "order.purchased"
	EventOrderRefunded           EventType = "order.refunded"
	EventOrderCompleted          EventType = "order.completed"
	EventOrderSuspended          EventType = "order.suspended"
	EventPlanCreated             EventType = "subscription_plan.created"
	EventPlanUpdated             EventType = "subscription_plan.updated"
	EventPlanDeleted             EventType = "subscription_plan.deleted"
	EventDownloadCreated         EventType = "download.created"
	EventDownloadUpdated         EventType = "download.updated"
	EventDownloadDeleted         EventType = "download.deleted"
)

// EventTypes lists every supported discriminator.
func EventTypes() []EventType {
	return []EventType{
		EventMemberSignup,
		EventMemberUpdated,
		EventMemberDeleted,
		EventSubscriptionCreated,
		EventSubscriptionUpdated,
		EventSubscriptionActivated,
		EventSubscriptionDeactivated,
		EventSubscriptionDeleted,
		EventSubscriptionRenewed,
		EventOrderPurchased,
		EventOrderRefunded,
		EventOrderCompleted,
		EventOrderSuspended,
		EventPlanCreated,
		EventPlanUpdated,
		EventPlanDeleted,
		EventDownloadCreated,
		EventDownloadUpdated,
		EventDownloadDeleted,
	}
}

// Event is one variant of the webhook tagged union. The concrete type
// uniquely identifies the discriminator, so callers branch with a type
// switch rather than re-inspecting the event string.
type Event interface {
	webhookEvent()
	EventType() EventType
}

// eventLiteral consumes the "event" field and requires it to equal the
// variant's fixed literal exactly.
func (d *decoder) eventLiteral(want EventType) (string, error) {
	got, err := d.requiredString("event")
	if err != nil {
		return "", err
	}
	if got != string(want) {
		return "", &ValidationError{
			Entity: d.entity,
			Field:  "event",
			Msg:    fmt.Sprintf("expected %q, got %q", want, got),
		}
	}
	return got, nil
}

// MemberSignupEvent is sent when a new member account is created.
type MemberSignupEvent struct {
	Event  string `json:"event"`
	Member Member `json:"member"`

	Extras Extras `json:"-"`
}

func (MemberSignupEvent) webhookEvent()        {}
func (MemberSignupEvent) EventType() EventType { return EventMemberSignup }

func (e *MemberSignupEvent) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("MemberSignupEvent", data)
	if err != nil {
		return err
	}
	if e.Event, err = d.eventLiteral(EventMemberSignup); err != nil {
		return err
	}
	if e.Member, err = requiredValue[Member](d, "member"); err != nil {
		return err
	}
	e.Extras = d.extras()
	return nil
}

// MemberUpdatedEvent is sent when a member's profile is updated. Changed
// holds the field deltas when the platform includes them.
type MemberUpdatedEvent struct {
	Event   string         `json:"event"`
	Member  Member         `json:"member"`
	Changed *MemberChanges `json:"changed"`

	Extras Extras `json:"-"`
}

func (MemberUpdatedEvent) webhookEvent()        {}
func (MemberUpdatedEvent) EventType() EventType { return EventMemberUpdated }

func (e *MemberUpdatedEvent) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("MemberUpdatedEvent", data)
	if err != nil {
		return err
	}
	if e.Event, err = d.eventLiteral(EventMemberUpdated); err != nil {
		return err
	}
	if e.Member, err = requiredValue[Member](d, "member"); err != nil {
		return err
	}
	if e.Changed, err = optionalValue[MemberChanges](d, "changed"); err != nil {
		return err
	}
	e.Extras = d.extras()
	return nil
}

// MemberDeletedEvent is sent when a member is deleted. Only a minimal
// member stub is available at that point.
type MemberDeletedEvent struct {
	Event  string        `json:"event"`
	Member DeletedMember `json:"member"`

	Extras Extras `json:"-"`
}

func (MemberDeletedEvent) webhookEvent()        {}
func (MemberDeletedEvent) EventType() EventType { return EventMemberDeleted }

func (e *MemberDeletedEvent) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("MemberDeletedEvent", data)
	if err != nil {
		return err
	}
	if e.Event, err = d.eventLiteral(EventMemberDeleted); err != nil {
		return err
	}
	if e.Member, err = requiredValue[DeletedMember](d, "member"); err != nil {
		return err
	}
	e.Extras = d.extras()
	return nil
}

// SubscriptionCreatedEvent is sent when a subscription is added to a
// member's account: purchase, gift activation, group addition, or manual
// creation by staff.
type SubscriptionCreatedEvent struct {
	Event        string       `json:"event"`
	Subscription Subscription `json:"subscription"`

	Extras Extras `json:"-"`
}

func (SubscriptionCreatedEvent) webhookEvent()        {}
func (SubscriptionCreatedEvent) EventType() EventType { return EventSubscriptionCreated }

func (e *SubscriptionCreatedEvent) UnmarshalJSON(data []byte) error {
	return decodeSubscriptionEvent(data, "SubscriptionCreatedEvent", EventSubscriptionCreated, &e.Event, &e.Subscription, nil, &e.Extras)
}

// SubscriptionUpdatedEvent is sent when a subscription changes. A plan
// change shows up as a plan_id delta in Changed.
type SubscriptionUpdatedEvent struct {
	Event        string               `json:"event"`
	Subscription Subscription         `json:"subscription"`
	Changed      *SubscriptionChanges `json:"changed"`

	Extras Extras `json:"-"`
}

func (SubscriptionUpdatedEvent) webhookEvent()        {}
func (SubscriptionUpdatedEvent) EventType() EventType { return EventSubscriptionUpdated }

func (e *SubscriptionUpdatedEvent) UnmarshalJSON(data []byte) error {
	return decodeSubscriptionEvent(data, "SubscriptionUpdatedEvent", EventSubscriptionUpdated, &e.Event, &e.Subscription, &e.Changed, &e.Extras)
}

// SubscriptionActivatedEvent is sent when a suspended order is completed by
// staff and the subscription becomes active again.
type SubscriptionActivatedEvent struct {
	Event        string       `json:"event"`
	Subscription Subscription `json:"subscription"`

	Extras Extras `json:"-"`
}

func (SubscriptionActivatedEvent) webhookEvent()        {}
func (SubscriptionActivatedEvent) EventType() EventType { return EventSubscriptionActivated }

func (e *SubscriptionActivatedEvent) UnmarshalJSON(data []byte) error {
	return decodeSubscriptionEvent(data, "SubscriptionActivatedEvent", EventSubscriptionActivated, &e.Event, &e.Subscription, nil, &e.Extras)
}

// SubscriptionDeactivatedEvent is sent when a subscription fails to renew,
// expires, or is suspended.
type SubscriptionDeactivatedEvent struct {
	Event        string       `json:"event"`
	Subscription Subscription `json:"subscription"`

	Extras Extras `json:"-"`
}

func (SubscriptionDeactivatedEvent) webhookEvent()        {}
func (SubscriptionDeactivatedEvent) EventType() EventType { return EventSubscriptionDeactivated }

func (e *SubscriptionDeactivatedEvent) UnmarshalJSON(data []byte) error {
	return decodeSubscriptionEvent(data, "SubscriptionDeactivatedEvent", EventSubscriptionDeactivated, &e.Event, &e.Subscription, nil, &e.Extras)
}

// SubscriptionDeletedEvent is sent when staff delete a subscription from
// the dashboard.
type SubscriptionDeletedEvent struct {
	Event        string       `json:"event"`
	Subscription Subscription `json:"subscription"`

	Extras Extras `json:"-"`
}

func (SubscriptionDeletedEvent) webhookEvent()        {}
func (SubscriptionDeletedEvent) EventType() EventType { return EventSubscriptionDeleted }

func (e *SubscriptionDeletedEvent) UnmarshalJSON(data []byte) error {
	return decodeSubscriptionEvent(data, "SubscriptionDeletedEvent", EventSubscriptionDeleted, &e.Event, &e.Subscription, nil, &e.Extras)
}

// SubscriptionRenewedEvent is sent on renewal or when a returning member
// reactivates an old subscription; the payload does not distinguish the two.
type SubscriptionRenewedEvent struct {
	Event        string       `json:"event"`
	Subscription Subscription `json:"subscription"`
	Order        Order        `json:"order"`

	Extras Extras `json:"-"`
}

func (SubscriptionRenewedEvent) webhookEvent()        {}
func (SubscriptionRenewedEvent) EventType() EventType { return EventSubscriptionRenewed }

func (e *SubscriptionRenewedEvent) UnmarshalJSON(data []byte) error {
	d, err := newDecoder("SubscriptionRenewedEvent", data)
	if err != nil {
		return err
	}
	if e.Event, err = d.eventLiteral(EventSubscriptionRenewed); err != nil {
		return err
	}
	if e.Subscription, err = requiredValue[Subscription](d, "subscription"); err != nil {
		return err
	}
	if e.Order, err = requiredValue[Order](d, "order"); err != nil {
		return err
	}
	e.Extras = d.extras()
	return nil
}

func decodeSubscriptionEvent(data []byte, entity string, want EventType, event *string, sub *Subscription, changed **SubscriptionChanges, extras *Extras) error {
	d, err := newDecoder(entity, data)
	if err != nil {
		return err
	}
	if *event, err = d.eventLiteral(want); err != nil {
		return err
	}
	if *sub, err = requiredValue[Subscription](d, "subscription"); err != nil {
		return err
	}
	if changed != nil {
		if *changed, err = optionalValue[SubscriptionChanges](d, "changed"); err != nil {
			return err
		}
	}
	*extras = d.extras()
	return nil
}

// OrderPurchasedEvent is sent when a member places an order or staff add
// one manually. Renewal payments do not trigger it.
type OrderPurchasedEvent struct {
	Event string `json:"event"`
	Order Order  `json:"order"`

	Extras Extras `json:"-"`
}

func (OrderPurchasedEvent) webhookEvent()        {}
func (OrderPurchasedEvent) EventType() EventType { return EventOrderPurchased }

func (e *OrderPurchasedEvent) UnmarshalJSON(data []byte) error {
	return decodeOrderEvent(data, "OrderPurchasedEvent", EventOrderPurchased, &e.Event, &e.Order, &e.Extras)
}

// OrderRefundedEvent is sent when staff refund an order.
type OrderRefundedEvent struct {
	Event string `json:"event"`
	Order Order  `json:"order"`

	Extras Extras `json:"-"`
}

func (OrderRefundedEvent) webhookEvent()        {}
func (OrderRefundedEvent) EventType() EventType { return EventOrderRefunded }

func (e *OrderRefundedEvent) UnmarshalJSON(data []byte) error {
	return decodeOrderEvent(data, "OrderRefundedEvent", EventOrderRefunded, &e.Event, &e.Order, &e.Extras)
}

// OrderCompletedEvent is sent when a suspended order is marked completed.
type OrderCompletedEvent struct {
	Event string `json:"event"`
	Order Order  `json:"order"`

	Extras Extras `json:"-"`
}

func (OrderCompletedEvent) webhookEvent()        {}
func (OrderCompletedEvent) EventType() EventType { return EventOrderCompleted }

func (e *OrderCompletedEvent) UnmarshalJSON(data []byte) error {
	return decodeOrderEvent(data, "OrderCompletedEvent", EventOrderCompleted, &e.Event, &e.Order, &e.Extras)
}

// OrderSuspendedEvent is sent when staff suspend an order.
type OrderSuspendedEvent struct {
	Event string `json:"event"`
	Order Order  `json:"order"`

	Extras Extras `json:"-"`
}

func (OrderSuspendedEvent) webhookEvent()        {}
func (OrderSuspendedEvent) EventType() EventType { return EventOrderSuspended }

func (e *OrderSuspendedEvent) UnmarshalJSON(data []byte) error {
	return decodeOrderEvent(data, "OrderSuspendedEvent", EventOrderSuspended, &e.Event, &e.Order, &e.Extras)
}

func decodeOrderEvent(data []byte, entity string, want EventType, event *string, order *Order, extras *Extras) error {
	d, err := newDecoder(entity, data)
	if err != nil {
		return err
	}
	if *event, err = d.eventLiteral(want); err != nil {
		return err
	}
	if *order, err = requiredValue[Order](d, "order"); err != nil {
		return err
	}
	*extras = d.extras()
	return nil
}

// Plan events carry the plan under "subscription", a platform quirk kept
// for wire compatibility.

// SubscriptionPlanCreatedEvent is sent when a new plan is created.
type SubscriptionPlanCreatedEvent struct {
	Event        string           `json:"event"`
	Subscription SubscriptionPlan `json:"subscription"`

	Extras Extras `json:"-"`
}

func (SubscriptionPlanCreatedEvent) webhookEvent()        {}
func (SubscriptionPlanCreatedEvent) EventType() EventType { return EventPlanCreated }

func (e *SubscriptionPlanCreatedEvent) UnmarshalJSON(data []byte) error {
	return decodePlanEvent(data, "SubscriptionPlanCreatedEvent", EventPlanCreated, &e.Event, &e.Subscription, &e.Extras)
}

// SubscriptionPlanUpdatedEvent is sent when a plan is updated.
type SubscriptionPlanUpdatedEvent struct {
	Event        string           `json:"event"`
	Subscription SubscriptionPlan `json:"subscription"`

	Extras Extras `json:"-"`
}

func (SubscriptionPlanUpdatedEvent) webhookEvent()        {}
func (SubscriptionPlanUpdatedEvent) EventType() EventType { return EventPlanUpdated }

func (e *SubscriptionPlanUpdatedEvent) UnmarshalJSON(data []byte) error {
	return decodePlanEvent(data, "SubscriptionPlanUpdatedEvent", EventPlanUpdated, &e.Event, &e.Subscription, &e.Extras)
}

// SubscriptionPlanDeletedEvent is sent when a plan is deleted.
type SubscriptionPlanDeletedEvent struct {
	Event        string           `json:"event"`
	Subscription SubscriptionPlan `json:"subscription"`

	Extras Extras `json:"-"`
}

func (SubscriptionPlanDeletedEvent) webhookEvent()        {}
func (SubscriptionPlanDeletedEvent) EventType() EventType { return EventPlanDeleted }

func (e *SubscriptionPlanDeletedEvent) UnmarshalJSON(data []byte) error {
	return decodePlanEvent(data, "SubscriptionPlanDeletedEvent", EventPlanDeleted, &e.Event, &e.Subscription, &e.Extras)
}

func decodePlanEvent(data []byte, entity string, want EventType, event *string, plan *SubscriptionPlan, extras *Extras) error {
	d, err := newDecoder(entity, data)
	if err != nil {
		return err
	}
	if *event, err = d.eventLiteral(want); err != nil {
		return err
	}
	if *plan, err = requiredValue[SubscriptionPlan](d, "subscription"); err != nil {
		return err
	}
	*extras = d.extras()
	return nil
}

// DownloadCreatedEvent is sent when a download is created.
type DownloadCreatedEvent struct {
	Event   string  `json:"event"`
	Product Product `json:"product"`

	Extras Extras `json:"-"`
}

func (DownloadCreatedEvent) webhookEvent()        {}
func (DownloadCreatedEvent) EventType() EventType { return EventDownloadCreated }

func (e *DownloadCreatedEvent) UnmarshalJSON(data []byte) error {
	return decodeDownloadEvent(data, "DownloadCreatedEvent", EventDownloadCreated, &e.Event, &e.Product, &e.Extras)
}

// DownloadUpdatedEvent is sent when a download is updated.
type DownloadUpdatedEvent struct {
	Event   string  `json:"event"`
	Product Product `json:"product"`

	Extras Extras `json:"-"`
}

func (DownloadUpdatedEvent) webhookEvent()        {}
func (DownloadUpdatedEvent) EventType() EventType { return EventDownloadUpdated }

func (e *DownloadUpdatedEvent) UnmarshalJSON(data []byte) error {
	return decodeDownloadEvent(data, "DownloadUpdatedEvent", EventDownloadUpdated, &e.Event, &e.Product, &e.Extras)
}

// DownloadDeletedEvent is sent when a download is deleted.
type DownloadDeletedEvent struct {
	Event   string  `json:"event"`
	Product Product `json:"product"`

	Extras Extras `json:"-"`
}

func (DownloadDeletedEvent) webhookEvent()        {}
func (DownloadDeletedEvent) EventType() EventType { return EventDownloadDeleted }

func (e *DownloadDeletedEvent) UnmarshalJSON(data []byte) error {
	return decodeDownloadEvent(data, "DownloadDeletedEvent", EventDownloadDeleted, &e.Event, &e.Product, &e.Extras)
}

func decodeDownloadEvent(data []byte, entity string, want EventType, event *string, product *Product, extras *Extras) error {
	d, err := newDecoder(entity, data)
	if err != nil {
		return err
	}
	if *event, err = d.eventLiteral(want); err != nil {
		return err
	}
	if *product, err = requiredValue[Product](d, "product"); err != nil {
		return err
	}
	*extras = d.extras()
	return nil
}

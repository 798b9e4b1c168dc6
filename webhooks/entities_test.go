package webhooks

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	go_json "github.com/goccy/go-json"
)

func TestMemberMinimalDefaults(t *testing.T) {
	t.Parallel()

	var m Member
	if err := go_json.Unmarshal([]byte(memberJSON), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if m.ID != 1 || m.Email != "john@example.com" || m.CreatedAt != 1410000000 {
		t.Errorf("unexpected member: %+v", m)
	}
	if m.UnrestrictedAccess {
		t.Error("unrestricted_access should default to false")
	}
	if m.FirstName != nil || m.Address != nil || m.CreditCard != nil {
		t.Error("optional fields should default to nil")
	}
	if len(m.Extras) != 0 {
		t.Errorf("Extras = %v, want empty", m.Extras)
	}
}

func TestMemberExtrasPreserved(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 7,
		"email": "jane@example.com",
		"created_at": 1410000000,
		"custom_metadata": {"tier": "gold", "flags": [1, 2]},
		"some_future_field": "surprise"
	}`

	var m Member
	if err := go_json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := Extras{
		"custom_metadata":   map[string]any{"tier": "gold", "flags": []any{float64(1), float64(2)}},
		"some_future_field": "surprise",
	}
	if diff := cmp.Diff(want, m.Extras); diff != "" {
		t.Errorf("Extras mismatch (-want +got):\n%s", diff)
	}
}

func TestMemberRequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		payload   string
		wantField string
	}{
		{"missing id", `{"email":"a@b.c","created_at":1}`, "id"},
		{"missing email", `{"id":1,"created_at":1}`, "email"},
		{"missing created_at", `{"id":1,"email":"a@b.c"}`, "created_at"},
		{"null email", `{"id":1,"email":null,"created_at":1}`, "email"},
		{"wrong type id", `{"id":"one","email":"a@b.c","created_at":1}`, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var m Member
			err := go_json.Unmarshal([]byte(tt.payload), &m)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Unmarshal() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestSubscriptionPlanMinimalStub(t *testing.T) {
	t.Parallel()

	var p SubscriptionPlan
	if err := go_json.Unmarshal([]byte(planJSON), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if p.ID != 0 || p.Name != "Sample plan" || p.Slug != "0-sample-plan" {
		t.Errorf("unexpected plan: %+v", p)
	}
	if p.Price != nil || p.PriceCents != nil || p.RenewalPeriod != nil {
		t.Error("missing optional fields should stay nil")
	}
	if p.IntervalCount != 1 {
		t.Errorf("interval_count = %d, want default 1", p.IntervalCount)
	}
	if !p.ForSale {
		t.Error("for_sale should default to true")
	}
	if p.Type == nil || *p.Type != "standard_plan" {
		t.Errorf("type = %v, want standard_plan", p.Type)
	}
}

func TestSubscriptionPlanPriceNotConflated(t *testing.T) {
	t.Parallel()

	var p SubscriptionPlan
	payload := `{"id":1,"name":"Pro","slug":"pro","price_cents":1500}`
	if err := go_json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.Price != nil {
		t.Errorf("price = %v, want nil", p.Price)
	}
	if p.PriceCents == nil || *p.PriceCents != 1500 {
		t.Errorf("price_cents = %v, want 1500", p.PriceCents)
	}
}

func TestOrderTimestampForms(t *testing.T) {
	t.Parallel()

	wantTime := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt string
	}{
		{"unix integer", `1640995200`},
		{"rfc3339 string", `"2022-01-01T00:00:00Z"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			payload := `{"uuid":"u-1","total":100,"status":"pending","created_at":` + tt.createdAt + `}`
			var o Order
			if err := go_json.Unmarshal([]byte(payload), &o); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if o.CreatedAt == nil || !o.CreatedAt.Equal(wantTime) {
				t.Errorf("created_at = %v, want %v", o.CreatedAt, wantTime)
			}
		})
	}
}

func TestOrderDefaults(t *testing.T) {
	t.Parallel()

	var o Order
	if err := go_json.Unmarshal([]byte(orderJSON), &o); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if o.UUID != "3e6813b4-f7a7-4066-a075-9bdb4fd5c2bc" {
		t.Errorf("uuid = %q", o.UUID)
	}
	if o.Products == nil || len(o.Products) != 0 {
		t.Errorf("products = %v, want empty non-nil slice", o.Products)
	}
	if o.Subscriptions == nil || len(o.Subscriptions) != 0 {
		t.Errorf("subscriptions = %v, want empty non-nil slice", o.Subscriptions)
	}
	if o.CreatedAt != nil || o.Member != nil || o.Number != nil {
		t.Error("optional fields should stay nil")
	}
}

func TestMemberSubscriptionPlanKey(t *testing.T) {
	t.Parallel()

	payload := `{"id":3,"active":true,"created_at":1410000000,"expires":true,"expires_at":1420000000,"subscription":` + planJSON + `}`

	var s MemberSubscription
	if err := go_json.Unmarshal([]byte(payload), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.Plan.Slug != "0-sample-plan" {
		t.Errorf("plan slug = %q", s.Plan.Slug)
	}
}

func TestStandaloneSubscription(t *testing.T) {
	t.Parallel()

	var s Subscription
	if err := go_json.Unmarshal([]byte(subJSON), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.Member.Email != "john@example.com" {
		t.Errorf("member email = %q", s.Member.Email)
	}
	if s.Plan.Name != "Sample plan" {
		t.Errorf("plan name = %q", s.Plan.Name)
	}

	// standalone shape requires its member
	var missing Subscription
	err := go_json.Unmarshal([]byte(`{"id":1,"active":true,"autorenew":true,"created_at":"2022-01-01T00:00:00Z","expires_at":"2023-01-01T00:00:00Z","subscription_plan":`+planJSON+`}`), &missing)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Unmarshal() error = %v, want *ValidationError", err)
	}
	if verr.Field != "member" {
		t.Errorf("Field = %q, want %q", verr.Field, "member")
	}
}

func TestEnumsRejectUnknownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  func() error
		wantErr bool
	}{
		{"valid signup method", func() error {
			var v SignupMethod
			return go_json.Unmarshal([]byte(`"checkout"`), &v)
		}, false},
		{"unknown signup method", func() error {
			var v SignupMethod
			return go_json.Unmarshal([]byte(`"telepathy"`), &v)
		}, true},
		{"unknown order status", func() error {
			var v OrderStatus
			return go_json.Unmarshal([]byte(`"paused"`), &v)
		}, true},
		{"unknown renewal period", func() error {
			var v RenewalPeriod
			return go_json.Unmarshal([]byte(`"biweekly"`), &v)
		}, true},
		{"unknown interval unit", func() error {
			var v IntervalUnit
			return go_json.Unmarshal([]byte(`"fortnight"`), &v)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.target()
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestChangesDeltas(t *testing.T) {
	t.Parallel()

	payload := `{"event":"subscription.updated","subscription":` + subJSON + `,"changed":{"plan_id":[1,2],"autorenew":[true,false],"future_delta":[0,1]}}`

	ev, err := ParsePayload([]byte(payload))
	if err != nil {
		t.Fatalf("ParsePayload() error = %v", err)
	}
	updated, ok := ev.(SubscriptionUpdatedEvent)
	if !ok {
		t.Fatalf("ParsePayload() = %T, want SubscriptionUpdatedEvent", ev)
	}
	if updated.Changed == nil {
		t.Fatal("changed should be decoded")
	}
	if updated.Changed.PlanID == nil || updated.Changed.PlanID.Old != 1 || updated.Changed.PlanID.New != 2 {
		t.Errorf("plan_id delta = %+v", updated.Changed.PlanID)
	}
	if updated.Changed.Autorenew == nil || !updated.Changed.Autorenew.Old || updated.Changed.Autorenew.New {
		t.Errorf("autorenew delta = %+v", updated.Changed.Autorenew)
	}
	if _, ok := updated.Changed.Extras["future_delta"]; !ok {
		t.Error("unknown change keys should land in Extras")
	}
}

func TestDeltaRejectsNonPair(t *testing.T) {
	t.Parallel()

	var d Delta[int]
	if err := go_json.Unmarshal([]byte(`[1,2,3]`), &d); err == nil {
		t.Error("expected error for a 3-element delta")
	}
	if err := go_json.Unmarshal([]byte(`[1,2]`), &d); err != nil {
		t.Errorf("Unmarshal() error = %v", err)
	}
	if d.Old != 1 || d.New != 2 {
		t.Errorf("delta = %+v", d)
	}
}

func TestDeletedMemberDefaults(t *testing.T) {
	t.Parallel()

	var m DeletedMember
	if err := go_json.Unmarshal([]byte(`{"id":42}`), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m.ID != 42 || !m.Deleted {
		t.Errorf("deleted member = %+v, want deleted=true", m)
	}
}

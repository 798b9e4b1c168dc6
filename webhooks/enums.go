package webhooks

import (
	"fmt"

	go_json "github.com/goccy/go-json"
)

// The platform's enum fields are closed vocabularies: an unrecognized value
// is a decode failure, never a silent coercion.

type SignupMethod string

const (
	SignupMethodCheckout SignupMethod = "checkout"
	SignupMethodManual   SignupMethod = "manual"
	SignupMethodAPI      SignupMethod = "api"
	SignupMethodImport   SignupMethod = "import"
)

func (m *SignupMethod) UnmarshalJSON(data []byte) error {
	v, err := enumString(data)
	if err != nil {
		return err
	}
	switch SignupMethod(v) {
	case SignupMethodCheckout, SignupMethodManual, SignupMethodAPI, SignupMethodImport:
		*m = SignupMethod(v)
		return nil
	}
	return fmt.Errorf("unknown signup method %q", v)
}

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusSuspended OrderStatus = "suspended"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	v, err := enumString(data)
	if err != nil {
		return err
	}
	switch OrderStatus(v) {
	case OrderStatusCompleted, OrderStatusSuspended, OrderStatusPending, OrderStatusCancelled:
		*s = OrderStatus(v)
		return nil
	}
	return fmt.Errorf("unknown order status %q", v)
}

type RenewalPeriod string

const (
	RenewalPeriodMonthly   RenewalPeriod = "monthly"
	RenewalPeriodYearly    RenewalPeriod = "yearly"
	RenewalPeriodQuarterly RenewalPeriod = "quarterly"
	RenewalPeriodWeekly    RenewalPeriod = "weekly"
)

func (p *RenewalPeriod) UnmarshalJSON(data []byte) error {
	v, err := enumString(data)
	if err != nil {
		return err
	}
	switch RenewalPeriod(v) {
	case RenewalPeriodMonthly, RenewalPeriodYearly, RenewalPeriodQuarterly, RenewalPeriodWeekly:
		*p = RenewalPeriod(v)
		return nil
	}
	return fmt.Errorf("unknown renewal period %q", v)
}

type IntervalUnit string

const (
	IntervalUnitMonth   IntervalUnit = "month"
	IntervalUnitYear    IntervalUnit = "year"
	IntervalUnitQuarter IntervalUnit = "quarter"
	IntervalUnitWeek    IntervalUnit = "week"
	IntervalUnitDay     IntervalUnit = "day"
)

func (u *IntervalUnit) UnmarshalJSON(data []byte) error {
	v, err := enumString(data)
	if err != nil {
		return err
	}
	switch IntervalUnit(v) {
	case IntervalUnitMonth, IntervalUnitYear, IntervalUnitQuarter, IntervalUnitWeek, IntervalUnitDay:
		*u = IntervalUnit(v)
		return nil
	}
	return fmt.Errorf("unknown interval unit %q", v)
}

func enumString(data []byte) (string, error) {
	var v string
	if err := go_json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("expected string")
	}
	return v, nil
}

package webhooks

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// ValidationError reports a payload that does not satisfy an entity's
// required-field or type constraints. Decoding never partially constructs
// an entity: the first violation aborts the decode.
type ValidationError struct {
	Entity string
	Field  string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Entity + ": " + e.Msg
	}
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Msg)
}

// UnsupportedEventTypeError reports an event discriminator outside the
// supported set. Event holds the offending string verbatim; it is empty
// when the payload had no event key at all.
type UnsupportedEventTypeError struct {
	Event string
}

func (e *UnsupportedEventTypeError) Error() string {
	if e.Event == "" {
		return "unsupported event type: null"
	}
	return fmt.Sprintf("unsupported event type: %q", e.Event)
}

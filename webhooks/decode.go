package webhooks

import (
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
)

// Extras holds JSON fields an entity's schema does not declare. The platform
// adds fields without notice; unrecognized keys are preserved here rather
// than dropped or rejected.
type Extras map[string]any

// decoder splits one JSON object into raw fields and tracks which of them
// the entity schema consumed. Whatever remains becomes the entity's Extras.
type decoder struct {
	entity string
	fields map[string]go_json.RawMessage
	seen   map[string]bool
}

func newDecoder(entity string, data []byte) (*decoder, error) {
	var fields map[string]go_json.RawMessage
	if err := go_json.Unmarshal(data, &fields); err != nil {
		return nil, &ValidationError{Entity: entity, Msg: "expected a JSON object"}
	}
	return &decoder{
		entity: entity,
		fields: fields,
		seen:   make(map[string]bool, len(fields)),
	}, nil
}

// take consumes a field. A JSON null counts as absent: optional fields fall
// back to their default, required fields fail the same way a missing key does.
func (d *decoder) take(field string) (go_json.RawMessage, bool) {
	d.seen[field] = true
	raw, ok := d.fields[field]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

func (d *decoder) missing(field string) error {
	return &ValidationError{Entity: d.entity, Field: field, Msg: "missing required field"}
}

func (d *decoder) mismatch(field, want string) error {
	return &ValidationError{Entity: d.entity, Field: field, Msg: "expected " + want}
}

func (d *decoder) requiredString(field string) (string, error) {
	raw, ok := d.take(field)
	if !ok {
		return "", d.missing(field)
	}
	var s string
	if err := go_json.Unmarshal(raw, &s); err != nil {
		return "", d.mismatch(field, "string")
	}
	return s, nil
}

func (d *decoder) optionalString(field string) (*string, error) {
	raw, ok := d.take(field)
	if !ok {
		return nil, nil
	}
	var s string
	if err := go_json.Unmarshal(raw, &s); err != nil {
		return nil, d.mismatch(field, "string")
	}
	return &s, nil
}

func (d *decoder) requiredInt64(field string) (int64, error) {
	raw, ok := d.take(field)
	if !ok {
		return 0, d.missing(field)
	}
	var n int64
	if err := go_json.Unmarshal(raw, &n); err != nil {
		return 0, d.mismatch(field, "integer")
	}
	return n, nil
}

func (d *decoder) optionalInt64(field string) (*int64, error) {
	raw, ok := d.take(field)
	if !ok {
		return nil, nil
	}
	var n int64
	if err := go_json.Unmarshal(raw, &n); err != nil {
		return nil, d.mismatch(field, "integer")
	}
	return &n, nil
}

func (d *decoder) requiredInt(field string) (int, error) {
	n, err := d.requiredInt64(field)
	return int(n), err
}

func (d *decoder) optionalInt(field string) (*int, error) {
	n64, err := d.optionalInt64(field)
	if err != nil || n64 == nil {
		return nil, err
	}
	n := int(*n64)
	return &n, nil
}

func (d *decoder) requiredBool(field string) (bool, error) {
	raw, ok := d.take(field)
	if !ok {
		return false, d.missing(field)
	}
	var b bool
	if err := go_json.Unmarshal(raw, &b); err != nil {
		return false, d.mismatch(field, "boolean")
	}
	return b, nil
}

func (d *decoder) boolOr(field string, def bool) (bool, error) {
	raw, ok := d.take(field)
	if !ok {
		return def, nil
	}
	var b bool
	if err := go_json.Unmarshal(raw, &b); err != nil {
		return def, d.mismatch(field, "boolean")
	}
	return b, nil
}

func (d *decoder) intOr(field string, def int) (int, error) {
	raw, ok := d.take(field)
	if !ok {
		return def, nil
	}
	var n int
	if err := go_json.Unmarshal(raw, &n); err != nil {
		return def, d.mismatch(field, "integer")
	}
	return n, nil
}

// anyField consumes an open-ended field (custom_field) without constraining
// its type.
func (d *decoder) anyField(field string) (any, error) {
	raw, ok := d.take(field)
	if !ok {
		return nil, nil
	}
	var v any
	if err := go_json.Unmarshal(raw, &v); err != nil {
		return nil, d.mismatch(field, "JSON value")
	}
	return v, nil
}

// extras decodes every field the schema did not consume.
func (d *decoder) extras() Extras {
	var ex Extras
	for name, raw := range d.fields {
		if d.seen[name] {
			continue
		}
		var v any
		if err := go_json.Unmarshal(raw, &v); err != nil {
			continue
		}
		if ex == nil {
			ex = make(Extras)
		}
		ex[name] = v
	}
	return ex
}

// wrap attributes a nested decode failure to the enclosing field unless it
// already carries entity context.
func (d *decoder) wrap(field string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return &ValidationError{Entity: d.entity, Field: field, Msg: err.Error()}
}

func requiredValue[T any](d *decoder, field string) (T, error) {
	var v T
	raw, ok := d.take(field)
	if !ok {
		return v, d.missing(field)
	}
	if err := go_json.Unmarshal(raw, &v); err != nil {
		return v, d.wrap(field, err)
	}
	return v, nil
}

func optionalValue[T any](d *decoder, field string) (*T, error) {
	raw, ok := d.take(field)
	if !ok {
		return nil, nil
	}
	var v T
	if err := go_json.Unmarshal(raw, &v); err != nil {
		return nil, d.wrap(field, err)
	}
	return &v, nil
}

// sliceValue consumes a list field, defaulting to an empty slice when the
// key is absent.
func sliceValue[T any](d *decoder, field string) ([]T, error) {
	raw, ok := d.take(field)
	if !ok {
		return []T{}, nil
	}
	var vs []T
	if err := go_json.Unmarshal(raw, &vs); err != nil {
		return nil, d.wrap(field, err)
	}
	if vs == nil {
		vs = []T{}
	}
	return vs, nil
}

// Delta is an [old_value, new_value] pair from a change-delta record.
type Delta[T any] struct {
	Old T
	New T
}

func (d *Delta[T]) UnmarshalJSON(data []byte) error {
	var pair []T
	if err := go_json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("expected an [old, new] pair, got %d elements", len(pair))
	}
	d.Old, d.New = pair[0], pair[1]
	return nil
}

func (d Delta[T]) MarshalJSON() ([]byte, error) {
	return go_json.Marshal([2]T{d.Old, d.New})
}

// Timestamp accepts either a unix integer or an RFC 3339 string. Order
// timestamps arrive in both forms; alternatives are tried in that order.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var unix int64
	if err := go_json.Unmarshal(data, &unix); err == nil {
		t.Time = time.Unix(unix, 0).UTC()
		return nil
	}
	var s string
	if err := go_json.Unmarshal(data, &s); err != nil {
		return errors.New("expected a unix timestamp or an RFC 3339 string")
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	t.Time = parsed.UTC()
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return go_json.Marshal(t.Format(time.RFC3339))
}

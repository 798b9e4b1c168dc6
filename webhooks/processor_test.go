package webhooks

import (
	"errors"
	"testing"
)

func TestProcessorVerifiesSignature(t *testing.T) {
	t.Parallel()

	const secret = "topsecret"
	payload := []byte(`{"event":"member_signup","member":` + memberJSON + `}`)

	p := NewProcessor(secret)

	ev, err := p.Process(payload, "sha256="+sign(payload, secret))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if ev.EventType() != EventMemberSignup {
		t.Errorf("EventType() = %q, want %q", ev.EventType(), EventMemberSignup)
	}

	if _, err := p.Process(payload, ""); !errors.Is(err, ErrMissingSignature) {
		t.Errorf("Process() error = %v, want ErrMissingSignature", err)
	}

	if _, err := p.Process(payload, sign(payload, "wrong")); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Process() error = %v, want ErrInvalidSignature", err)
	}
}

func TestProcessorEmptySecretSkipsVerification(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"event":"member_signup","member":` + memberJSON + `}`)

	p := NewProcessor("")
	ev, err := p.Process(payload, "")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if ev.EventType() != EventMemberSignup {
		t.Errorf("EventType() = %q, want %q", ev.EventType(), EventMemberSignup)
	}
}

func TestProcessorDoesNotParseOnBadSignature(t *testing.T) {
	t.Parallel()

	// body is invalid JSON; signature failure must surface first
	p := NewProcessor("topsecret")
	if _, err := p.Process([]byte(`{broken`), "deadbeef"); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Process() error = %v, want ErrInvalidSignature", err)
	}
}

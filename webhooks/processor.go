package webhooks

// Processor composes signature verification with payload dispatch. It holds
// only the shared secret; every call operates on its own input, so a single
// Processor is safe for concurrent use.
type Processor struct {
	secret string
}

// NewProcessor returns a Processor. An empty secret disables verification;
// whether that is acceptable is the caller's configuration decision.
func NewProcessor(secret string) *Processor {
	return &Processor{secret: secret}
}

// Process verifies the signature over the exact body bytes, then parses the
// body into a typed event. With a secret configured, a missing signature
// yields ErrMissingSignature and a mismatch yields ErrInvalidSignature; the
// body is not parsed in either case.
func (p *Processor) Process(body []byte, signature string) (Event, error) {
	if p.secret != "" {
		if signature == "" {
			return nil, ErrMissingSignature
		}
		if !ValidateSignature(body, signature, p.secret) {
			return nil, ErrInvalidSignature
		}
	}
	return ParsePayload(body)
}

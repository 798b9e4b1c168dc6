package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HeaderSignature is the request header carrying the webhook signature
// token, of the form "sha256=<64 hex chars>".
const HeaderSignature = "X-Memberful-Webhook-Signature"

// ValidateSignature reports whether signature matches the HMAC-SHA256 of
// payload under secret. The signature is computed over the exact bytes
// received; re-serializing the JSON first breaks authentication. An
// optional "sha256=" prefix is stripped, hex case is normalized, and the
// comparison is constant-time. Malformed tokens simply fail to match.
func ValidateSignature(payload []byte, signature, secret string) bool {
	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

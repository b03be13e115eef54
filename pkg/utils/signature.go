package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SignatureHeaderName carries the webhook signature for push
// notifications from the content source.
const SignatureHeaderName = "sanity-webhook-signature"

// IsValidSignature verifies the "t=<unix>,v1=<digest>" header against the
// raw request body: digest = base64url(HMAC-SHA256(secret, "<t>.<body>")).
// It must run over the raw bytes before any JSON handling.
func IsValidSignature(body []byte, secret, header string) bool {
	timestamp, digest := parseSignatureHeader(header)
	if timestamp == "" || digest == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(digest))
}

func parseSignatureHeader(header string) (timestamp, digest string) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			digest = value
		}
	}
	return timestamp, digest
}

// SignBody produces the header value for a given timestamp and body. The
// webhook handler only verifies; this exists for local testing of
// integrations that push to us.
func SignBody(body []byte, secret, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return "t=" + timestamp + ",v1=" + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

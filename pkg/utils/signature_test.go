package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureRoundTrip(t *testing.T) {
	body := []byte(`{"_id":"doc-1","_type":"place"}`)
	header := SignBody(body, "test-secret", "1717243200")

	assert.True(t, IsValidSignature(body, "test-secret", header))
}

func TestSignatureRejectsTamperedBody(t *testing.T) {
	body := []byte(`{"_id":"doc-1","_type":"place"}`)
	header := SignBody(body, "test-secret", "1717243200")

	tampered := []byte(`{"_id":"doc-2","_type":"place"}`)
	assert.False(t, IsValidSignature(tampered, "test-secret", header))
}

func TestSignatureRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"_id":"doc-1","_type":"place"}`)
	header := SignBody(body, "test-secret", "1717243200")

	assert.False(t, IsValidSignature(body, "other-secret", header))
}

func TestSignatureRejectsTamperedTimestamp(t *testing.T) {
	body := []byte(`{"_id":"doc-1","_type":"place"}`)
	header := SignBody(body, "test-secret", "1717243200")
	resigned := "t=1717243201," + header[len("t=1717243200,"):]

	assert.False(t, IsValidSignature(body, "test-secret", resigned))
}

func TestSignatureRejectsMalformedHeaders(t *testing.T) {
	body := []byte(`{}`)

	for _, header := range []string{
		"",
		"garbage",
		"t=1717243200",
		"v1=abcdef",
		"t=,v1=",
		"timestamp=1717243200,signature=abc",
	} {
		assert.False(t, IsValidSignature(body, "test-secret", header), "header %q", header)
	}
}

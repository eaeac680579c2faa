package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLBodyEscapesAndBreaks(t *testing.T) {
	body := HTMLBody("a < b & c\nsecond line", "")

	assert.Contains(t, body, "&lt;")
	assert.Contains(t, body, "&amp;")
	assert.Equal(t, "a &lt; b &amp; c<br>second line", body)
}

func TestHTMLBodyAppendsSignatureOnce(t *testing.T) {
	body := HTMLBody("hello", "<b>Alice</b>")

	assert.Equal(t, "hello"+signatureDivider+"<b>Alice</b>", body)
	assert.Equal(t, 1, strings.Count(body, "<b>Alice</b>"))
}

func TestHTMLBodyNoDividerWithoutSignature(t *testing.T) {
	body := HTMLBody("hello", "")
	assert.NotContains(t, body, "-- ")
}

func TestFormatFrom(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		expected string
	}{
		{name: "no address", identity: Identity{Name: "Alice"}, expected: ""},
		{name: "address only", identity: Identity{Address: "a@x.test"}, expected: "a@x.test"},
		{name: "name and address", identity: Identity{Name: "Alice", Address: "a@x.test"}, expected: "Alice <a@x.test>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFrom(tt.identity))
		})
	}
}

func TestBuildReferences(t *testing.T) {
	tests := []struct {
		name       string
		references string
		messageID  string
		expected   string
	}{
		{
			name:       "chains original references",
			references: "<m0@x>",
			messageID:  "<m1@x>",
			expected:   "<m0@x> <m1@x>",
		},
		{
			name:      "no previous references",
			messageID: "<m1@x>",
			expected:  "<m1@x>",
		},
		{
			name:       "no message id",
			references: "<m0@x>",
			expected:   "<m0@x>",
		},
		{
			name:       "long chain preserved in order",
			references: "<m0@x> <m1@x> <m2@x>",
			messageID:  "<m3@x>",
			expected:   "<m0@x> <m1@x> <m2@x> <m3@x>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildReferences(tt.references, tt.messageID))
		})
	}
}

func TestOutboundEncodeRoundTrip(t *testing.T) {
	out := &Outbound{
		From:       "Alice <a@x.test>",
		To:         "b@x.test",
		Subject:    "Hello",
		HTMLBody:   "body text",
		InReplyTo:  "<m1@x>",
		References: "<m0@x> <m1@x>",
	}

	raw := out.Encode()
	assert.NotContains(t, raw, "=", "transport encoding must not use padding")

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)

	wire := string(decoded)
	assert.Contains(t, wire, "From: Alice <a@x.test>\r\n")
	assert.Contains(t, wire, "To: b@x.test\r\n")
	assert.Contains(t, wire, "Subject: Hello\r\n")
	assert.Contains(t, wire, "In-Reply-To: <m1@x>\r\n")
	assert.Contains(t, wire, "References: <m0@x> <m1@x>\r\n")
	assert.Contains(t, wire, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	assert.True(t, strings.HasSuffix(wire, "\r\n\r\nbody text"))
}

func TestOutboundEncodeOmitsEmptyHeaders(t *testing.T) {
	out := &Outbound{To: "b@x.test", Subject: "Hi", HTMLBody: "x"}

	decoded, err := base64.RawURLEncoding.DecodeString(out.Encode())
	require.NoError(t, err)

	wire := string(decoded)
	assert.NotContains(t, wire, "From:")
	assert.NotContains(t, wire, "In-Reply-To:")
	assert.NotContains(t, wire, "References:")
}

func TestEncodeRFC2047(t *testing.T) {
	assert.Equal(t, "plain subject", encodeRFC2047("plain subject"))

	encoded := encodeRFC2047("Grüße")
	assert.True(t, strings.HasPrefix(encoded, "=?UTF-8?"))
}

package gmail

import (
	"encoding/base64"
	"fmt"
	"html"
	"mime"
	"strings"
)

// signatureDivider separates the message text from the appended signature.
const signatureDivider = "<br><br>-- <br>"

// Outbound is a fully shaped outbound message, ready to encode. Empty
// optional headers are omitted from the wire form.
type Outbound struct {
	From       string
	To         string
	Subject    string
	HTMLBody   string
	InReplyTo  string
	References string
}

// HTMLBody converts plain text into the HTML body sent upstream: the text is
// HTML-escaped, newlines become line breaks, and the sender's raw HTML
// signature (when present) is appended once after a divider.
func HTMLBody(text, signature string) string {
	body := strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
	if signature != "" {
		body += signatureDivider + signature
	}
	return body
}

// FormatFrom synthesizes a From header value from the sender identity.
// Without a display name the bare address is used; without an address the
// header is omitted entirely and the provider fills in the account default.
func FormatFrom(id Identity) string {
	if id.Address == "" {
		return ""
	}
	if id.Name == "" {
		return id.Address
	}
	return fmt.Sprintf("%s <%s>", encodeRFC2047(id.Name), id.Address)
}

// BuildReferences chains the original message into the References header:
// the original References followed by the original Message-ID, space-joined,
// order preserved, no deduplication. Downstream clients thread on this exact
// RFC 5322 chain.
func BuildReferences(originalReferences, originalMessageID string) string {
	if originalMessageID == "" {
		return originalReferences
	}
	if originalReferences == "" {
		return originalMessageID
	}
	return originalReferences + " " + originalMessageID
}

// Encode renders the message in RFC 2822 form and applies the transport
// encoding: base64url, URL-safe alphabet, no padding.
func (o *Outbound) Encode() string {
	var b strings.Builder

	if o.From != "" {
		b.WriteString("From: " + o.From + "\r\n")
	}
	b.WriteString("To: " + o.To + "\r\n")
	b.WriteString("Subject: " + encodeRFC2047(o.Subject) + "\r\n")
	if o.InReplyTo != "" {
		b.WriteString("In-Reply-To: " + o.InReplyTo + "\r\n")
	}
	if o.References != "" {
		b.WriteString("References: " + o.References + "\r\n")
	}
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(o.HTMLBody)

	return base64.RawURLEncoding.EncodeToString([]byte(b.String()))
}

// encodeRFC2047 encodes a header value when it carries non-ASCII characters,
// per RFC 2047. Pure ASCII passes through unchanged.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

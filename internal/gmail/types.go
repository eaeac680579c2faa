package gmail

import (
	"encoding/base64"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// MessageSummary is the flat projection of a Gmail message returned by list
// and thread operations. Absent upstream headers leave the field empty, they
// never fail the projection.
type MessageSummary struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"threadId"`
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Date     string   `json:"date,omitempty"`
	Snippet  string   `json:"snippet,omitempty"`
	LabelIDs []string `json:"labelIds,omitempty"`
}

// Message is the full projection returned by get operations.
type Message struct {
	MessageSummary
	CC   string `json:"cc,omitempty"`
	Body string `json:"body,omitempty"`
}

// ThreadSummary is the projection of a Gmail thread.
type ThreadSummary struct {
	ID       string           `json:"id"`
	Messages []MessageSummary `json:"messages"`
}

// Draft is the projection of a Gmail draft.
type Draft struct {
	ID      string  `json:"id"`
	Message Message `json:"message"`
}

// Label is the projection of a Gmail label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// headerValue returns the value of the first header matching name, by
// case-sensitive comparison over the unordered header list. Absent header
// yields the empty string.
func headerValue(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// toMessageSummary projects a provider message onto the stable summary
// shape. Works for both metadata-format and full-format messages.
func toMessageSummary(m *gmail.Message) MessageSummary {
	if m == nil {
		return MessageSummary{}
	}

	summary := MessageSummary{
		ID:       m.Id,
		ThreadID: m.ThreadId,
		Snippet:  m.Snippet,
		LabelIDs: m.LabelIds,
	}

	if m.Payload != nil {
		summary.From = headerValue(m.Payload.Headers, "From")
		summary.To = headerValue(m.Payload.Headers, "To")
		summary.Subject = headerValue(m.Payload.Headers, "Subject")
		summary.Date = headerValue(m.Payload.Headers, "Date")
	}

	return summary
}

// toMessage projects a full-format provider message, including the body.
func toMessage(m *gmail.Message) Message {
	msg := Message{MessageSummary: toMessageSummary(m)}
	if m != nil && m.Payload != nil {
		msg.CC = headerValue(m.Payload.Headers, "Cc")
		msg.Body = extractBody(m.Payload)
	}
	return msg
}

// extractBody returns the decoded text body of a message payload. A single
// top-level body wins; otherwise the first-level parts are scanned for
// text/plain, then text/html, first qualifying part wins. Nested multipart
// structures are not searched.
func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if payload.Body != nil && payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}

	for _, mimeType := range []string{"text/plain", "text/html"} {
		for _, part := range payload.Parts {
			if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
				return decodeBody(part.Body.Data)
			}
		}
	}

	return ""
}

// decodeBody decodes the base64url transport encoding. The provider emits
// unpadded data but padded input is tolerated.
func decodeBody(data string) string {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(decoded)
}

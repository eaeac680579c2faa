package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/quietdesk/deskmcp/internal/google"
)

// metadataHeaders are the headers requested on metadata-format fetches.
var metadataHeaders = []string{"From", "To", "Subject", "Date"}

// Client wraps the Gmail Users service with the operations the server
// exposes. All calls act on the authenticated user ("me").
type Client struct {
	svc    *gmail.UsersService
	sender *SenderCache
}

// NewClient creates a Gmail client sharing the provider's authenticated
// HTTP client. The sender cache is owned by the caller so its lifetime spans
// client re-creation.
func NewClient(ctx context.Context, provider *google.Provider, sender *SenderCache) (*Client, error) {
	httpClient, err := provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{svc: svc.Users, sender: sender}, nil
}

// ListEmails lists messages in a folder, newest first as returned upstream,
// with an optional extra query. Each listed id costs one extra metadata
// fetch for the headers; expected result sizes are small.
func (c *Client) ListEmails(maxResults int64, folder, query string) ([]MessageSummary, error) {
	return c.listByQuery(maxResults, FolderQuery(folder, query))
}

// SearchEmails lists messages matching a raw Gmail query.
func (c *Client) SearchEmails(query string, maxResults int64) ([]MessageSummary, error) {
	return c.listByQuery(maxResults, query)
}

func (c *Client) listByQuery(maxResults int64, query string) ([]MessageSummary, error) {
	call := c.svc.Messages.List("me").MaxResults(maxResults)
	if query != "" {
		call = call.Q(query)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	summaries := make([]MessageSummary, 0, len(res.Messages))
	for _, m := range res.Messages {
		full, err := c.svc.Messages.Get("me", m.Id).
			Format("metadata").
			MetadataHeaders(metadataHeaders...).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch message %s: %w", m.Id, err)
		}
		summaries = append(summaries, toMessageSummary(full))
	}

	return summaries, nil
}

// GetEmail fetches the full representation of a message, including the body.
func (c *Client) GetEmail(id string) (*Message, error) {
	m, err := c.svc.Messages.Get("me", id).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	msg := toMessage(m)
	return &msg, nil
}

// GetThread fetches a thread with the headers of every message in it.
func (c *Client) GetThread(id string) (*ThreadSummary, error) {
	t, err := c.svc.Threads.Get("me", id).Format("metadata").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}

	thread := &ThreadSummary{ID: t.Id}
	for _, m := range t.Messages {
		thread.Messages = append(thread.Messages, toMessageSummary(m))
	}
	return thread, nil
}

// SendInput carries everything needed to compose an outbound message or
// draft. ThreadID and OriginalMessageID together enable reply threading.
type SendInput struct {
	To                string
	Subject           string
	Body              string // plain text; converted to HTML on the wire
	ThreadID          string
	OriginalMessageID string
}

// SendEmail composes and sends a message. When both ThreadID and
// OriginalMessageID are set, the original message's headers are looked up to
// chain In-Reply-To and References so downstream clients thread correctly.
func (c *Client) SendEmail(input SendInput) (string, error) {
	raw, err := c.compose(input)
	if err != nil {
		return "", err
	}

	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw:      raw,
		ThreadId: input.ThreadID,
	}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}

// CreateDraft composes a draft with the same construction as SendEmail.
func (c *Client) CreateDraft(input SendInput) (*Draft, error) {
	raw, err := c.compose(input)
	if err != nil {
		return nil, err
	}

	created, err := c.svc.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: raw, ThreadId: input.ThreadID},
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return &Draft{ID: created.Id, Message: toMessage(created.Message)}, nil
}

// UpdateDraft replaces the content of an existing draft.
func (c *Client) UpdateDraft(id string, input SendInput) (*Draft, error) {
	raw, err := c.compose(input)
	if err != nil {
		return nil, err
	}

	updated, err := c.svc.Drafts.Update("me", id, &gmail.Draft{
		Message: &gmail.Message{Raw: raw, ThreadId: input.ThreadID},
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	return &Draft{ID: updated.Id, Message: toMessage(updated.Message)}, nil
}

// GetDraft fetches a draft with its full message body.
func (c *Client) GetDraft(id string) (*Draft, error) {
	d, err := c.svc.Drafts.Get("me", id).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return &Draft{ID: d.Id, Message: toMessage(d.Message)}, nil
}

// ListDrafts lists drafts with their message headers.
func (c *Client) ListDrafts(maxResults int64) ([]Draft, error) {
	res, err := c.svc.Drafts.List("me").MaxResults(maxResults).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	drafts := make([]Draft, 0, len(res.Drafts))
	for _, d := range res.Drafts {
		full, err := c.svc.Drafts.Get("me", d.Id).Format("metadata").Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch draft %s: %w", d.Id, err)
		}
		drafts = append(drafts, Draft{ID: full.Id, Message: toMessage(full.Message)})
	}
	return drafts, nil
}

// DeleteDraft permanently deletes a draft.
func (c *Client) DeleteDraft(id string) error {
	if err := c.svc.Drafts.Delete("me", id).Do(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// SendDraft sends an existing draft and returns the sent message id.
func (c *Client) SendDraft(id string) (string, error) {
	sent, err := c.svc.Drafts.Send("me", &gmail.Draft{Id: id}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send draft: %w", err)
	}
	return sent.Id, nil
}

// ModifyLabels applies label additions and removals in one call. Both lists
// pass through verbatim; conflicting entries are resolved upstream.
func (c *Client) ModifyLabels(id string, add, remove []string) (*MessageSummary, error) {
	m, err := c.svc.Messages.Modify("me", id, &gmail.ModifyMessageRequest{
		AddLabelIds:    add,
		RemoveLabelIds: remove,
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to modify labels: %w", err)
	}

	summary := toMessageSummary(m)
	return &summary, nil
}

// ListLabels lists all labels of the mailbox.
func (c *Client) ListLabels() ([]Label, error) {
	res, err := c.svc.Labels.List("me").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	labels := make([]Label, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, Label{ID: l.Id, Name: l.Name, Type: l.Type})
	}
	return labels, nil
}

// compose builds the encoded outbound form shared by send and draft
// operations.
func (c *Client) compose(input SendInput) (string, error) {
	identity := c.sender.Get(c.fetchSenderIdentity)

	out := &Outbound{
		From:     FormatFrom(identity),
		To:       input.To,
		Subject:  input.Subject,
		HTMLBody: HTMLBody(input.Body, identity.Signature),
	}

	if input.ThreadID != "" && input.OriginalMessageID != "" {
		original, err := c.svc.Messages.Get("me", input.OriginalMessageID).
			Format("metadata").
			MetadataHeaders("Message-ID", "References").
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to get original message: %w", err)
		}

		var headers []*gmail.MessagePartHeader
		if original.Payload != nil {
			headers = original.Payload.Headers
		}
		messageID := headerValue(headers, "Message-ID")
		out.InReplyTo = messageID
		out.References = BuildReferences(headerValue(headers, "References"), messageID)
	}

	return out.Encode(), nil
}

// fetchSenderIdentity reads the primary send-as entry: display name, address
// and signature HTML.
func (c *Client) fetchSenderIdentity() (Identity, error) {
	res, err := c.svc.Settings.SendAs.List("me").Do()
	if err != nil {
		return Identity{}, fmt.Errorf("failed to fetch send-as settings: %w", err)
	}

	for _, sendAs := range res.SendAs {
		if sendAs.IsPrimary {
			return Identity{
				Name:      sendAs.DisplayName,
				Address:   sendAs.SendAsEmail,
				Signature: sendAs.Signature,
			}, nil
		}
	}
	return Identity{}, nil
}

package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// newFakeClient builds a Client against an httptest backend standing in for
// the Gmail API.
func newFakeClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := gmail.NewService(context.Background(),
		option.WithoutAuthentication(),
		option.WithEndpoint(srv.URL))
	require.NoError(t, err)

	return &Client{svc: svc.Users, sender: NewSenderCache()}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListEmailsNormalizesRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/users/me/messages"):
			assert.Equal(t, "is:unread", r.URL.Query().Get("q"))
			assert.Equal(t, "2", r.URL.Query().Get("maxResults"))
			writeJSON(t, w, &gmail.ListMessagesResponse{
				Messages: []*gmail.Message{
					{Id: "m1", ThreadId: "t1"},
					{Id: "m2", ThreadId: "t2"},
				},
			})
		case strings.HasSuffix(path, "/users/me/messages/m1"),
			strings.HasSuffix(path, "/users/me/messages/m2"):
			id := path[strings.LastIndex(path, "/")+1:]
			writeJSON(t, w, &gmail.Message{
				Id:       id,
				ThreadId: "t" + strings.TrimPrefix(id, "m"),
				Snippet:  "snippet " + id,
				LabelIds: []string{"INBOX", "UNREAD"},
				Payload: &gmail.MessagePart{
					Headers: []*gmail.MessagePartHeader{
						{Name: "From", Value: "alice@x.test"},
						{Name: "To", Value: "bob@x.test"},
						{Name: "Subject", Value: "Subject " + id},
						{Name: "Date", Value: "Mon, 1 Jan 2026 10:00:00 +0000"},
					},
				},
			})
		default:
			t.Errorf("unexpected request: %s", path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := newFakeClient(t, mux)

	summaries, err := client.ListEmails(2, "unread", "")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "m1", summaries[0].ID)
	assert.Equal(t, "m2", summaries[1].ID)
	assert.Equal(t, "alice@x.test", summaries[0].From)
	assert.Equal(t, "bob@x.test", summaries[0].To)
	assert.Equal(t, "Subject m1", summaries[0].Subject)
	assert.Equal(t, []string{"INBOX", "UNREAD"}, summaries[0].LabelIDs)

	// The serialized record carries exactly the stable field set.
	data, err := json.Marshal(summaries[0])
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	for key := range fields {
		assert.Contains(t,
			[]string{"id", "threadId", "from", "to", "subject", "date", "snippet", "labelIds"},
			key, "unexpected field leaked: %s", key)
	}
}

func TestSendEmailThreadsReply(t *testing.T) {
	var sentBody []byte

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/users/me/settings/sendAs"):
			writeJSON(t, w, &gmail.ListSendAsResponse{
				SendAs: []*gmail.SendAs{
					{SendAsEmail: "me@x.test", DisplayName: "Me", Signature: "<b>sig</b>", IsPrimary: true},
				},
			})
		case strings.HasSuffix(path, "/users/me/messages/orig"):
			writeJSON(t, w, &gmail.Message{
				Id: "orig",
				Payload: &gmail.MessagePart{
					Headers: []*gmail.MessagePartHeader{
						{Name: "Message-ID", Value: "<m1@x>"},
						{Name: "References", Value: "<m0@x>"},
					},
				},
			})
		case strings.HasSuffix(path, "/users/me/messages/send"):
			var err error
			sentBody, err = io.ReadAll(r.Body)
			require.NoError(t, err)
			writeJSON(t, w, &gmail.Message{Id: "sent1", ThreadId: "t1"})
		default:
			t.Errorf("unexpected request: %s", path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := newFakeClient(t, mux)

	id, err := client.SendEmail(SendInput{
		To:                "bob@x.test",
		Subject:           "Re: Hello",
		Body:              "reply text",
		ThreadID:          "t1",
		OriginalMessageID: "orig",
	})
	require.NoError(t, err)
	assert.Equal(t, "sent1", id)

	var sent gmail.Message
	require.NoError(t, json.Unmarshal(sentBody, &sent))
	assert.Equal(t, "t1", sent.ThreadId)
	assert.NotContains(t, sent.Raw, "=")

	decoded, err := base64.RawURLEncoding.DecodeString(sent.Raw)
	require.NoError(t, err)
	wire := string(decoded)

	assert.Contains(t, wire, "From: Me <me@x.test>\r\n")
	assert.Contains(t, wire, "In-Reply-To: <m1@x>\r\n")
	assert.Contains(t, wire, "References: <m0@x> <m1@x>\r\n")
	assert.Contains(t, wire, "reply text"+signatureDivider+"<b>sig</b>")
}

func TestGetEmailExtractsBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &gmail.Message{
			Id:       "m1",
			ThreadId: "t1",
			Payload: &gmail.MessagePart{
				MimeType: "multipart/alternative",
				Headers: []*gmail.MessagePartHeader{
					{Name: "Subject", Value: "Hello"},
					{Name: "Cc", Value: "carol@x.test"},
				},
				Parts: []*gmail.MessagePart{
					{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encode("plain body")}},
				},
			},
		})
	})

	client := newFakeClient(t, mux)

	msg, err := client.GetEmail("m1")
	require.NoError(t, err)
	assert.Equal(t, "plain body", msg.Body)
	assert.Equal(t, "carol@x.test", msg.CC)
	assert.Equal(t, "Hello", msg.Subject)
}

func TestListEmailsUpstreamFailure(t *testing.T) {
	client := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"backend unavailable"}}`, http.StatusInternalServerError)
	}))

	_, err := client.ListEmails(2, "inbox", "")
	require.Error(t, err)
}

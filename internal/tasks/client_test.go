package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"
)

func newFakeClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := tasks.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication())
	require.NoError(t, err)

	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	return &Client{svc: svc, now: func() time.Time { return now }}, srv
}

func TestListTasksShowCompleted(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(&tasks.Tasks{Items: []*tasks.Task{
			{Id: "t1", Title: "Open", Status: "needsAction"},
			{Id: "t2", Title: "Done", Status: "completed"},
		}})
	}))

	list, err := client.ListTasks("@default", true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t1", list[0].ID)
	assert.Equal(t, "completed", list[1].Status)
	assert.Equal(t, []string{"true"}, gotQuery["showCompleted"])
	assert.Equal(t, []string{"true"}, gotQuery["showHidden"])
}

func TestListTasksExcludeCompleted(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(&tasks.Tasks{Items: []*tasks.Task{
			{Id: "t1", Title: "Open", Status: "needsAction"},
		}})
	}))

	list, err := client.ListTasks("@default", false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"false"}, gotQuery["showCompleted"])
	assert.Empty(t, gotQuery["showHidden"])
}

func TestUpdateTaskPreservesStoredFields(t *testing.T) {
	var sent tasks.Task
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(&tasks.Task{
				Id:     "t1",
				Title:  "A",
				Notes:  "B",
				Due:    "2026-09-01T00:00:00Z",
				Status: "needsAction",
			})
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			_ = json.NewEncoder(w).Encode(&sent)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))

	got, err := client.UpdateTask("@default", "t1", TaskInput{Status: "completed"})
	require.NoError(t, err)

	assert.Equal(t, "A", sent.Title)
	assert.Equal(t, "B", sent.Notes)
	assert.Equal(t, "2026-09-01T00:00:00Z", sent.Due)
	assert.Equal(t, "completed", sent.Status)
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, "A", got.Title)
}

func TestCompleteTaskStampsCompletion(t *testing.T) {
	var sent tasks.Task
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(&tasks.Task{
				Id:     "t1",
				Title:  "A",
				Notes:  "B",
				Status: "needsAction",
			})
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			_ = json.NewEncoder(w).Encode(&sent)
		}
	}))

	got, err := client.CompleteTask("@default", "t1")
	require.NoError(t, err)

	assert.Equal(t, "completed", sent.Status)
	require.NotNil(t, sent.Completed)
	assert.Equal(t, "2026-08-26T10:00:00Z", *sent.Completed)
	assert.Equal(t, "A", sent.Title)
	assert.Equal(t, "B", sent.Notes)
	assert.Equal(t, "2026-08-26T10:00:00Z", got.Completed)
}

func TestCreateTaskDefaultsStatus(t *testing.T) {
	var sent tasks.Task
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		sent.Id = "new"
		_ = json.NewEncoder(w).Encode(&sent)
	}))

	got, err := client.CreateTask("@default", TaskInput{Title: "Buy milk", Notes: "2%"})
	require.NoError(t, err)

	assert.Equal(t, "needsAction", sent.Status)
	assert.Equal(t, "Buy milk", sent.Title)
	assert.Equal(t, "new", got.ID)
}

func TestDeleteTask(t *testing.T) {
	var gotPath string
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteTask("@default", "t9"))
	assert.True(t, strings.HasSuffix(gotPath, "/lists/@default/tasks/t9"))
}

func TestListTaskListsUpstreamFailure(t *testing.T) {
	client, _ := newFakeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500}}`, http.StatusInternalServerError)
	}))

	_, err := client.ListTaskLists()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list task lists")
}

package gmail

import "testing"

func TestFolderQuery(t *testing.T) {
	tests := []struct {
		folder   string
		expected string
	}{
		{folder: "inbox", expected: "in:inbox"},
		{folder: "sent", expected: "in:sent"},
		{folder: "unread", expected: "is:unread"},
		{folder: "starred", expected: "is:starred"},
		{folder: "important", expected: "is:important"},
		{folder: "trash", expected: "in:trash"},
		{folder: "spam", expected: "in:spam"},
		{folder: "all", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			if got := FolderQuery(tt.folder, ""); got != tt.expected {
				t.Errorf("FolderQuery(%q) = %q, want %q", tt.folder, got, tt.expected)
			}
		})
	}
}

func TestFolderQueryUnknownFallsBackToInbox(t *testing.T) {
	if got := FolderQuery("archive", ""); got != "in:inbox" {
		t.Errorf("Expected inbox filter for unknown folder, got %q", got)
	}
}

func TestFolderQueryAppendsUserQuery(t *testing.T) {
	tests := []struct {
		name     string
		folder   string
		query    string
		expected string
	}{
		{name: "inbox with query", folder: "inbox", query: "from:alice", expected: "in:inbox from:alice"},
		{name: "all with query", folder: "all", query: "subject:report", expected: "subject:report"},
		{name: "unread without query", folder: "unread", query: "", expected: "is:unread"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FolderQuery(tt.folder, tt.query); got != tt.expected {
				t.Errorf("FolderQuery(%q, %q) = %q, want %q", tt.folder, tt.query, got, tt.expected)
			}
		})
	}
}

package gmail

import "strings"

// folderQueries maps the folder vocabulary exposed to agents onto Gmail
// search filters. The table is closed; see FolderQuery for the fallback.
var folderQueries = map[string]string{
	"inbox":     "in:inbox",
	"sent":      "in:sent",
	"unread":    "is:unread",
	"starred":   "is:starred",
	"important": "is:important",
	"trash":     "in:trash",
	"spam":      "in:spam",
	"all":       "",
}

// FolderQuery resolves a folder name to its Gmail filter and appends an
// optional user query, space-joined and trimmed. An unknown folder silently
// falls back to the inbox filter.
func FolderQuery(folder, query string) string {
	filter, ok := folderQueries[folder]
	if !ok {
		filter = folderQueries["inbox"]
	}
	return strings.TrimSpace(filter + " " + query)
}

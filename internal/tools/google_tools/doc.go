// Package google_tools registers the OAuth helper tools that let an agent
// walk a user through first-time authorization: fetching the consent URL
// and exchanging the returned code for a stored token.
package google_tools

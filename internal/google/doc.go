// Package google handles OAuth credential loading and produces the one
// authenticated HTTP client shared by the Gmail, Calendar and Tasks
// services. Credentials live in two files: the OAuth client JSON and the
// persisted token JSON, both at configurable paths.
package google

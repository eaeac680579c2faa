// Package logging provides slog setup and shared attribute helpers so log
// entries use consistent keys across the codebase. Email addresses are
// logged only as truncated hashes via AnonymizeEmail.
package logging

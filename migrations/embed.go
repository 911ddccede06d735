package migrations

import "embed"

// Files holds the forward-only SQL migrations for the key-value table.
//
//go:embed *.sql
var Files embed.FS

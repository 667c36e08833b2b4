package migrations

import "embed"

// FS embeds the SQL migrations for the section store.
//
//go:embed *.sql
var FS embed.FS

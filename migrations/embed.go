// Package migrations embeds the schema migration files. The repo test
// harness and the migration round-trip test feed FS to goose directly,
// so no migration files need to exist on disk at runtime.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

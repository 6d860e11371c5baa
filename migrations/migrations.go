// Package migrations embeds the goose SQL migrations so the server binary
// can apply them without a migrations directory on disk.
package migrations

import "embed"

// FS holds every SQL migration. Pass it to goose.SetBaseFS and run goose
// against the "." directory.
//
//go:embed *.sql
var FS embed.FS

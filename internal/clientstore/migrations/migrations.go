// Package migrations embeds the goose migrations for the local client
// storage database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

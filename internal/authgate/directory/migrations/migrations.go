// Package migrations embeds the directory schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

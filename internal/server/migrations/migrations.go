// Package migrations embeds the goose migration files applied by the
// schema provisioner at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

// Package migrations embeds the site client's sqlite schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

// Package migrations embeds the SQL schema migrations consumed by the
// migrate command.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

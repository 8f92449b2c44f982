// Package migrations embeds the emulator store's SQL schema migrations.
// Files are named NNN_name.sql and applied in version order.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

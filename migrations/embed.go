// Package migrations embeds the SQL schema applied by database.RunMigrations.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS

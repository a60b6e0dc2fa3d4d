// Package migrations embeds the goose migration scripts, one directory per
// supported dialect.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

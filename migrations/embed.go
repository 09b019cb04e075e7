// Package migrations embeds the golang-migrate SQL files for the server, hrctl and tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

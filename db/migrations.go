// Package db holds the schema migrations and generated query code.
package db

import "embed"

// Migrations contains the golang-migrate SQL files.
//
//go:embed migrations/*.sql
var Migrations embed.FS

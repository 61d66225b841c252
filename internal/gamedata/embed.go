// Package gamedata provides embedded enemy and wave definitions and utilities for loading them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS

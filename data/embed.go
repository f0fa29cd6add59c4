// Package data provides the embedded generation presets.
package data

import "embed"

// dataFS embeds all JSON files from the data directory at build time.
//
//go:embed *.json
var dataFS embed.FS

// FS returns the embedded filesystem containing preset data.
func FS() embed.FS {
	return dataFS
}

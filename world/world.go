// Package world embeds the default Ember world data.
package world

import "embed"

// Files holds the default world definition files.
//
//go:embed *.yaml
var Files embed.FS

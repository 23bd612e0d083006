// Package parser converts command strings into Command structs.
// Intentionally dumb: whitespace tokens and an alias table.
package parser

import (
	"sort"
	"strings"

	"github.com/nathoo/ember/types"
)

// Canonical command names.
const (
	Move      = "move"
	Look      = "look"
	Exits     = "exits"
	Inventory = "inventory"
	Take      = "take"
	Use       = "use"
	Inspect   = "inspect"
	Help      = "help"
	Quit      = "quit"
)

var verbAliases = map[string]string{
	// Movement
	"move": Move,
	"m":    Move,
	"go":   Move,
	"g":    Move,

	// Look
	"look":     Look,
	"l":        Look,
	"whereami": Look,

	"exits": Exits,
	"ex":    Exits,

	"inventory": Inventory,
	"inv":       Inventory,
	"i":         Inventory,
	"e":         Inventory,

	// Take
	"take":   Take,
	"t":      Take,
	"pickup": Take,
	"get":    Take,

	"use": Use,
	"u":   Use,

	// Inspect
	"inspect": Inspect,
	"ins":     Inspect,
	"examine": Inspect,
	"exam":    Inspect,

	"help": Help,
	"h":    Help,
	"?":    Help,

	"quit": Quit,
	"exit": Quit,
	"q":    Quit,
}

// UseSeparator splits a use command into tool and target.
const UseSeparator = "on"

// Parse converts a raw input line into a Command. Unknown command words
// yield a Command with an empty Verb and Raw set to the typed word.
func Parse(input string) types.Command {
	words := strings.Fields(input)
	if len(words) == 0 {
		return types.Command{}
	}

	raw := strings.ToLower(words[0])
	return types.Command{
		Verb: verbAliases[raw],
		Raw:  raw,
		Args: words[1:],
	}
}

// Known returns every command word the parser accepts that is long enough
// to be a useful correction target.
func Known() []string {
	words := make([]string, 0, len(verbAliases))
	for word := range verbAliases {
		if len(word) >= 3 {
			words = append(words, word)
		}
	}
	sort.Strings(words)
	return words
}

// Phrase joins args into a single space separated name.
func Phrase(args []string) string {
	return strings.Join(args, " ")
}

// SplitOn splits args on the first token equal (case-insensitively) to sep.
// found is false when sep does not occur.
func SplitOn(args []string, sep string) (before, after string, found bool) {
	for i, w := range args {
		if strings.EqualFold(w, sep) {
			return Phrase(args[:i]), Phrase(args[i+1:]), true
		}
	}
	return Phrase(args), "", false
}

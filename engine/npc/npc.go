// Package npc holds the interaction procedures NPCs run when the player
// meets them. Procedures receive the actor and world as arguments and never
// hold on to either.
package npc

import (
	"fmt"
	"strings"

	"github.com/nathoo/ember/engine/state"
)

// Interaction is a forced-choice exchange with an NPC.
type Interaction interface {
	// Prompt returns the question shown to the player.
	Prompt(n *state.NPC) string
	// Choose applies an answer. ok is false when the answer is not one of
	// the offered choices; the caller must ask again.
	Choose(answer string, n *state.NPC, actor *state.Player, w *state.World) (lines []string, ok bool)
}

var registry = map[string]Interaction{
	"salvage": Salvage{},
}

// Lookup returns the interaction registered under name.
func Lookup(name string) (Interaction, bool) {
	i, ok := registry[name]
	return i, ok
}

// Salvage is the Old Rover choice: strip its antenna or leave it running.
type Salvage struct{}

func (Salvage) Prompt(n *state.NPC) string {
	return fmt.Sprintf("What do you do with the %s?\n  1. Harvest its antenna\n  2. Leave it intact", n.Name)
}

func (Salvage) Choose(answer string, n *state.NPC, actor *state.Player, w *state.World) ([]string, bool) {
	switch strings.TrimSpace(answer) {
	case "1":
		antenna, ok := w.Items[state.ItemAntenna]
		if !ok {
			return nil, false
		}
		actor.AddItem(antenna)
		actor.Flags.OldRoverAlive = false
		return []string{
			fmt.Sprintf("You pry the antenna mast loose. The %s's lights gutter and go dark.", n.Name),
			fmt.Sprintf("The %s has been added to your inventory.", antenna.Name),
		}, true
	case "2":
		return []string{
			fmt.Sprintf("You pat the %s's dusty hull and leave it to its watch.", n.Name),
		}, true
	default:
		return nil, false
	}
}

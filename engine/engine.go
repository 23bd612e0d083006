// Package engine provides the Step() orchestrator that wires together
// parsing, movement, item interaction and the IRIS ending into a single turn.
//
// A turn can ask the player a question (an access code, a confirmation, a
// multiple-choice answer). The engine then holds a pending continuation and
// the next Step input is taken as the answer instead of a new command.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nathoo/ember/engine/parser"
	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/engine/suggest"
	"github.com/nathoo/ember/types"
)

// Engine holds the world, the player and the in-flight turn.
type Engine struct {
	World  *state.World
	Player *state.Player
	Rand   RandomSource
	Log    *slog.Logger

	pending *pending
	lines   []types.Line
	events  []types.Event
	ending  types.Ending
	over    bool
}

// pending is a question the current turn is suspended on.
type pending struct {
	prompt string
	answer func(input string)
}

// New creates an engine for a fresh session in w.
func New(w *state.World, playerName string) *Engine {
	return &Engine{
		World:  w,
		Player: state.NewPlayer(playerName, w),
		Rand:   NewRNG(1),
		Log:    slog.New(slog.DiscardHandler),
	}
}

// Over reports whether the session has reached a terminal state.
func (e *Engine) Over() bool {
	return e.over
}

// Ending returns the terminal outcome, or EndingNone while playing.
func (e *Engine) Ending() types.Ending {
	return e.ending
}

// Start produces the opening narration and the first room description.
func (e *Engine) Start() types.Result {
	e.reset()
	if e.World.Title != "" {
		e.say(e.World.Title)
		e.say("")
	}
	e.narrate(e.World.Intro...)
	e.look()
	return e.result()
}

// Step processes one line of player input and returns the result.
func (e *Engine) Step(input string) types.Result {
	e.reset()

	// 0. Session over: nothing else happens.
	if e.over {
		e.say("The session has ended.")
		return e.result()
	}

	// 1. A suspended turn takes the input as its answer.
	if p := e.pending; p != nil {
		e.pending = nil
		e.Log.Debug("answer", "prompt", firstLine(p.prompt), "input", input)
		p.answer(input)
	} else {
		cmd := parser.Parse(input)
		e.Log.Debug("command", "verb", cmd.Verb, "raw", cmd.Raw, "args", cmd.Args)
		e.dispatch(cmd)
	}

	// 2. Once the command has fully completed, run the between-turn checks.
	if e.pending == nil && !e.over {
		e.afterCommand()
	}

	return e.result()
}

// dispatch routes a parsed command to its handler.
func (e *Engine) dispatch(cmd types.Command) {
	switch cmd.Verb {
	case parser.Move:
		if len(cmd.Args) == 0 {
			e.fail("Move where? Try forward, back, left or right.")
			return
		}
		e.move(parser.Phrase(cmd.Args))
	case parser.Look:
		e.look()
	case parser.Exits:
		e.exits()
	case parser.Inventory:
		e.inventory()
	case parser.Take:
		e.take(parser.Phrase(cmd.Args))
	case parser.Inspect:
		e.inspect(parser.Phrase(cmd.Args))
	case parser.Use:
		e.use(cmd.Args)
	case parser.Help:
		e.help()
	case parser.Quit:
		e.end(types.EndingQuit, "You switch off your suit lamp and wait for the dark. Goodbye.")
	default:
		e.unknown(cmd.Raw)
	}
}

func (e *Engine) unknown(raw string) {
	if raw == "" {
		e.fail("What do you want to do?")
		return
	}
	if s, ok := suggest.Closest(raw, parser.Known(), suggest.DefaultCutoff); ok {
		e.fail(fmt.Sprintf("Unknown command %q. Did you mean %q?", raw, s))
		return
	}
	e.fail("Unknown command.")
}

// afterCommand runs when a command has finished, including any questions
// it asked along the way.
func (e *Engine) afterCommand() {
	f := &e.Player.Flags
	if e.Player.MoveCount == 3 && !f.StormHintShown && f.AirlockFromDoor {
		e.narrate(stormHint...)
		f.StormHintShown = true
		e.emit("flag_set", map[string]any{"flag": "storm_hint_shown"})
	}
}

func (e *Engine) help() {
	e.say(
		"Commands:",
		"  move/go <direction>      Move forward, back, left or right (relative to where you face)",
		"  look (l, whereami)       Describe the room you are in",
		"  exits (ex)               List the ways out of this room",
		"  inventory (inv, i)       List what you are carrying",
		"  take/get <item>          Pick something up",
		"  inspect/examine <item>   Look closely at something",
		"  use <item> on <target>   Use one thing on another",
		"  help (h, ?)              Show this help",
		"  quit (q, exit)           Give up",
	)
}

// ask suspends the turn on a question.
func (e *Engine) ask(prompt string, answer func(input string)) {
	e.pending = &pending{prompt: prompt, answer: answer}
}

// end plays the closing narration and makes the session terminal.
func (e *Engine) end(ending types.Ending, lines ...string) {
	e.narrate(lines...)
	e.ending = ending
	e.over = true
	e.pending = nil
	e.emit("ending", map[string]any{"ending": string(ending)})
	e.Log.Info("session ended", "ending", string(ending), "moves", e.Player.MoveCount)
}

func (e *Engine) say(texts ...string) {
	e.add(types.Immediate, texts)
}

func (e *Engine) narrate(texts ...string) {
	e.add(types.Narration, texts)
}

func (e *Engine) fail(texts ...string) {
	e.add(types.Failure, texts)
}

func (e *Engine) add(kind types.LineKind, texts []string) {
	for _, t := range texts {
		e.lines = append(e.lines, types.Line{Text: t, Kind: kind})
	}
}

func (e *Engine) emit(typ string, data map[string]any) {
	e.events = append(e.events, types.Event{Type: typ, Data: data})
	e.Log.Debug("event", "type", typ, "data", data)
}

func (e *Engine) reset() {
	e.lines = nil
	e.events = nil
}

func (e *Engine) result() types.Result {
	r := types.Result{
		Lines:  e.lines,
		Events: e.events,
		Ending: e.ending,
		Over:   e.over,
	}
	if e.pending != nil {
		r.Prompt = e.pending.prompt
	}
	return r
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

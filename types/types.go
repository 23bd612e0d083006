// Package types defines the shared data structures for the Ember engine.
// Behaviour lives in the engine packages; this package holds plain data.
package types

// Direction is an absolute compass direction.
type Direction string

const (
	North Direction = "north"
	East  Direction = "east"
	South Direction = "south"
	West  Direction = "west"
)

// Command is the tokenized representation of a player input line.
type Command struct {
	Verb string   // canonical command name, empty for blank input
	Raw  string   // the command token as typed (lower-cased)
	Args []string // remaining tokens, case preserved
}

// LineKind tells the presentation layer how to render a line.
type LineKind int

const (
	Immediate LineKind = iota // printed at once
	Narration                 // revealed with a typed, throttled effect
	Failure                   // turn-local error or refusal
)

// Line is a single line of output.
type Line struct {
	Text string
	Kind LineKind
}

// Event records something the engine did during a step.
type Event struct {
	Type string
	Data map[string]any
}

// Ending identifies a terminal outcome of a session.
type Ending string

const (
	EndingNone      Ending = ""
	EndingRescue    Ending = "rescue"    // antenna fitted to the emergency beacon
	EndingDefiant   Ending = "defiant"   // IRIS smashed with the wrench
	EndingHostile   Ending = "hostile"   // IRIS trusted, hostile contact
	EndingPreserved Ending = "preserved" // IRIS trusted, preserved alone
	EndingQuit      Ending = "quit"      // player quit
)

// Result is the output of a single game step.
type Result struct {
	Lines  []Line
	Events []Event
	Prompt string // non-empty while the engine waits for an answer
	Ending Ending
	Over   bool // true once the session has reached a terminal state
}

// Texts returns the text of every line in order.
func (r Result) Texts() []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Text
	}
	return out
}

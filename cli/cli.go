// Package cli provides line-based terminal I/O, typed narration and
// meta-command dispatch for the Ember engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/nathoo/ember/engine"
	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)
	Width     int  // wrap width; 0 disables wrapping

	// Narration lines are typed out one character at a time.
	CharDelay time.Duration
	LineDelay time.Duration
	Sleep     func(time.Duration)

	prompt  string // question the engine is waiting on
	lastCmd string // for "again" repeat
}

// New creates a CLI wired to the given engine on stdin/stdout.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine:    eng,
		In:        os.Stdin,
		Out:       os.Stdout,
		Width:     80,
		CharDelay: 18 * time.Millisecond,
		LineDelay: 250 * time.Millisecond,
		Sleep:     time.Sleep,
	}
}

// Run starts the game loop. It plays the opening, then loops:
// prompt → input → dispatch → output, until the session ends, the player
// types /quit, or input runs out.
func (c *CLI) Run() {
	c.printResult(c.Engine.Start())

	scanner := bufio.NewScanner(c.In)
	for !c.Engine.Over() {
		c.showPrompt()
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" repeats the last game command. Answers to questions are
		// never repeated.
		if c.prompt == "" {
			if strings.EqualFold(input, "again") {
				if c.lastCmd == "" {
					c.printLine("Nothing to repeat.")
					continue
				}
				input = c.lastCmd
			} else {
				c.lastCmd = input
			}
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

func (c *CLI) showPrompt() {
	if c.prompt == "" {
		c.print("> ")
		return
	}
	for _, line := range strings.Split(c.prompt, "\n") {
		c.printLine(c.wrap(line))
	}
	c.print("? ")
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"  again         Repeat your last command",
		"",
		"Type \"help\" for game commands.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	p := c.Engine.Player
	c.printSystem(fmt.Sprintf("Moves: %d", p.MoveCount))
	c.printSystem(fmt.Sprintf("Location: %s (facing %s)", p.Room, p.Facing))
	c.printSystem(fmt.Sprintf("Inventory: %v", state.ItemNames(p.Inventory)))
	c.printSystem(fmt.Sprintf("History: %v", p.History))
	c.printSystem(fmt.Sprintf("Flags: %+v", p.Flags))
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) == 0 {
		return
	}
	c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
	for _, e := range result.Events {
		c.printSystem(fmt.Sprintf("[trace]   %s %s", e.Type, formatData(e.Data)))
	}
}

// formatData renders event data with sorted keys.
func formatData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, data[k])
	}
	return strings.Join(parts, " ")
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Lines {
		if line.Kind == types.Narration {
			c.typeLine(line.Text)
			continue
		}
		c.printLine(c.wrap(line.Text))
	}
	c.prompt = result.Prompt
}

// typeLine writes text one character at a time, then pauses.
func (c *CLI) typeLine(text string) {
	text = c.wrap(text)
	if c.CharDelay <= 0 {
		c.printLine(text)
	} else {
		for _, r := range text {
			fmt.Fprint(c.Out, string(r))
			c.sleep(c.CharDelay)
		}
		fmt.Fprintln(c.Out)
	}
	c.sleep(c.LineDelay)
}

func (c *CLI) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (c *CLI) wrap(text string) string {
	if c.Width <= 0 {
		return text
	}
	// wordwrap may leave a line one column long at a hyphen; hard-wrap the rest.
	return wrap.String(wordwrap.String(text, c.Width), c.Width)
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

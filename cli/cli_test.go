package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/ember/engine"
	"github.com/nathoo/ember/loader"
)

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	w, err := loader.Default(nil)
	if err != nil {
		t.Fatalf("loading world: %v", err)
	}
	var out bytes.Buffer
	c := &CLI{
		Engine: engine.New(w, "Tester"),
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out
}

func TestCLI_IntroAndStartingRoom(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "EMBER: Stranded") {
		t.Error("expected title in output")
	}
	if !strings.Contains(output, "The survey ship Ember came down hard") {
		t.Error("expected intro narration in output")
	}
	if !strings.Contains(output, "You are in the center of the spaceship.") {
		t.Error("expected starting room description in output")
	}
}

func TestCLI_Navigation(t *testing.T) {
	c, out := newTestCLI(t, "move forward\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "You move to the Control Room, facing north.") {
		t.Errorf("expected move line, got:\n%s", out.String())
	}
}

func TestCLI_PromptShownAndAnswered(t *testing.T) {
	c, out := newTestCLI(t, "move left\nember-iris-8924\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Enter access code:\n? ") {
		t.Error("expected access code prompt")
	}
	if !strings.Contains(output, "ACCESS GRANTED") {
		t.Error("expected access granted")
	}
	if c.Engine.Player.Room != "communications_room" {
		t.Errorf("room = %q", c.Engine.Player.Room)
	}
}

func TestCLI_StopsAtEnding(t *testing.T) {
	c, out := newTestCLI(t, "quit\nlook\n")
	c.Run()

	if !c.Engine.Over() {
		t.Fatal("session not over")
	}
	if strings.Contains(out.String(), "The session has ended.") {
		t.Error("input read after the ending")
	}
}

func TestCLI_TypedNarration(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	var slept []time.Duration
	c.CharDelay = time.Millisecond
	c.LineDelay = 5 * time.Millisecond
	c.Sleep = func(d time.Duration) { slept = append(slept, d) }
	c.Run()

	if !strings.Contains(out.String(), "Emergency power hums somewhere under the deck plating.\n") {
		t.Error("typed narration not written intact")
	}
	var chars, lines int
	for _, d := range slept {
		switch d {
		case time.Millisecond:
			chars++
		case 5 * time.Millisecond:
			lines++
		}
	}
	if lines != 3 {
		t.Errorf("line pauses = %d, want one per intro line", lines)
	}
	if chars < len("Emergency power hums") {
		t.Errorf("char pauses = %d", chars)
	}
}

func TestCLI_NoDelaysNoSleep(t *testing.T) {
	c, _ := newTestCLI(t, "/quit\n")
	c.Sleep = func(time.Duration) { t.Fatal("slept with zero delays") }
	c.Run()
}

func TestCLI_Wrap(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Width = 30
	c.Run()

	for _, line := range strings.Split(out.String(), "\n") {
		if len(line) > 30 && strings.Contains(line, " ") {
			t.Errorf("line not wrapped: %q", line)
		}
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/quit", "/state", "/trace"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in help output", want)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command: /bogus") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nmove forward\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace]   moved facing=north from=center to=control_room") {
		t.Errorf("expected moved event in trace, got:\n%s", output)
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Location: center (facing north)") {
		t.Error("expected location in state output")
	}
	if !strings.Contains(output, "Moves: 0") {
		t.Error("expected move count in state output")
	}
}

func TestCLI_EmptyInput(t *testing.T) {
	c, out := newTestCLI(t, "\n\n/quit\n")
	c.Run()

	if strings.Contains(out.String(), "What do you want to do?") {
		t.Error("empty lines should be silently skipped by CLI")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "look\nagain\n/quit\n")
	c.Run()

	// Opening look, explicit look, repeat.
	count := strings.Count(out.String(), "You are in the center of the spaceship.")
	if count != 3 {
		t.Errorf("room description shown %d times, want 3", count)
	}
}

func TestCLI_Again_NotForAnswers(t *testing.T) {
	c, out := newTestCLI(t, "move left\nwrong\nagain\n/quit\n")
	c.Run()

	if got := strings.Count(out.String(), "Enter access code:"); got != 2 {
		t.Errorf("access code asked %d times, want 2", got)
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "# comment\ninventory\n/quit\n")
	c.EchoInput = true
	c.Run()

	output := out.String()
	if !strings.Contains(output, "> inventory\n") {
		t.Error("expected echoed input")
	}
	if strings.Contains(output, "comment") {
		t.Error("comment line should be skipped")
	}
}

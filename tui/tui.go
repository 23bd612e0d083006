package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/nathoo/ember/engine"
	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
	typed    bool // revealed one character at a time
}

// Options tune presentation only; they never change engine results.
type Options struct {
	CharDelay time.Duration
	LineDelay time.Duration
	Trace     bool
}

// Model is the Bubble Tea model for the Ember TUI.
type Model struct {
	engine *engine.Engine
	opts   Options

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // transcript so far (unstyled, for re-wrapping)
	queue    []rawLine // output waiting to be revealed
	typedLen int       // runes of queue[0] already revealed
	gen      int       // reveal generation; stale ticks are dropped

	prompt   string // question the engine is waiting on
	width    int
	height   int
	ready    bool
	trace    bool
	over     bool
	quitting bool
	lastCmd  string
}

// outputMsg carries engine output into the Update loop.
type outputMsg struct {
	input  string
	result types.Result
}

// revealTickMsg advances the narration reveal by one step.
type revealTickMsg struct {
	gen int
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		opts:    opts,
		input:   ti,
		history: NewHistory(100),
		trace:   opts.Trace,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, opts Options) error {
	p := tea.NewProgram(New(eng, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init plays the opening narration.
func (m Model) Init() tea.Cmd {
	eng := m.engine
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return outputMsg{result: eng.Start()}
	})
}

// Update handles messages (key presses, window resize, engine output, reveal ticks).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m.enqueue(msg.input, msg.result)
		cmd := m.advance()
		return m, cmd

	case revealTickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		cmd := m.advance()
		return m, cmd
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line. While narration is
// still being revealed, enter only skips to the end of it.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.revealing() {
		m.skip()
		return m, nil
	}
	if m.over {
		m.quitting = true
		return m, tea.Quit
	}

	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		m.history.Push(input)
		output, quit := m.handleMeta(input)
		m.echo(input)
		for _, line := range output {
			m.rawLines = append(m.rawLines, rawLine{text: line, isSystem: true})
		}
		m.rawLines = append(m.rawLines, rawLine{})
		m.refreshViewport()
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Answers to questions are not commands: no history, no repeat.
	if m.prompt == "" {
		if strings.EqualFold(input, "again") {
			if m.lastCmd == "" {
				m.echo(input)
				m.rawLines = append(m.rawLines, rawLine{text: "Nothing to repeat.", isSystem: true}, rawLine{})
				m.refreshViewport()
				return m, nil
			}
			input = m.lastCmd
		} else {
			m.lastCmd = input
		}
		m.history.Push(input)
	}

	m.enqueue(input, m.engine.Step(input))
	cmd := m.advance()
	return m, cmd
}

// enqueue schedules a step's output for reveal.
func (m *Model) enqueue(input string, result types.Result) {
	if input != "" {
		m.echo(input)
	}

	for _, l := range result.Lines {
		m.queue = append(m.queue, rawLine{
			text:  l.Text,
			kind:  kindOf(l),
			typed: l.Kind == types.Narration,
		})
	}
	if m.trace {
		for _, line := range m.formatTrace(result) {
			m.queue = append(m.queue, rawLine{text: line, kind: kindTrace})
		}
	}
	if result.Prompt != "" {
		for _, line := range strings.Split(result.Prompt, "\n") {
			m.queue = append(m.queue, rawLine{text: line, kind: kindQuestion})
		}
	}
	if result.Over {
		m.queue = append(m.queue, rawLine{}, rawLine{text: "Session over. Press enter to exit.", isSystem: true})
	}
	// Blank line separator between turns.
	m.queue = append(m.queue, rawLine{})

	m.prompt = result.Prompt
	m.over = result.Over
	if m.prompt != "" {
		m.input.Prompt = "? "
	} else {
		m.input.Prompt = "> "
	}
}

func (m *Model) echo(input string) {
	m.rawLines = append(m.rawLines, rawLine{text: "> " + input, isInput: true})
}

func (m Model) revealing() bool {
	return len(m.queue) > 0
}

// advance moves queued lines into the transcript until it has to wait for
// a tick. Narration lines grow one rune per CharDelay and pause for
// LineDelay once complete.
func (m *Model) advance() tea.Cmd {
	defer m.refreshViewport()

	for len(m.queue) > 0 {
		head := m.queue[0]
		if !head.typed || m.opts.CharDelay <= 0 {
			m.rawLines = append(m.rawLines, head)
			m.queue = m.queue[1:]
			continue
		}

		runes := []rune(head.text)
		if m.typedLen == 0 {
			m.rawLines = append(m.rawLines, rawLine{kind: head.kind, typed: true})
		}
		if m.typedLen < len(runes) {
			m.typedLen++
			m.rawLines[len(m.rawLines)-1].text = string(runes[:m.typedLen])
			return m.tick(m.opts.CharDelay)
		}

		m.queue = m.queue[1:]
		m.typedLen = 0
		if m.opts.LineDelay > 0 {
			return m.tick(m.opts.LineDelay)
		}
	}
	return nil
}

// skip reveals everything still queued at once.
func (m *Model) skip() {
	m.gen++
	if m.typedLen > 0 && len(m.queue) > 0 {
		m.rawLines[len(m.rawLines)-1].text = m.queue[0].text
		m.queue = m.queue[1:]
	}
	m.typedLen = 0
	m.rawLines = append(m.rawLines, m.queue...)
	m.queue = nil
	m.refreshViewport()
}

func (m *Model) tick(d time.Duration) tea.Cmd {
	gen := m.gen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return revealTickMsg{gen: gen}
	})
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wrap.String(wordwrap.String(rl.text, width), width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"  again         Repeat your last command",
		"",
		"Type \"help\" for game commands.",
		"Enter skips narration. PgUp/PgDn to scroll, Up/Down for command history.",
	}
}

func (m *Model) cmdState() []string {
	p := m.engine.Player
	return []string{
		fmt.Sprintf("Moves: %d", p.MoveCount),
		fmt.Sprintf("Location: %s (facing %s)", p.Room, p.Facing),
		fmt.Sprintf("Inventory: %v", state.ItemNames(p.Inventory)),
		fmt.Sprintf("History: %v", p.History),
		fmt.Sprintf("Flags: %+v", p.Flags),
	}
}

func (m *Model) formatTrace(result types.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
		}
		lines = append(lines, fmt.Sprintf("[trace]   %s%s", e.Type, b.String()))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

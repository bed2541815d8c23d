// Package repl implements the interactive chirp session as a Bubble Tea
// program: a single-line editor with fuzzy completion over the visible
// function and variable names, persistent history, and colon-prefixed
// control commands.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nilsblix/chirp/lang"
	"github.com/nilsblix/chirp/log"
)

const evalPrompt = "➜ "

// BaseHistory is the file name of the persisted history within the data
// directory.
const BaseHistory = "history.chirp"

func helpMessage() string {
	return `
Control commands (prefix with ':'):

  :help     Print this cruft
  :funcs    List callable function names
  :vars     List bound variable names
  :clear    Clear screen
  :quit     Exit REPL

Usage:
  Type an expression to evaluate it
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on an empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the input echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	interp       *lang.Interp
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts the REPL against the given interpreter. Output from echo and
// log builtins goes to the interpreter's configured sink; results and
// errors are rendered inline.
func Run(
	ctx context.Context,
	in *lang.Interp,
	banner string,
	historyPath string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("history", historyPath),
	)

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	if banner != "" {
		fmt.Println(hintStyle.Render(banner))
	}

	m := newModel(ctx, in, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	in *lang.Interp,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		interp:     in,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		// Viewing history: show position indicator.
		hint := fmt.Sprintf("%d/%d", m.historyIdx+1, m.history.Len())
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render(
			"Type an expression, or :help for commands"))
		b.WriteString("\n")

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width,
		))
		b.WriteString("\n")

	default:
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycleTab(1)

	case tea.KeyShiftTab:
		return m.cycleTab(-1)

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)
		}

		return m, nil

	case tea.KeyRunes:
		// Space ends a tab-cycling run, accepting the current candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows): update input and
	// recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycleTab advances the completion selection by step (+1 forward, -1
// backward), entering tab-cycling mode if not already active.
func (m model) cycleTab(step int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx += step
		if m.suggIdx >= len(m.matches) {
			m.suggIdx = 0
		} else if m.suggIdx < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		if step > 0 {
			m.suggIdx = 0
		} else {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input
// with the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also auto-confirms the completion when
// exactly one candidate remains and the typed word already equals it.
// autoConfirm should be false for deletions and cursor navigation so the
// user can edit freely without unexpected completions.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	word := m.input.Value()[m.wordStart:m.wordEnd]

	if word == candidate {
		replaceCurrentWord(m, candidate)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")

	_, _ = m.history.Write(input)
	m.historyIdx = m.history.Len()

	if cmd, ok := strings.CutPrefix(input, ":"); ok {
		m.logger.TraceContext(m.ctxFunc(), "repl command",
			slog.String("input", cmd),
		)

		return m.executeCommand(input, cmd)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
	)

	echoCmd := tea.Println(formatCommand(input))

	result, err := m.interp.Run(m.ctxFunc(), input)
	if err != nil {
		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	if result.Kind == lang.KindVoid {
		return m, echoCmd
	}

	return m, tea.Sequence(
		echoCmd,
		tea.Println(resultStyle.Render(result.String())),
	)
}

func (m model) executeCommand(input, cmd string) (model, tea.Cmd) {
	echoCmd := tea.Println(formatCommand(input))

	switch strings.TrimSpace(cmd) {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "f", "funcs":
		return m, tea.Sequence(echoCmd,
			tea.Println(nameColumns(m.interp.FuncNames())))

	case "v", "vars":
		return m, tea.Sequence(echoCmd,
			tea.Println(nameColumns(m.interp.VarNames())))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try :help)"),
		)
	}
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx > 0 {
		m.historyIdx--

		if line, err := m.history.GetLine(m.historyIdx); err == nil {
			m.input.SetValue(line)
			m.input.SetCursor(len(line))
			refreshMatches(&m, false)
		}
	}

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx < m.history.Len()-1 {
		m.historyIdx++

		if line, err := m.history.GetLine(m.historyIdx); err == nil {
			m.input.SetValue(line)
			m.input.SetCursor(len(line))
			refreshMatches(&m, false)
		}
	} else {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// nameColumns renders a sorted name list two-per-line for :funcs/:vars.
func nameColumns(names []string) string {
	var b strings.Builder

	for i, name := range names {
		if i%2 == 0 {
			b.WriteString("  ")
		}

		fmt.Fprintf(&b, "%-24s", name)

		if i%2 == 1 {
			b.WriteString("\n")
		}
	}

	if len(names)%2 == 1 {
		b.WriteString("\n")
	}

	return b.String()
}

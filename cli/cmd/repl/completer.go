package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the available colon-prefixed control commands.
var ctrlCommands = []string{"help", "funcs", "vars", "clear", "quit"}

// isWordBoundary reports whether the rune delimits a completion word.
// Hyphens and underscores are excluded because chirp symbols may contain
// them.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', ',', '"', '\'':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary (after a comma, inside parens, start of line).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inStringLiteral reports whether the byte offset falls inside an open
// quoted literal, where completion would be unwelcome. Chirp strings close
// at either quote character, so a single scan over both is enough.
func inStringLiteral(input string, offset int) bool {
	open := false

	for i, r := range input {
		if i >= offset {
			break
		}

		if r == '"' || r == '\'' {
			open = !open
		}
	}

	return open
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. Candidates are the control commands when the input is a colon
// command, otherwise the interpreter's function and variable names.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	if rest, ok := strings.CutPrefix(input, ":"); ok {
		word, ws, we := wordBounds(rest, max(cursor-1, 0))
		wordStart, wordEnd = ws+1, we+1

		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		return fuzzy.Find(word, ctrlCommands), ctrlCommands,
			wordStart, wordEnd
	}

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if word == "" || inStringLiteral(input, wordStart) {
		return nil, nil, wordStart, wordEnd
	}

	candidates = append(m.interp.FuncNames(), m.interp.VarNames()...)
	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within the given terminal width. Each candidate is rendered with its
// matched characters highlighted. The selected candidate (when tabbing)
// uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skiffworks/skiffctl/pkg/models"
)

// suggestDebounce is how long typing must pause before a search fires
const suggestDebounce = 300 * time.Millisecond

// maxSuggestionRows caps the visible menu height
const maxSuggestionRows = 6

// SearchFunc runs the remote repository lookup. Caching, retry and
// in-flight dedup all live behind it; the input is a thin consumer.
type SearchFunc func(ctx context.Context, query string, category models.RepositoryCategory, limit int) ([]string, error)

// SuggestInput is a single-select autocomplete for repository keys,
// scoped to a category. Every keystroke reaches the text value
// immediately; only the remote fetch waits for typing to pause.
type SuggestInput struct {
	id       string
	input    textinput.Model
	category models.RepositoryCategory
	disabled bool
	limit    int
	search   SearchFunc

	menuOpen  bool
	loading   bool
	fetched   bool
	results   []string
	cursor    int
	navigated bool

	// seq obsoletes older debounce timers; lastQuery is the debounced
	// query the results belong to, so a slow stale response can never
	// overwrite a newer one.
	seq       int
	lastQuery string
}

func NewSuggestInput(id string, limit int, search SearchFunc) *SuggestInput {
	input := textinput.New()
	input.Placeholder = "repository key"
	input.CharLimit = 255
	input.Width = 40

	return &SuggestInput{
		id:     id,
		input:  input,
		limit:  limit,
		search: search,
	}
}

func (s *SuggestInput) ID() string { return s.id }

func (s *SuggestInput) Value() string { return s.input.Value() }

// SetValue resynchronizes the field from the outside, e.g. when the
// host form resets a key. Programmatic changes never arm the debounce.
func (s *SuggestInput) SetValue(value string) {
	s.input.SetValue(value)
}

// SetCategory rescopes the search. Results from the old scope are
// dropped immediately.
func (s *SuggestInput) SetCategory(category models.RepositoryCategory) {
	if s.category == category {
		return
	}
	s.category = category
	s.clearResults()
	if !s.allowed() {
		s.menuOpen = false
	}
}

func (s *SuggestInput) SetDisabled(disabled bool) {
	s.disabled = disabled
	if disabled {
		s.menuOpen = false
		s.clearResults()
	}
}

func (s *SuggestInput) Focus() {
	s.input.Focus()
	s.menuOpen = s.allowed()
}

func (s *SuggestInput) Blur() {
	s.input.Blur()
	s.menuOpen = false
}

func (s *SuggestInput) Focused() bool { return s.input.Focused() }

func (s *SuggestInput) MenuOpen() bool { return s.menuOpen }

// HandleKey intercepts menu navigation. It reports whether the key was
// consumed and whether a suggestion was just selected, in which case
// the caller should read Value and propagate it right away.
func (s *SuggestInput) HandleKey(msg tea.KeyMsg) (handled, selected bool) {
	if !s.menuOpen {
		return false, false
	}

	switch msg.String() {
	case "up":
		if s.cursor > 0 {
			s.cursor--
		}
		s.navigated = true
		return true, false

	case "down":
		if s.cursor < s.visibleRows()-1 {
			s.cursor++
		}
		s.navigated = true
		return true, false

	case "enter":
		// The highlight is only an intent once the user has moved it;
		// a bare enter just dismisses the menu
		if s.navigated && len(s.results) > 0 && s.cursor < len(s.results) {
			s.input.SetValue(s.results[s.cursor])
			s.input.CursorEnd()
			s.menuOpen = false
			return true, true
		}
		s.menuOpen = false
		return true, false

	case "esc":
		s.menuOpen = false
		return true, false
	}

	return false, false
}

// UpdateInput forwards a message to the underlying text input. It
// reports whether the value changed; changed keystrokes arm a fresh
// debounce timer.
func (s *SuggestInput) UpdateInput(msg tea.Msg) (tea.Cmd, bool) {
	prev := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() == prev {
		return cmd, false
	}

	s.menuOpen = s.allowed()
	return tea.Batch(cmd, s.armDebounce()), true
}

func (s *SuggestInput) armDebounce() tea.Cmd {
	s.seq++
	seq := s.seq
	id := s.id
	return tea.Tick(suggestDebounce, func(time.Time) tea.Msg {
		return suggestDebounceMsg{id: id, seq: seq}
	})
}

// HandleDebounce runs when a debounce timer fires. Timers obsoleted by
// a newer keystroke are ignored; otherwise the debounced query updates
// and, unless suppressed, a fetch starts.
func (s *SuggestInput) HandleDebounce(msg suggestDebounceMsg) tea.Cmd {
	if msg.id != s.id || msg.seq != s.seq {
		return nil
	}

	query := strings.TrimSpace(s.input.Value())
	s.lastQuery = query

	if query == "" || s.disabled || s.category == "" {
		s.clearResults()
		return nil
	}

	s.loading = true
	s.cursor = 0
	s.navigated = false

	category := s.category
	limit := s.limit
	search := s.search
	id := s.id
	return func() tea.Msg {
		names, err := search(context.Background(), query, category, limit)
		return suggestResultsMsg{id: id, query: query, category: category, names: names, err: err}
	}
}

// HandleResults applies a completed fetch. Results for anything but
// the currently displayed query and scope are stale and dropped.
func (s *SuggestInput) HandleResults(msg suggestResultsMsg) {
	if msg.id != s.id {
		return
	}
	if msg.query != s.lastQuery || msg.category != s.category {
		return
	}

	s.loading = false
	s.fetched = true
	if msg.err != nil {
		// Failed lookups read as "no suggestions"
		s.results = nil
		return
	}
	s.results = msg.names
	if s.cursor >= len(s.results) {
		s.cursor = 0
	}
}

// View renders the input line plus, when the menu is open, the
// suggestion rows beneath it.
func (s *SuggestInput) View() string {
	var b strings.Builder
	b.WriteString(s.input.View())

	if !s.menuOpen {
		return b.String()
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("242")).
		Italic(true)
	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205"))

	switch {
	case s.loading:
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("    searching..."))

	case len(s.results) == 0:
		b.WriteString("\n")
		if s.fetched && s.lastQuery != "" {
			b.WriteString(dimStyle.Render("    no matching repositories"))
		} else {
			b.WriteString(dimStyle.Render("    type to search repositories"))
		}

	default:
		for i := 0; i < s.visibleRows(); i++ {
			b.WriteString("\n")
			if i == s.cursor {
				b.WriteString(highlightStyle.Render("  ▸ " + s.results[i]))
			} else {
				b.WriteString(rowStyle.Render("    " + s.results[i]))
			}
		}
	}

	return b.String()
}

func (s *SuggestInput) visibleRows() int {
	if len(s.results) > maxSuggestionRows {
		return maxSuggestionRows
	}
	return len(s.results)
}

func (s *SuggestInput) allowed() bool {
	return !s.disabled && s.category != ""
}

func (s *SuggestInput) clearResults() {
	s.loading = false
	s.fetched = false
	s.results = nil
	s.cursor = 0
	s.navigated = false
	s.lastQuery = ""
}

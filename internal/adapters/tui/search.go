package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// maxMatches is how many search results are listed.
const maxMatches = infoLines - 1

// artistSearch finds artists by fuzzy name match.
type artistSearch struct {
	input   textinput.Model
	names   []string
	matches fuzzy.Matches
	cursor  int
	active  bool
}

func newArtistSearch(names []string) artistSearch {
	ti := textinput.New()
	ti.Placeholder = "artist..."
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Width = 40
	return artistSearch{input: ti, names: names}
}

func (s *artistSearch) open() tea.Cmd {
	s.active = true
	s.input.SetValue("")
	s.matches = nil
	s.cursor = 0
	return s.input.Focus()
}

func (s *artistSearch) close() {
	s.active = false
	s.input.Blur()
}

// update feeds msg to the input and refreshes the matches.
func (s *artistSearch) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.refresh()
	return cmd
}

func (s *artistSearch) refresh() {
	pattern := strings.TrimSpace(s.input.Value())
	if pattern == "" {
		s.matches = nil
		s.cursor = 0
		return
	}
	s.matches = fuzzy.Find(pattern, s.names)
	if s.cursor >= len(s.matches) {
		s.cursor = 0
	}
}

func (s *artistSearch) move(delta int) {
	n := min(len(s.matches), maxMatches)
	if n == 0 {
		return
	}
	s.cursor = (s.cursor + delta + n) % n
}

// choice returns the highlighted match.
func (s *artistSearch) choice() (string, bool) {
	if s.cursor >= len(s.matches) {
		return "", false
	}
	return s.matches[s.cursor].Str, true
}

func (s *artistSearch) view() string {
	lines := []string{s.input.View()}
	for i, m := range s.matches {
		if i >= maxMatches {
			break
		}
		line := highlightMatch(m)
		if i == s.cursor {
			line = cursorStyle.Render(" ") + " " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func highlightMatch(m fuzzy.Match) string {
	matched := make(map[int]struct{}, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		matched[i] = struct{}{}
	}
	var b strings.Builder
	for i, r := range m.Str {
		if _, ok := matched[i]; ok {
			b.WriteString(matchStyle.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Package tui is the terminal explorer: a bubbletea program that draws the
// timeline into terminal cells and forwards mouse and keyboard input to the
// interaction controller.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/adapters/dataset"
	service "github.com/okian/timeline/internal/app"
	"github.com/okian/timeline/pkg/logger"
)

// Layout constants, in terminal cells.
const (
	defaultWidth        = 100
	defaultHeight       = 30
	defaultLegendHeight = 3
	defaultTopK         = 10
	headerLines         = 1
	footerLines         = 1
	topPaneWidth        = 28
	noticeDuration      = 2 * time.Second
	wheelStep           = 1.0
)

type resizeMsg struct{ gen uint64 }

type clearNoticeMsg struct{ id int }

type datasetMsg struct {
	year string
	ds   *dataset.Dataset
	err  error
}

// Model is the bubbletea model of the explorer. It owns one session at a
// time; switching years replaces it.
type Model struct {
	base     context.Context
	ctx      context.Context // base tagged with the session
	settings service.Settings
	session  *service.Session

	canvas *Canvas
	info   *Info
	legend *Legend
	search artistSearch
	help   help.Model

	width        int
	height       int
	legendHeight int
	axisColor    colorful.Color
	showTop      bool
	topK         int

	years    []string
	loadYear YearLoader
	loading  bool

	notice    string
	noticeErr bool
	noticeSeq int

	copyText    func(string) error
	board       *service.StatusBoard
	sessionOpts []service.Option
	logger      logger.Logger
}

// New creates the model and starts a session over ds.
func New(ctx context.Context, ds *dataset.Dataset, settings service.Settings, opts ...Option) (*Model, error) {
	m := &Model{
		base:         ctx,
		ctx:          ctx,
		settings:     settings,
		help:         help.New(),
		width:        defaultWidth,
		height:       defaultHeight,
		legendHeight: defaultLegendHeight,
		axisColor:    colorful.Color{R: 0.5, G: 0.5, B: 0.5},
		topK:         defaultTopK,
		copyText:     clipboard.WriteAll,
		logger:       logger.Get().Named("tui"), // will be updated by options
	}

	for _, opt := range opts {
		opt(m)
	}

	w, h := m.plotSize()
	m.canvas = NewCanvas(w, h, settings.Padding, settings.PointSize, m.axisColor)
	if err := m.startSession(ds); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) startSession(ds *dataset.Dataset) error {
	info := NewInfo(ds)
	legend := NewLegend(ds)
	m.canvas.RemoveAllLabels()

	s, err := service.NewSession(m.base, ds, m.settings, service.Deps{
		Renderer:   m.canvas,
		Labels:     m.canvas,
		TimeLabels: m.canvas,
		Info:       info,
		Legend:     legend,
	}, m.sessionOpts...)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	m.session, m.info, m.legend = s, info, legend
	m.ctx = s.Context(m.base)
	m.search = newArtistSearch(ds.Summary.ArtistNames())
	m.board.Publish(s)
	return nil
}

// Session returns the running session.
func (m *Model) Session() *service.Session { return m.session }

// Canvas returns the plot canvas.
func (m *Model) Canvas() *Canvas { return m.canvas }

func (m *Model) plotSize() (int, int) {
	w := m.width
	if m.showTop {
		w -= topPaneWidth
	}
	h := m.height - headerLines - m.legendHeight - infoLines - footerLines
	return max(w, 1), max(h, 1)
}

func (m *Model) legendTop() int {
	_, h := m.plotSize()
	return headerLines + h
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.board.Publish(m.session)
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	c := m.session.Controller

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m.resize()

	case resizeMsg:
		c.SettleResize(m.ctx, msg.gen)
		return nil

	case clearNoticeMsg:
		if msg.id == m.noticeSeq {
			m.notice = ""
		}
		return nil

	case datasetMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Error(m.ctx, "year load failed", logger.String("year", msg.year), logger.Error(msg.err))
			return m.startNotice(fmt.Sprintf("cannot load %s: %v", msg.year, msg.err), true)
		}
		if err := m.startSession(msg.ds); err != nil {
			m.logger.Error(m.ctx, "session start failed", logger.String("year", msg.year), logger.Error(err))
			return m.startNotice(err.Error(), true)
		}
		return m.startNotice("loaded "+msg.year, false)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return nil

	case tea.KeyMsg:
		if m.search.active {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return nil
}

// resize applies the new layout to the canvas and schedules the redraw.
// Resizes arriving within the debounce period collapse into the last one.
func (m *Model) resize() tea.Cmd {
	m.canvas.SetSize(m.plotSize())
	c := m.session.Controller
	gen := c.RequestResize()
	return tea.Tick(c.ResizeDebounce(), func(time.Time) tea.Msg { return resizeMsg{gen: gen} })
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	c := m.session.Controller
	w, h := m.plotSize()
	x, y := msg.X, msg.Y-headerLines
	inPlot := x >= 0 && x < w && y >= 0 && y < h

	switch msg.Action {
	case tea.MouseActionMotion:
		if !inPlot {
			c.PointerOut(m.ctx)
			return
		}
		c.PointerMove(m.ctx, x, y)

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if inPlot {
				c.Wheel(m.ctx, x, -wheelStep)
			}
		case tea.MouseButtonWheelDown:
			if inPlot {
				c.Wheel(m.ctx, x, wheelStep)
			}
		case tea.MouseButtonLeft:
			if inPlot {
				c.PointerDown(m.ctx, x)
				return
			}
			if genre, ok := m.legend.GenreAt(msg.X, msg.Y-m.legendTop()); ok {
				c.SelectGenre(m.ctx, genre)
			}
		}

	case tea.MouseActionRelease:
		c.PointerUp(m.ctx)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	c := m.session.Controller

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Up):
		c.Key(m.ctx, service.KeyUp)
	case key.Matches(msg, keys.Down):
		c.Key(m.ctx, service.KeyDown)
	case key.Matches(msg, keys.Left):
		c.Key(m.ctx, service.KeyLeft)
	case key.Matches(msg, keys.Right):
		c.Key(m.ctx, service.KeyRight)
	case key.Matches(msg, keys.Clear):
		c.Key(m.ctx, service.KeyEscape)
	case key.Matches(msg, keys.ZoomIn):
		c.Wheel(m.ctx, m.zoomAnchor(), -wheelStep)
	case key.Matches(msg, keys.ZoomOut):
		c.Wheel(m.ctx, m.zoomAnchor(), wheelStep)
	case key.Matches(msg, keys.Search):
		return m.search.open()
	case key.Matches(msg, keys.Copy):
		return m.copySelection()
	case key.Matches(msg, keys.Top):
		m.showTop = !m.showTop
		return m.resize()
	case key.Matches(msg, keys.PrevYear):
		return m.switchYear(-1)
	case key.Matches(msg, keys.NextYear):
		return m.switchYear(1)
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.close()
		return nil
	case tea.KeyEnter:
		name, ok := m.search.choice()
		m.search.close()
		if !ok {
			return nil
		}
		if !m.session.Controller.SelectArtist(m.ctx, name) {
			return m.startNotice(name+" is not in the visible window", true)
		}
		return nil
	case tea.KeyUp, tea.KeyCtrlP:
		m.search.move(-1)
		return nil
	case tea.KeyDown, tea.KeyCtrlN:
		m.search.move(1)
		return nil
	}
	return m.search.update(msg)
}

// zoomAnchor is the column keyboard zoom centres on: the selected scrobble
// when there is one, the middle of the plot otherwise.
func (m *Model) zoomAnchor() int {
	c := m.session.Controller
	sc := c.Scales()
	if e, ok := c.Selected(); ok {
		return sc.TimeToX(e.Timestamp)
	}
	return sc.Width / 2
}

func (m *Model) copySelection() tea.Cmd {
	text, ok := m.info.Copy()
	if !ok {
		return m.startNotice(ErrNoSelection.Error(), true)
	}
	if err := m.copyText(text); err != nil {
		err = fmt.Errorf("%w: %w", ErrClipboard, err)
		m.logger.Warn(m.ctx, "copy failed", logger.Error(err))
		return m.startNotice(err.Error(), true)
	}
	return m.startNotice("copied to clipboard", false)
}

func (m *Model) switchYear(delta int) tea.Cmd {
	if m.loadYear == nil || m.loading {
		return nil
	}
	idx := slices.Index(m.years, m.session.Dataset.Source.Year) + delta
	if idx < 0 || idx >= len(m.years) {
		return nil
	}

	year := m.years[idx]
	m.loading = true
	ctx, load := m.base, m.loadYear
	return func() tea.Msg {
		ds, err := load(ctx, year)
		return datasetMsg{year: year, ds: ds, err: err}
	}
}

func (m *Model) startNotice(msg string, isErr bool) tea.Cmd {
	m.notice = msg
	m.noticeErr = isErr

	// bump sequence to invalidate older timers
	m.noticeSeq++
	id := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

// View implements tea.Model.
func (m *Model) View() string {
	w, _ := m.plotSize()

	plot := m.canvas.Render()
	if m.showTop {
		plot = lipgloss.JoinHorizontal(lipgloss.Top, plot, m.topPane())
	}

	bottom := m.info.View(m.width)
	if m.search.active {
		bottom = m.search.view()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(w),
		plot,
		m.legend.View(m.width, m.legendHeight),
		bottom,
		m.footer(),
	)
}

func (m *Model) header(width int) string {
	ds := m.session.Dataset
	title := headerStyle.Render("scrobble timeline")
	if len(m.years) == 0 {
		return truncate(title, width)
	}
	parts := make([]string, 0, len(m.years))
	for _, y := range m.years {
		if y == ds.Source.Year {
			parts = append(parts, currentYear.Render(y))
			continue
		}
		parts = append(parts, yearStyle.Render(y))
	}
	line := title + "  " + strings.Join(parts, " ")
	if m.loading {
		line += yearStyle.Render("  loading...")
	}
	return line
}

func (m *Model) footer() string {
	if m.notice != "" {
		if m.noticeErr {
			return errorStyle.Render(m.notice)
		}
		return noticeStyle.Render(m.notice)
	}
	return m.help.View(keys)
}

func (m *Model) topPane() string {
	_, h := m.plotSize()
	top := m.session.Controller.TopArtists(m.topK)
	lines := []string{headerStyle.Render("top artists")}
	inner := topPaneWidth - 4
	for _, a := range top {
		count := fmt.Sprintf("%d", a.Count)
		name := truncate(a.Name, inner-len(count)-1)
		gap := max(inner-lipgloss.Width(name)-len(count), 1)
		lines = append(lines, name+strings.Repeat(" ", gap)+count)
	}
	return topPaneStyle.Width(topPaneWidth - 2).Height(max(h-2, 1)).Render(strings.Join(lines, "\n"))
}

package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/bookfinder/internal/book"
	"github.com/five82/bookfinder/internal/catalog"
	"github.com/five82/bookfinder/internal/logging"
	"github.com/five82/bookfinder/internal/prefs"
	"github.com/five82/bookfinder/internal/search"
	"github.com/five82/bookfinder/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewResults View = iota
	ViewFavorites
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   catalog.Searcher
	Store     *state.Store
	ThemeName string
	PrefsPath string
	Logger    *logrus.Entry
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	catalog   catalog.Searcher
	store     *state.Store
	prefsPath string
	log       *logrus.Entry
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot state.Snapshot

	// List state, one cursor per view
	selectedRow [2]int
	offset      [2]int

	// Search bar
	searchInput  textinput.Model
	searchActive bool
	field        search.Field

	// Overlays
	modal    Modal
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	log := opts.Logger
	if log == nil {
		log = logging.Component(nil, "ui")
	}

	input := textinput.New()
	input.Placeholder = "Search by title"
	input.Prompt = ""
	input.CharLimit = searchCharLimit

	m := Model{
		ctx:         ctx,
		catalog:     opts.Catalog,
		store:       opts.Store,
		prefsPath:   opts.PrefsPath,
		log:         log,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewResults,
		searchInput: input,
	}
	m.refresh()
	m.field = m.snapshot.Query.Field
	m.searchInput.SetValue(m.snapshot.Query.Text)
	m.updatePlaceholder()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textinput.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(m.width-searchInputReserve, 10)
		m.ready = true
		m.clampSelection()
		return m, nil

	case searchResultMsg:
		if m.store != nil {
			m.store.SearchCompleted(search.Response(msg))
		}
		m.refresh()
		if m.currentView == ViewResults {
			m.selectedRow[ViewResults] = 0
			m.offset[ViewResults] = 0
		}
		return m, nil

	case clearFavoritesMsg:
		if m.store != nil {
			m.runIntent("clear favorites", m.store.FavoritesCleared)
			m.clampSelection()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
	}

	if m.searchActive {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.currentView == ViewResults {
			m.currentView = ViewFavorites
		} else {
			m.currentView = ViewResults
		}
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.FocusSearch):
		m.currentView = ViewResults
		m.searchActive = true
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		if m.store != nil {
			m.store.SearchCleared()
		}
		m.searchInput.SetValue("")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		if m.store != nil {
			m.store.SortChanged(m.snapshot.Sort.Next())
		}
		m.refresh()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ClearFavorites):
		if len(m.snapshot.Favorites) == 0 {
			return m, nil
		}
		m.modal = confirmModal{prompt: "Remove all favorites?", onYes: clearFavoritesMsg{}}
		return m, nil

	case key.Matches(msg, m.keys.ToggleFavorite):
		if r, ok := m.selectedRecord(); ok {
			m.toggleFavorite(r)
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if r, ok := m.selectedRecord(); ok && m.store != nil {
			m.store.RecordSelected(r)
			m.refresh()
			m.modal = newDetailModal(r, m.snapshot.IsFavorite(r), m.theme, m.width, m.height)
		}
		return m, nil
	}

	return m.handleListKey(msg)
}

// handleModalKey routes keys to the open modal. The favorite toggle is
// handled here so the detail view reflects the store.
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if detail, ok := m.modal.(detailModal); ok && key.Matches(msg, m.keys.ToggleFavorite) {
		m.toggleFavorite(detail.record)
		detail.favorite = m.snapshot.IsFavorite(detail.record)
		m.modal = detail
		return m, nil
	}

	next, cmd, closed := m.modal.Update(msg, m.keys)
	if !closed {
		m.modal = next
		return m, cmd
	}
	if _, ok := m.modal.(detailModal); ok && m.store != nil {
		m.store.SelectionCleared()
		m.refresh()
	}
	m.modal = nil
	return m, cmd
}

// handleSearchKey handles keyboard input while the search bar is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitSearch()

	case key.Matches(msg, m.keys.CycleField):
		m.field = m.field.Next()
		m.updatePlaceholder()
		if m.store != nil {
			m.store.QueryChanged(m.field, m.searchInput.Value())
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.searchActive = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.store != nil {
		m.store.QueryChanged(m.field, m.searchInput.Value())
	}
	m.refresh()
	return m, cmd
}

// submitSearch issues a search for the current input and returns the command
// that runs it. Validation failures are reported without a command.
func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	m.store.QueryChanged(m.field, m.searchInput.Value())
	m.refresh()

	req, err := m.store.SearchRequested(m.snapshot.Query.Filters())
	m.refresh()
	if err != nil {
		return m, nil
	}
	m.searchActive = false
	m.searchInput.Blur()
	return m, searchCmd(m.ctx, m.catalog, req)
}

func (m *Model) toggleFavorite(r book.Record) {
	if m.store == nil {
		return
	}
	m.runIntent("toggle favorite", func() error { return m.store.FavoriteToggled(r) })
	m.clampSelection()
}

// runIntent applies a store intent and refreshes the snapshot. Errors are
// surfaced through Snapshot.Warning; here they are only logged.
func (m *Model) runIntent(name string, intent func() error) {
	if err := intent(); err != nil {
		m.log.WithError(err).Warn(name)
	}
	m.refresh()
}

func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()
}

func (m *Model) updatePlaceholder() {
	m.searchInput.Placeholder = "Search by " + m.field.String()
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Sort: m.snapshot.Sort.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// Messages

type searchResultMsg search.Response

type clearFavoritesMsg struct{}

// Commands

func searchCmd(ctx context.Context, client catalog.Searcher, req search.Request) tea.Cmd {
	return func() tea.Msg {
		ctx := logging.ContextWithID(ctx, req.ID)
		return searchResultMsg(search.Execute(ctx, client, req))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}

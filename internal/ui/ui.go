package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/columns"
	"taskboard/internal/config"
	"taskboard/internal/details"
	"taskboard/internal/filter"
	"taskboard/internal/store"
	"taskboard/internal/table"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeFilters
	modeColumns
)

// filterControls are the select controls of the filter bar, in tab order.
var filterControls = []filter.Field{filter.FieldStatus, filter.FieldPriority, filter.FieldAssignee}

type snapshotMsg store.Snapshot

type fetchDoneMsg struct{ err error }

type Model struct {
	ctx        context.Context
	store      *store.Store
	cfg        config.Config
	configPath string
	logger     *slog.Logger
	keys       keyMap
	help       help.Model

	updates <-chan store.Snapshot

	route   Route
	mode    mode
	snap    store.Snapshot
	filters filter.State
	options filter.Options
	engine  table.Engine
	columns columns.Model
	details details.Panel
	search  textinput.Model
	spinner spinner.Model

	colCursor    int // header column under the sort cursor
	filterIndex  int // active filter bar control
	editorCursor int // row of the column editor

	width  int
	height int
	status string
}

type Options struct {
	Route      string
	ConfigPath string
	Logger     *slog.Logger
}

func newModel(ctx context.Context, st *store.Store, cfg config.Config, updates <-chan store.Snapshot, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.Placeholder = "Search tasks"
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	cols := columns.New(columns.Defaults())
	cols.Apply(cfg.Columns)

	route := ParseRoute(cfg.DefaultRoute)
	if opts.Route != "" {
		route = ParseRoute(opts.Route)
	}

	m := Model{
		ctx:        ctx,
		store:      st,
		cfg:        cfg,
		configPath: opts.ConfigPath,
		logger:     logger,
		keys:       newKeyMap(cfg.Keys),
		help:       help.New(),
		updates:    updates,
		route:      route,
		engine:     table.NewEngine(cfg.PageSize),
		columns:    cols,
		search:     ti,
		spinner:    sp,
	}
	m.applySnapshot(st.Snapshot())
	return m
}

// Run starts the TUI on top of st and blocks until the user quits.
func Run(ctx context.Context, st *store.Store, cfg config.Config, opts Options) error {
	updates := make(chan store.Snapshot, 16)
	done := make(chan struct{})
	unsubscribe := st.Subscribe(func(s store.Snapshot) {
		select {
		case updates <- s:
		case <-done:
		}
	})
	defer func() {
		unsubscribe()
		close(done)
	}()

	m := newModel(ctx, st, cfg, updates, opts)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForSnapshot(), m.ensureLoaded())
}

func (m Model) waitForSnapshot() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(s)
	}
}

// ensureLoaded is what a page does when it opens: fetch only if nothing has
// been attempted yet.
func (m Model) ensureLoaded() tea.Cmd {
	if m.snap.Status != store.StatusIdle {
		return nil
	}
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		return fetchDoneMsg{err: st.EnsureLoaded(ctx)}
	}
}

func (m Model) refresh() tea.Cmd {
	st, ctx := m.store, m.ctx
	return func() tea.Msg {
		return fetchDoneMsg{err: st.FetchAll(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(10, msg.Width-10)
		m.help.Width = msg.Width
	case snapshotMsg:
		m.applySnapshot(store.Snapshot(msg))
		return m, m.waitForSnapshot()
	case fetchDoneMsg:
		if msg.err != nil {
			m.logger.Warn("fetch failed", "error", msg.err)
		}
		m.applySnapshot(m.store.Snapshot())
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applySnapshot recomputes everything derived from the store state.
func (m *Model) applySnapshot(s store.Snapshot) {
	m.snap = s
	m.options = filter.BuildOptions(s.Items)
	m.recomputeRows()
}

func (m *Model) recomputeRows() {
	m.engine.SetRows(filter.Apply(m.snap.Items, m.filters))
}

// Navigate switches pages. Unknown paths go to the dashboard.
func (m *Model) Navigate(path string) tea.Cmd {
	m.route = ParseRoute(path)
	m.mode = modeList
	m.search.Blur()
	return m.ensureLoaded()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.updateSearchMode(msg)
	case modeFilters:
		return m.updateFilterMode(msg)
	case modeColumns:
		return m.updateColumnMode(msg)
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	switch {
	case key.Matches(msg, m.keys.Dashboard):
		cmd := m.Navigate(RouteDashboard.Path())
		return m, cmd
	case key.Matches(msg, m.keys.Table):
		cmd := m.Navigate(RouteTable.Path())
		return m, cmd
	case key.Matches(msg, m.keys.SwitchTab):
		next := RouteTable
		if m.route == RouteTable {
			next = RouteDashboard
		}
		cmd := m.Navigate(next.Path())
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		if m.snap.Loading() {
			return m, nil
		}
		m.status = "Refreshing…"
		return m, m.refresh()
	}
	if m.route == RouteTable {
		return m.updateListMode(msg)
	}
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	viewport := m.viewportRows()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.engine.Navigate(table.KeyUp, viewport)
	case key.Matches(msg, m.keys.Down):
		m.engine.Navigate(table.KeyDown, viewport)
	case key.Matches(msg, m.keys.Home):
		m.engine.Navigate(table.KeyHome, viewport)
	case key.Matches(msg, m.keys.End):
		m.engine.Navigate(table.KeyEnd, viewport)
	case key.Matches(msg, m.keys.Select):
		if t, ok := m.engine.Focused(); ok {
			m.details.Show(t)
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.details.IsOpen() {
			m.details.Close()
			m.details.Task = nil
		}
	case key.Matches(msg, m.keys.NextPage):
		m.engine.NextPage()
	case key.Matches(msg, m.keys.PrevPage):
		m.engine.PrevPage()
	case key.Matches(msg, m.keys.ColLeft):
		m.colCursor = clampCursor(m.colCursor-1, len(m.columns.Visible()))
	case key.Matches(msg, m.keys.ColRight):
		m.colCursor = clampCursor(m.colCursor+1, len(m.columns.Visible()))
	case key.Matches(msg, m.keys.Sort):
		visible := m.columns.Visible()
		if len(visible) == 0 {
			return m, nil
		}
		col := visible[clampCursor(m.colCursor, len(visible))]
		m.engine.ToggleSort(col.ID)
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.filters.Search)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Filters):
		m.mode = modeFilters
		m.filterIndex = 0
	case key.Matches(msg, m.keys.Reset):
		m.resetFilters()
	case key.Matches(msg, m.keys.Columns):
		m.mode = modeColumns
		m.columns.Begin()
		m.editorCursor = 0
		m.status = ""
	}
	return m, nil
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeList
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.filters.Search {
		m.filters = m.filters.With(filter.FieldSearch, v)
		m.recomputeRows()
	}
	return m, cmd
}

func (m Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select, m.keys.Cancel):
		m.mode = modeList
	case key.Matches(msg, m.keys.SwitchTab, m.keys.Down):
		m.filterIndex = wrapIndex(m.filterIndex+1, len(filterControls))
	case key.Matches(msg, m.keys.PrevTab, m.keys.Up):
		m.filterIndex = wrapIndex(m.filterIndex-1, len(filterControls))
	case key.Matches(msg, m.keys.ColRight):
		m.cycleFilter(1)
	case key.Matches(msg, m.keys.ColLeft):
		m.cycleFilter(-1)
	case key.Matches(msg, m.keys.Reset):
		m.resetFilters()
	}
	return m, nil
}

func (m *Model) cycleFilter(delta int) {
	f := filterControls[wrapIndex(m.filterIndex, len(filterControls))]
	next := filter.Cycle(m.options.For(f), m.filters.Get(f), delta)
	m.filters = m.filters.With(f, next)
	m.recomputeRows()
}

func (m *Model) resetFilters() {
	m.filters = filter.State{}
	m.search.SetValue("")
	m.recomputeRows()
	m.status = "Filters cleared"
}

func (m Model) updateColumnMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	working := m.columns.Working()
	n := len(working)
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.columns.Cancel()
		m.mode = modeList
		m.status = "Column changes discarded"
	case msg.Type == tea.KeyEnter:
		return m.commitColumns()
	case key.Matches(msg, m.keys.MoveUp):
		if m.columns.Reorder(m.editorCursor, m.editorCursor-1) {
			m.editorCursor--
		}
	case key.Matches(msg, m.keys.MoveDown):
		if m.columns.Reorder(m.editorCursor, m.editorCursor+1) {
			m.editorCursor++
		}
	case key.Matches(msg, m.keys.Up):
		m.editorCursor = clampCursor(m.editorCursor-1, n)
	case key.Matches(msg, m.keys.Down):
		m.editorCursor = clampCursor(m.editorCursor+1, n)
	case key.Matches(msg, m.keys.Toggle):
		if n == 0 {
			return m, nil
		}
		col := working[clampCursor(m.editorCursor, n)]
		if !m.columns.ToggleVisibility(col.ID) {
			m.status = "At least one column must stay visible"
		} else {
			m.status = ""
		}
	}
	return m, nil
}

func (m Model) commitColumns() (tea.Model, tea.Cmd) {
	m.columns.Commit()
	m.mode = modeList
	m.colCursor = clampCursor(m.colCursor, len(m.columns.Visible()))
	m.cfg.Columns = m.columns.Layout()
	m.status = "Columns updated"
	if m.configPath == "" {
		return m, nil
	}
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.logger.Error("save column layout", "path", m.configPath, "error", err)
		m.status = fmt.Sprintf("save failed: %v", err)
	}
	return m, nil
}

// viewportRows is the number of table rows that fit on screen.
func (m Model) viewportRows() int {
	if m.height <= 0 {
		return m.engine.PageSize()
	}
	// title, nav, filter bar, chips, header, footer, status, help
	return max(1, m.height-10)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderNav())
	b.WriteString("\n\n")

	if m.route == RouteDashboard {
		b.WriteString(m.renderDashboard())
	} else {
		b.WriteString(m.renderTablePage())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.helpFor()))
	return b.String()
}

func (m Model) renderNav() string {
	var parts []string
	for _, r := range []Route{RouteDashboard, RouteTable} {
		label := r.Title()
		if r == m.route {
			parts = append(parts, navActive.Render(label))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return titleStyle.Render("Task Dashboard") + "  " + strings.Join(parts, "  ")
}

// body renders the shared loading/error/empty states and returns false when
// the page content should be drawn instead.
func (m Model) body(rows int) (string, bool) {
	switch table.ModeFor(m.snap.Loading(), m.snap.Error, rows) {
	case table.ModeLoading:
		return m.spinner.View() + " Loading tasks…", true
	case table.ModeError:
		return errorStyle.Render("Error: "+m.snap.Error) + "\n" +
			mutedStyle.Render("press "+m.cfg.Keys.Refresh+" to retry"), true
	case table.ModeEmpty:
		if m.filters.Active() {
			return mutedStyle.Render("No tasks match the current filters."), true
		}
		return mutedStyle.Render("No tasks found."), true
	}
	return "", false
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/columns"
	"taskboard/internal/config"
	"taskboard/internal/store"
	"taskboard/internal/table"
	"taskboard/internal/task"
)

type stubFetcher struct {
	resp task.Response
	err  error
}

func (s stubFetcher) FetchTasks(ctx context.Context) (task.Response, error) {
	return s.resp, s.err
}

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: "TASK-001", Name: "Write report", Status: task.StatusInProgress, Priority: task.PriorityHigh, DueDate: "2025-04-02", EstimatedHours: 3, Assignee: "Alice"},
		{ID: "TASK-002", Name: "Fix login bug", Status: task.StatusCompleted, Priority: task.PriorityLow, DueDate: "2025-04-01", EstimatedHours: 5, Assignee: "Bob"},
		{ID: "TASK-003", Name: "Plan sprint", Status: task.StatusBlocked, Priority: task.PriorityMedium, DueDate: "2025-04-03", EstimatedHours: 12, Assignee: "Alice"},
	}
}

func newTestModel(t *testing.T, f store.Fetcher, route string) Model {
	t.Helper()
	ctx := context.Background()
	st := store.New(f)
	_ = st.FetchAll(ctx)
	cfg := config.Default()
	return newModel(ctx, st, cfg, nil, Options{Route: route})
}

func loadedModel(t *testing.T, route string) Model {
	t.Helper()
	tasks := sampleTasks()
	return newTestModel(t, stubFetcher{resp: task.Response{Status: "success", TotalTasks: len(tasks), Tasks: tasks}}, route)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func TestParseRoute(t *testing.T) {
	cases := map[string]Route{
		"/table":     RouteTable,
		"/table/":    RouteTable,
		"/dashboard": RouteDashboard,
		"/":          RouteDashboard,
		"":           RouteDashboard,
		"/nowhere":   RouteDashboard,
	}
	for in, want := range cases {
		if got := ParseRoute(in); got != want {
			t.Fatalf("ParseRoute(%q)=%v want %v", in, got, want)
		}
	}
}

func TestNavigateUnknownGoesToDashboard(t *testing.T) {
	m := loadedModel(t, "/table")
	if m.route != RouteTable {
		t.Fatalf("route=%v", m.route)
	}
	m.Navigate("/missing")
	if m.route != RouteDashboard {
		t.Fatalf("route=%v", m.route)
	}
}

func TestSwitchRoutesWithKeys(t *testing.T) {
	m := loadedModel(t, "/dashboard")
	m = press(t, m, runes("2"))
	if m.route != RouteTable {
		t.Fatalf("expected table route")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.route != RouteDashboard {
		t.Fatalf("expected dashboard route")
	}
}

func TestDashboardView(t *testing.T) {
	m := loadedModel(t, "/dashboard")
	out := m.View()
	for _, want := range []string{"Total Tasks", "Completed", "Blocked", "Tasks due per day", "Estimation hours distribution"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestTableDefaultSortAndFooter(t *testing.T) {
	m := loadedModel(t, "/table")
	rows := m.engine.Rows()
	if rows[0].ID != "TASK-002" || rows[2].ID != "TASK-003" {
		t.Fatalf("expected due date order, got %s %s %s", rows[0].ID, rows[1].ID, rows[2].ID)
	}
	if out := m.View(); !strings.Contains(out, "Page 1 of 1") {
		t.Fatalf("missing footer:\n%s", out)
	}
}

func TestSortKeyTogglesHeaderColumn(t *testing.T) {
	m := loadedModel(t, "/table")
	m = press(t, m, runes("s"))
	if got := m.engine.Sort(); got.Key != task.FieldID || got.Direction != table.Asc {
		t.Fatalf("sort=%+v", got)
	}
	m = press(t, m, runes("s"))
	if got := m.engine.Sort(); got.Direction != table.Desc {
		t.Fatalf("sort=%+v", got)
	}
	if m.engine.Rows()[0].ID != "TASK-003" {
		t.Fatalf("desc first=%s", m.engine.Rows()[0].ID)
	}

	m = press(t, m, runes("l"), runes("s"))
	if got := m.engine.Sort(); got.Key != task.FieldName || got.Direction != table.Asc {
		t.Fatalf("sort=%+v", got)
	}
}

func TestSearchFiltersRows(t *testing.T) {
	m := loadedModel(t, "/table")
	m = press(t, m, runes("/"), runes("LOGIN"))
	if m.mode != modeSearch {
		t.Fatalf("expected search mode")
	}
	if m.engine.Len() != 1 || m.engine.Rows()[0].ID != "TASK-002" {
		t.Fatalf("rows=%d", m.engine.Len())
	}
	m = press(t, m, enter)
	if m.mode != modeList || m.filters.Search != "LOGIN" {
		t.Fatalf("mode=%v search=%q", m.mode, m.filters.Search)
	}

	m = press(t, m, runes("x"))
	if m.engine.Len() != 3 || m.filters.Active() {
		t.Fatalf("reset failed: rows=%d", m.engine.Len())
	}
}

func TestFilterBarCyclesOptions(t *testing.T) {
	m := loadedModel(t, "/table")
	m = press(t, m, runes("f"), right)
	// statuses sorted: blocked, completed, in_progress
	if m.filters.Status != "blocked" {
		t.Fatalf("status=%q", m.filters.Status)
	}
	if m.engine.Len() != 1 {
		t.Fatalf("rows=%d", m.engine.Len())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, right)
	if m.filters.Assignee != "Alice" {
		t.Fatalf("assignee=%q", m.filters.Assignee)
	}
	m = press(t, m, esc)
	if m.mode != modeList {
		t.Fatalf("expected list mode")
	}
	if out := m.View(); !strings.Contains(out, "Status: Blocked") || !strings.Contains(out, "Assignee: Alice") {
		t.Fatalf("missing chips:\n%s", out)
	}
}

func TestEmptyFilteredView(t *testing.T) {
	m := loadedModel(t, "/table")
	m = press(t, m, runes("/"), runes("zzz"), enter)
	if out := m.View(); !strings.Contains(out, "No tasks match") {
		t.Fatalf("expected empty state:\n%s", out)
	}
}

func TestDetailsOpenAndClose(t *testing.T) {
	m := loadedModel(t, "/table")
	m = press(t, m, enter)
	if m.details.IsOpen() {
		t.Fatalf("nothing focused, panel should stay closed")
	}
	m = press(t, m, runes("j"), enter)
	if !m.details.IsOpen() || m.details.Task.ID != "TASK-002" {
		t.Fatalf("details=%+v", m.details)
	}
	if out := m.View(); !strings.Contains(out, "Fix login bug") || !strings.Contains(out, "Completed") {
		t.Fatalf("panel not rendered:\n%s", out)
	}
	m = press(t, m, esc)
	if m.details.IsOpen() {
		t.Fatalf("expected closed panel")
	}
	if m.details.Task != nil {
		t.Fatalf("closing the panel should clear the selected task, got %s", m.details.Task.ID)
	}
	if out := m.View(); strings.Contains(out, "●") {
		t.Fatalf("selection marker should be gone:\n%s", out)
	}
}

func TestPagination(t *testing.T) {
	var tasks []task.Task
	for i := 0; i < 25; i++ {
		tasks = append(tasks, task.Task{ID: string(rune('a' + i)), Name: "t", DueDate: "2025-04-01"})
	}
	m := newTestModel(t, stubFetcher{resp: task.Response{Tasks: tasks, TotalTasks: 25}}, "/table")
	m = press(t, m, runes("n"), runes("n"), runes("n"))
	if m.engine.Page() != 3 {
		t.Fatalf("page=%d", m.engine.Page())
	}
	if got := len(m.engine.PageRows()); got != 5 {
		t.Fatalf("last page rows=%d", got)
	}
	if out := m.View(); !strings.Contains(out, "Page 3 of 3") {
		t.Fatalf("footer should follow the engine page:\n%s", out)
	}
	m = press(t, m, runes("p"))
	if m.engine.Page() != 2 {
		t.Fatalf("page=%d", m.engine.Page())
	}
}

func TestColumnEditorCommitPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	m := loadedModel(t, "/table")
	m.configPath = path

	m = press(t, m, runes("c"), space)
	if len(m.columns.Visible()) != 7 {
		t.Fatalf("working edits must not leak before commit")
	}
	m = press(t, m, runes("J"), enter)
	if m.mode != modeList {
		t.Fatalf("expected list mode")
	}
	visible := m.columns.Visible()
	if len(visible) != 6 || visible[0].ID != task.FieldName {
		t.Fatalf("visible=%+v", visible)
	}
	all := m.columns.All()
	if all[0].ID != task.FieldName || all[1].ID != task.FieldID {
		t.Fatalf("order=%s,%s", all[0].ID, all[1].ID)
	}

	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Columns) != 8 || cfg.Columns[1].ID != task.FieldID || cfg.Columns[1].Visible {
		t.Fatalf("persisted=%+v", cfg.Columns)
	}
}

func TestColumnEditorCancelDiscards(t *testing.T) {
	m := loadedModel(t, "/table")
	m = press(t, m, runes("c"), space, esc)
	if len(m.columns.Visible()) != 7 {
		t.Fatalf("cancel should discard edits")
	}
}

func TestColumnEditorKeepsLastVisible(t *testing.T) {
	m := loadedModel(t, "/table")
	layout := []columns.Layout{{ID: task.FieldName, Visible: true}}
	for _, c := range columns.Defaults() {
		if c.ID != task.FieldName {
			layout = append(layout, columns.Layout{ID: c.ID, Visible: false})
		}
	}
	m.columns.Apply(layout)

	m = press(t, m, runes("c"))
	if out := m.View(); !strings.Contains(out, "last visible column cannot be hidden") {
		t.Fatalf("missing hint:\n%s", out)
	}
	m = press(t, m, space)
	if !strings.Contains(m.status, "At least one column") {
		t.Fatalf("status=%q", m.status)
	}
	m = press(t, m, enter)
	if len(m.columns.Visible()) != 1 {
		t.Fatalf("visible=%d", len(m.columns.Visible()))
	}
}

func TestErrorAndLoadingStates(t *testing.T) {
	m := newTestModel(t, stubFetcher{err: errors.New("boom")}, "/table")
	if out := m.View(); !strings.Contains(out, "Error: boom") {
		t.Fatalf("expected error view:\n%s", out)
	}

	m.applySnapshot(store.Snapshot{Status: store.StatusLoading})
	if out := m.View(); !strings.Contains(out, "Loading tasks") {
		t.Fatalf("expected loading view:\n%s", out)
	}
}

func TestEnsureLoadedOnlyWhenIdle(t *testing.T) {
	ctx := context.Background()
	tasks := sampleTasks()
	st := store.New(stubFetcher{resp: task.Response{Tasks: tasks, TotalTasks: len(tasks)}})
	m := newModel(ctx, st, config.Default(), nil, Options{})
	cmd := m.ensureLoaded()
	if cmd == nil {
		t.Fatalf("idle store should load")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.snap.Status != store.StatusSucceeded || len(m.snap.Items) != 3 {
		t.Fatalf("snap=%+v", m.snap)
	}
	if m.ensureLoaded() != nil {
		t.Fatalf("loaded store should not refetch")
	}
}

func TestWrapIndex(t *testing.T) {
	if wrapIndex(-1, 3) != 2 || wrapIndex(3, 3) != 0 || wrapIndex(5, 0) != 0 {
		t.Fatalf("wrapIndex")
	}
}

func TestFilterBarUsesConfiguredKeys(t *testing.T) {
	ctx := context.Background()
	tasks := sampleTasks()
	st := store.New(stubFetcher{resp: task.Response{Tasks: tasks, TotalTasks: len(tasks)}})
	_ = st.FetchAll(ctx)
	cfg := config.Default()
	cfg.Keys.Down = "ctrl+n"
	cfg.Keys.ColumnLeft = "["
	cfg.Keys.ColumnRight = "]"
	m := newModel(ctx, st, cfg, nil, Options{Route: "/table"})

	m = press(t, m, runes("f"), runes("l"))
	if m.filters.Status != "" {
		t.Fatalf("unbound key changed the filter: %q", m.filters.Status)
	}
	m = press(t, m, runes("]"))
	if m.filters.Status != "blocked" {
		t.Fatalf("status=%q", m.filters.Status)
	}
	m = press(t, m, runes("["))
	if m.filters.Status != "" {
		t.Fatalf("status=%q", m.filters.Status)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.filterIndex != 1 {
		t.Fatalf("filterIndex=%d", m.filterIndex)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.filterIndex != 0 {
		t.Fatalf("filterIndex=%d", m.filterIndex)
	}
	m = press(t, m, enter)
	if m.mode != modeList {
		t.Fatalf("expected list mode")
	}
}

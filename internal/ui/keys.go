package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"taskboard/internal/config"
)

type keyMap struct {
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	Select    key.Binding
	Cancel    key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	ColLeft   key.Binding
	ColRight  key.Binding
	Sort      key.Binding
	Search    key.Binding
	Filters   key.Binding
	Reset     key.Binding
	Columns   key.Binding
	Refresh   key.Binding
	Dashboard key.Binding
	Table     key.Binding
	SwitchTab key.Binding
	PrevTab   key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Toggle    key.Binding
}

// newKeyMap binds the configured keys; arrows and paging keys always work too.
func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Up:        key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp("↑/"+k.Up, "up")),
		Down:      key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp("↓/"+k.Down, "down")),
		Home:      key.NewBinding(key.WithKeys(k.Home, "home"), key.WithHelp(k.Home, "first row")),
		End:       key.NewBinding(key.WithKeys(k.End, "end"), key.WithHelp(k.End, "last row")),
		Select:    key.NewBinding(key.WithKeys(k.Select, " "), key.WithHelp(k.Select, "details")),
		Cancel:    key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "close")),
		NextPage:  key.NewBinding(key.WithKeys(k.NextPage, "pgdown"), key.WithHelp(k.NextPage, "next page")),
		PrevPage:  key.NewBinding(key.WithKeys(k.PrevPage, "pgup"), key.WithHelp(k.PrevPage, "prev page")),
		ColLeft:   key.NewBinding(key.WithKeys(k.ColumnLeft, "left"), key.WithHelp("←/"+k.ColumnLeft, "column")),
		ColRight:  key.NewBinding(key.WithKeys(k.ColumnRight, "right"), key.WithHelp("→/"+k.ColumnRight, "column")),
		Sort:      key.NewBinding(key.WithKeys(k.Sort), key.WithHelp(k.Sort, "sort")),
		Search:    key.NewBinding(key.WithKeys(k.Search), key.WithHelp(k.Search, "search")),
		Filters:   key.NewBinding(key.WithKeys(k.Filters), key.WithHelp(k.Filters, "filters")),
		Reset:     key.NewBinding(key.WithKeys(k.Reset), key.WithHelp(k.Reset, "reset filters")),
		Columns:   key.NewBinding(key.WithKeys(k.Columns), key.WithHelp(k.Columns, "columns")),
		Refresh:   key.NewBinding(key.WithKeys(k.Refresh), key.WithHelp(k.Refresh, "refresh")),
		Dashboard: key.NewBinding(key.WithKeys(k.Dashboard, "1"), key.WithHelp(k.Dashboard, "dashboard")),
		Table:     key.NewBinding(key.WithKeys(k.Table, "2"), key.WithHelp(k.Table, "table")),
		SwitchTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch page")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		MoveUp:    key.NewBinding(key.WithKeys(k.MoveUp, "shift+up"), key.WithHelp(k.MoveUp, "move up")),
		MoveDown:  key.NewBinding(key.WithKeys(k.MoveDown, "shift+down"), key.WithHelp(k.MoveDown, "move down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "show/hide")),
	}
}

type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (m Model) helpFor() helpKeys {
	k := m.keys
	switch {
	case m.mode == modeColumns:
		return helpKeys{k.Up, k.Down, k.Toggle, k.MoveUp, k.MoveDown, k.Select, k.Cancel}
	case m.mode == modeSearch:
		return helpKeys{key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "done"))}
	case m.mode == modeFilters:
		next, prev, change := k.SwitchTab, k.PrevTab, k.ColRight
		next.SetHelp("tab/"+m.cfg.Keys.Down, "next control")
		prev.SetHelp("shift+tab/"+m.cfg.Keys.Up, "previous control")
		change.SetHelp(m.cfg.Keys.ColumnLeft+"/"+m.cfg.Keys.ColumnRight, "change")
		done := k.Cancel
		done.SetHelp(m.cfg.Keys.Select+"/"+m.cfg.Keys.Cancel, "done")
		return helpKeys{next, prev, change, k.Reset, done}
	case m.route == RouteDashboard:
		return helpKeys{k.Table, k.SwitchTab, k.Refresh, k.Quit}
	default:
		return helpKeys{k.Up, k.Down, k.Select, k.ColLeft, k.ColRight, k.Sort, k.NextPage, k.PrevPage,
			k.Search, k.Filters, k.Reset, k.Columns, k.Refresh, k.Dashboard, k.Quit}
	}
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tanpawarit/Agentic-Enrichment-Grid/agent/grid"
)

const (
	minColumnWidth = 12
	maxColumnWidth = 34
)

// Trigger starts enrichment of every eligible cell and reports how many were
// scheduled.
type Trigger interface {
	TriggerEnrichment(ctx context.Context) int
}

// inputMode is what the text prompt, when open, is collecting.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeEditCell
	modeAddTarget
	modeAddField
	modeRenameLabel
)

func (m inputMode) prompt() string {
	switch m {
	case modeEditCell:
		return "Value: "
	case modeAddTarget:
		return "New row: "
	case modeAddField:
		return "New column: "
	case modeRenameLabel:
		return "Row label: "
	default:
		return ""
	}
}

type gridEventMsg grid.Event

// AppOption customizes App construction.
type AppOption func(*App)

func WithContext(ctx context.Context) AppOption {
	return func(a *App) {
		if ctx != nil {
			a.ctx = ctx
		}
	}
}

// App is the interactive grid editor.
type App struct {
	ctx     context.Context
	grid    *grid.Grid
	trigger Trigger
	sub     grid.Subscription

	table  table.Model
	input  textinput.Model
	mode   inputMode
	column int
	// editing is the cell an open modeEditCell prompt writes to.
	editing grid.Key

	snap      grid.Snapshot
	statusMsg string
	err       error

	width  int
	height int
}

func NewApp(g *grid.Grid, trigger Trigger, opts ...AppOption) (*App, error) {
	if g == nil {
		return nil, errors.New("grid is required")
	}
	if trigger == nil {
		return nil, errors.New("enrichment trigger is required")
	}

	input := textinput.New()
	input.CharLimit = 256

	a := &App{
		ctx:     context.Background(),
		grid:    g,
		trigger: trigger,
		sub:     g.Subscribe(),
		table:   table.New(table.WithFocused(true), table.WithHeight(12)),
		input:   input,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.refresh()
	return a, nil
}

// Close releases the grid subscription.
func (a *App) Close() {
	a.sub.Close()
}

func (a *App) Init() tea.Cmd {
	return a.waitForEvent()
}

func (a *App) waitForEvent() tea.Cmd {
	events := a.sub.Events
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return nil
		}
		return gridEventMsg(evt)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.table.SetHeight(max(3, msg.Height-10))
		return a, nil

	case gridEventMsg:
		a.refresh()
		return a, a.waitForEvent()

	case tea.KeyMsg:
		if a.mode != modeBrowse {
			return a.updateInput(msg)
		}
		return a.updateBrowse(msg)
	}

	return a, nil
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		a.Close()
		return a, tea.Quit
	case "left", "h":
		if a.column > 0 {
			a.column--
			a.refresh()
		}
		return a, nil
	case "right", "l":
		if a.column < len(a.snap.Fields)-1 {
			a.column++
			a.refresh()
		}
		return a, nil
	case "e":
		n := a.trigger.TriggerEnrichment(a.ctx)
		if n == 0 {
			a.setStatus("Nothing to enrich")
		} else {
			a.setStatus(fmt.Sprintf("Enriching %d cell(s)", n))
		}
		a.refresh()
		return a, nil
	case "enter":
		key, ok := a.selectedKey()
		if !ok {
			a.setError(errors.New("select a cell first"))
			return a, nil
		}
		a.editing = key
		c, _ := a.grid.Cell(key)
		return a, a.openInput(modeEditCell, c.Value)
	case "t":
		return a, a.openInput(modeAddTarget, "")
	case "f":
		return a, a.openInput(modeAddField, "")
	case "L":
		return a, a.openInput(modeRenameLabel, a.snap.Label)
	case "D":
		if target, ok := a.selectedTarget(); ok {
			a.apply(a.grid.RemoveTarget(target), "Removed row "+target)
		}
		return a, nil
	case "X":
		if field, ok := a.selectedField(); ok {
			a.apply(a.grid.RemoveField(field), "Removed column "+field)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a *App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.Close()
		return a, tea.Quit
	case "esc":
		a.closeInput()
		a.setStatus("Cancelled")
		return a, nil
	case "enter":
		mode, value := a.mode, a.input.Value()
		a.closeInput()
		a.commitInput(mode, value)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) commitInput(mode inputMode, value string) {
	switch mode {
	case modeEditCell:
		a.apply(a.grid.EditCell(a.editing, value), "Updated "+a.editing.String())
	case modeAddTarget:
		a.apply(a.grid.AddTarget(value), "Added row "+strings.TrimSpace(value))
	case modeAddField:
		a.apply(a.grid.AddField(value), "Added column "+strings.TrimSpace(value))
	case modeRenameLabel:
		a.grid.SetLabel(value)
		a.apply(nil, "Renamed row label")
	}
}

func (a *App) openInput(mode inputMode, value string) tea.Cmd {
	a.mode = mode
	a.input.Prompt = mode.prompt()
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.table.Blur()
	return a.input.Focus()
}

func (a *App) closeInput() {
	a.mode = modeBrowse
	a.input.Blur()
	a.input.Reset()
	a.table.Focus()
}

func (a *App) apply(err error, ok string) {
	if err != nil {
		a.setError(err)
	} else {
		a.setStatus(ok)
	}
	a.refresh()
}

func (a *App) setStatus(msg string) {
	a.statusMsg = msg
	a.err = nil
}

func (a *App) setError(err error) {
	a.statusMsg = ""
	a.err = err
}

func (a *App) selectedTarget() (string, bool) {
	idx := a.table.Cursor()
	if idx < 0 || idx >= len(a.snap.Targets) {
		return "", false
	}
	return a.snap.Targets[idx], true
}

func (a *App) selectedField() (string, bool) {
	if a.column < 0 || a.column >= len(a.snap.Fields) {
		return "", false
	}
	return a.snap.Fields[a.column], true
}

func (a *App) selectedKey() (grid.Key, bool) {
	target, ok := a.selectedTarget()
	if !ok {
		return grid.Key{}, false
	}
	field, ok := a.selectedField()
	if !ok {
		return grid.Key{}, false
	}
	return grid.Key{Target: target, Field: field}, true
}

// refresh rebuilds the table from a fresh snapshot.
func (a *App) refresh() {
	a.snap = a.grid.Snapshot()
	if a.column >= len(a.snap.Fields) {
		a.column = max(0, len(a.snap.Fields)-1)
	}

	rows := snapshotRows(a.snap)
	columns := make([]table.Column, 0, len(a.snap.Fields)+1)
	columns = append(columns, table.Column{Title: a.snap.Label, Width: columnWidth(a.snap.Label, rows, 0)})
	for i, field := range a.snap.Fields {
		title := field
		if i == a.column {
			title = "▸ " + field
		}
		columns = append(columns, table.Column{Title: title, Width: columnWidth(title, rows, i+1)})
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	// Rows must never be wider than the columns while either is swapped.
	a.table.SetRows(nil)
	a.table.SetColumns(columns)
	a.table.SetRows(tableRows)
	if cursor := a.table.Cursor(); cursor >= len(tableRows) {
		a.table.SetCursor(max(0, len(tableRows)-1))
	}
}

func columnWidth(title string, rows [][]string, col int) int {
	width := lipgloss.Width(title)
	for _, row := range rows {
		if col < len(row) {
			width = max(width, lipgloss.Width(row[col]))
		}
	}
	return min(max(width, minColumnWidth), maxColumnWidth)
}

package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/stratusctl/stratus/pkg/types"
)

// ErrSelectionCancelled reports that the user left a picker without
// choosing anything.
var ErrSelectionCancelled = errors.New("selection cancelled")

const (
	pickerHeight   = 10
	pickerMinWidth = 64
	pickerMaxWidth = 110
)

// pickCol describes one column of a picker list.
type pickCol struct {
	title string
	width int
}

// pickRow is one selectable entry. filter is the lowercased haystack
// the search matches against; marker, when set, is shown in the cursor
// gutter for rows that are not under the cursor.
type pickRow struct {
	cells  []cell
	filter string
	marker string
}

// picker is the bubbletea model behind the interactive selectors: a
// search input over a scrolling, filterable list.
type picker struct {
	title   string
	cols    []pickCol
	rows    []pickRow
	view    []int // indexes into rows matching the current query
	query   string
	cursor  int
	offset  int
	width   int
	choice  int // selected rows index, -1 until chosen
	aborted bool
}

func newPicker(title string, cols []pickCol, rows []pickRow) picker {
	p := picker{
		title:  title,
		cols:   cols,
		rows:   rows,
		width:  pickerMinWidth,
		choice: -1,
	}
	p.refilter()
	return p
}

// Init implements tea.Model
func (p picker) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = clampPickerWidth(msg.Width - 2)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.aborted = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.view) > 0 {
				p.choice = p.view[p.cursor]
				return p, tea.Quit
			}

		case tea.KeyUp:
			p.move(-1)

		case tea.KeyDown:
			p.move(1)

		case tea.KeyBackspace:
			if p.query != "" {
				p.query = p.query[:len(p.query)-1]
				p.refilter()
			}

		case tea.KeyRunes, tea.KeySpace:
			p.query += string(msg.Runes)
			p.refilter()
		}
	}

	return p, nil
}

// move shifts the cursor by delta and keeps the visible window around it.
func (p *picker) move(delta int) {
	next := p.cursor + delta
	if next < 0 || next >= len(p.view) {
		return
	}
	p.cursor = next
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerHeight {
		p.offset = p.cursor - pickerHeight + 1
	}
}

// refilter rebuilds the visible set for the current query and resets
// the cursor to the top of it.
func (p *picker) refilter() {
	q := strings.ToLower(p.query)
	p.view = p.view[:0]
	for i, row := range p.rows {
		if q == "" || strings.Contains(row.filter, q) {
			p.view = append(p.view, i)
		}
	}
	p.cursor = 0
	p.offset = 0
}

// View implements tea.Model
func (p picker) View() string {
	if p.choice >= 0 || p.aborted {
		return ""
	}

	var sb strings.Builder
	w := p.width

	line := func(content string) {
		sb.WriteString(BorderStyle.Render(lineV))
		sb.WriteString(content)
		sb.WriteString(BorderStyle.Render(lineV))
		sb.WriteString("\n")
	}
	rule := func(left, right string) {
		sb.WriteString(BorderStyle.Render(left))
		sb.WriteString(BorderStyle.Render(strings.Repeat(lineH, w)))
		sb.WriteString(BorderStyle.Render(right))
		sb.WriteString("\n")
	}

	rule(cornerTL, cornerTR)
	line(HeaderStyle.Render(padToWidth(" "+p.title, w)))
	rule(teeL, teeR)
	line(NameStyle.Render(padToWidth(" > "+p.query, w)))
	line(p.headerRow())

	end := p.offset + pickerHeight
	if end > len(p.view) {
		end = len(p.view)
	}
	for i := p.offset; i < end; i++ {
		line(p.listRow(i))
	}
	if len(p.view) == 0 {
		line(MutedStyle.Render(padToWidth("   no matches", w)))
	}
	for i := end - p.offset; i < pickerHeight; i++ {
		if i == 0 && len(p.view) == 0 {
			continue
		}
		line(strings.Repeat(" ", w))
	}

	rule(cornerBL, cornerBR)
	sb.WriteString(p.statusBar())

	return sb.String()
}

// headerRow renders the column titles above the list entries.
func (p picker) headerRow() string {
	var line strings.Builder
	line.WriteString("   ")
	used := 3
	for _, c := range p.cols {
		line.WriteString(HintStyle.Render(padRight(c.title, c.width)))
		line.WriteString("  ")
		used += c.width + 2
	}
	return padStyledTail(line.String(), used, p.width)
}

// listRow renders the view entry at position i with its gutter marker.
func (p picker) listRow(i int) string {
	row := p.rows[p.view[i]]

	gutter := "   "
	if row.marker != "" {
		gutter = " " + RunningStyle.Render(row.marker) + " "
	}
	if i == p.cursor {
		gutter = PromptStyle.Render(" > ")
	}

	var line strings.Builder
	line.WriteString(gutter)
	used := 3
	for j, c := range row.cells {
		line.WriteString(c.style.Render(padRight(c.text, p.cols[j].width)))
		line.WriteString("  ")
		used += p.cols[j].width + 2
	}
	return padStyledTail(line.String(), used, p.width)
}

// statusBar is the match counter and key hints under the box.
func (p picker) statusBar() string {
	count := fmt.Sprintf("  %d/%d", len(p.view), len(p.rows))
	hints := "[enter select]  [esc cancel]  [type to search]"
	gap := p.width + 2 - runewidth.StringWidth(count) - runewidth.StringWidth(hints)
	if gap < 1 {
		gap = 1
	}
	return MutedStyle.Render(count) + strings.Repeat(" ", gap) + HintStyle.Render(hints) + "\n"
}

// padStyledTail pads a line containing styled text out to total width,
// given the display width already used by its plain content.
func padStyledTail(s string, used, total int) string {
	if used < total {
		return s + strings.Repeat(" ", total-used)
	}
	return s
}

func clampPickerWidth(w int) int {
	if w < pickerMinWidth {
		return pickerMinWidth
	}
	if w > pickerMaxWidth {
		return pickerMaxWidth
	}
	return w
}

// runPicker drives the model to completion and reports the chosen
// index into rows.
func runPicker(title string, cols []pickCol, rows []pickRow) (int, error) {
	final, err := tea.NewProgram(newPicker(title, cols, rows)).Run()
	if err != nil {
		return 0, fmt.Errorf("running selector: %w", err)
	}
	p, ok := final.(picker)
	if !ok || p.aborted || p.choice < 0 {
		return 0, ErrSelectionCancelled
	}
	return p.choice, nil
}

// SelectInstance opens a searchable picker over instances and returns
// the chosen one. The error is ErrSelectionCancelled when the user
// backs out.
func SelectInstance(instances []types.Instance) (*types.Instance, error) {
	if len(instances) == 0 {
		return nil, errors.New("no instances to select from")
	}

	cols := []pickCol{
		{title: "ID", width: 21},
		{title: "State", width: 12},
		{title: "Private IP", width: 15},
		{title: "Name", width: 24},
	}
	rows := make([]pickRow, len(instances))
	for i, inst := range instances {
		rows[i] = pickRow{
			cells: []cell{
				{inst.ID, IDStyle},
				{stateLabel(inst.State), stateStyle(inst.State)},
				{formatOptional(inst.PrivateIP), IPStyle},
				{inst.Name, NameStyle},
			},
			filter: strings.ToLower(inst.ID + " " + inst.Name + " " + inst.PrivateIP + " " + inst.PublicIP),
		}
	}

	idx, err := runPicker("Select an instance", cols, rows)
	if err != nil {
		return nil, err
	}
	return &instances[idx], nil
}

// SelectProfile opens a searchable picker over AWS profiles with the
// active one marked.
func SelectProfile(profiles []types.AWSProfile, active string) (*types.AWSProfile, error) {
	if len(profiles) == 0 {
		return nil, errors.New("no profiles to select from")
	}

	cols := []pickCol{
		{title: "Name", width: 28},
		{title: "Region", width: 18},
		{title: "Source", width: 12},
	}
	rows := make([]pickRow, len(profiles))
	for i, p := range profiles {
		nameStyle := NameStyle
		marker := ""
		if p.Name == active {
			nameStyle = RunningStyle
			marker = "●"
		}
		rows[i] = pickRow{
			cells: []cell{
				{p.Name, nameStyle},
				{formatOptional(p.Region), MutedStyle},
				{p.Source, HintStyle},
			},
			filter: strings.ToLower(p.Name + " " + p.Region),
			marker: marker,
		}
	}

	idx, err := runPicker("Select an AWS profile", cols, rows)
	if err != nil {
		return nil, err
	}
	return &profiles[idx], nil
}

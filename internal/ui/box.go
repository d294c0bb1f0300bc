package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// col describes one column of a box table. A zero width sizes the
// column to its widest cell; maxWidth caps that when set.
type col struct {
	title    string
	width    int
	maxWidth int
}

// cell pairs the text of one table cell with the style it renders in.
type cell struct {
	text  string
	style lipgloss.Style
}

// boxTable renders rows inside a single-line box: header row,
// separator, data rows. Every table in the package shares this shape.
type boxTable struct {
	cols []col
	rows [][]cell
}

func newBoxTable(cols ...col) *boxTable {
	return &boxTable{cols: cols}
}

// addRow appends one data row; callers pass one cell per column.
func (t *boxTable) addRow(cells ...cell) {
	t.rows = append(t.rows, cells)
}

// widths resolves the final column widths: fixed ones as declared,
// auto ones from the widest cell with the title as the floor.
func (t *boxTable) widths() []int {
	ws := make([]int, len(t.cols))
	for i, c := range t.cols {
		if c.width > 0 {
			ws[i] = c.width
			continue
		}
		w := runewidth.StringWidth(c.title)
		for _, row := range t.rows {
			if cw := runewidth.StringWidth(row[i].text); cw > w {
				w = cw
			}
		}
		if c.maxWidth > 0 && w > c.maxWidth {
			w = c.maxWidth
		}
		ws[i] = w
	}
	return ws
}

func (t *boxTable) render() string {
	ws := t.widths()
	var sb strings.Builder

	t.rule(&sb, ws, cornerTL, teeT, cornerTR)

	sb.WriteString(BorderStyle.Render(lineV))
	for i, c := range t.cols {
		sb.WriteString(HeaderStyle.Render(" " + padRight(c.title, ws[i]) + " "))
		sb.WriteString(BorderStyle.Render(lineV))
	}
	sb.WriteString("\n")

	t.rule(&sb, ws, teeL, cross, teeR)

	for _, row := range t.rows {
		sb.WriteString(BorderStyle.Render(lineV))
		for i, c := range row {
			sb.WriteString(c.style.Render(" " + padRight(c.text, ws[i]) + " "))
			sb.WriteString(BorderStyle.Render(lineV))
		}
		sb.WriteString("\n")
	}

	t.rule(&sb, ws, cornerBL, teeB, cornerBR)

	return sb.String()
}

// rule writes one horizontal border line using the given corner and
// junction characters.
func (t *boxTable) rule(sb *strings.Builder, ws []int, left, junction, right string) {
	sb.WriteString(BorderStyle.Render(left))
	for i, w := range ws {
		sb.WriteString(BorderStyle.Render(strings.Repeat(lineH, w+2)))
		if i < len(ws)-1 {
			sb.WriteString(BorderStyle.Render(junction))
		}
	}
	sb.WriteString(BorderStyle.Render(right))
	sb.WriteString("\n")
}

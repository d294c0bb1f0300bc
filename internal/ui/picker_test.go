package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratusctl/stratus/pkg/types"
)

func instancePickerFixture() picker {
	instances := []types.Instance{
		{ID: "i-aaa", Name: "web-1", State: types.StateRunning, PrivateIP: "10.0.1.10"},
		{ID: "i-bbb", Name: "web-2", State: types.StateStopped, PrivateIP: "10.0.1.11"},
		{ID: "i-ccc", Name: "batch-1", State: types.StateRunning, PrivateIP: "10.0.2.10"},
	}

	cols := []pickCol{{title: "ID", width: 21}, {title: "Name", width: 24}}
	rows := make([]pickRow, len(instances))
	for i, inst := range instances {
		rows[i] = pickRow{
			cells:  []cell{{inst.ID, IDStyle}, {inst.Name, NameStyle}},
			filter: inst.ID + " " + inst.Name,
		}
	}
	return newPicker("Select an instance", cols, rows)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, p picker, msg tea.Msg) picker {
	t.Helper()
	next, _ := p.Update(msg)
	out, ok := next.(picker)
	require.True(t, ok)
	return out
}

func TestPickerFilterNarrowsView(t *testing.T) {
	p := instancePickerFixture()
	assert.Len(t, p.view, 3)

	p = step(t, p, keyRunes("web"))
	assert.Len(t, p.view, 2)

	p = step(t, p, keyRunes("-2"))
	require.Len(t, p.view, 1)
	assert.Equal(t, 1, p.view[0])
}

func TestPickerBackspaceWidensView(t *testing.T) {
	p := instancePickerFixture()
	p = step(t, p, keyRunes("batch"))
	require.Len(t, p.view, 1)

	for i := 0; i < 5; i++ {
		p = step(t, p, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	assert.Len(t, p.view, 3)
	assert.Equal(t, "", p.query)
}

func TestPickerEnterSelectsUnderCursor(t *testing.T) {
	p := instancePickerFixture()
	p = step(t, p, tea.KeyMsg{Type: tea.KeyDown})
	p = step(t, p, tea.KeyMsg{Type: tea.KeyDown})
	p = step(t, p, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 2, p.choice)
	assert.False(t, p.aborted)
}

func TestPickerEnterOnEmptyViewIsIgnored(t *testing.T) {
	p := instancePickerFixture()
	p = step(t, p, keyRunes("nothing-matches-this"))
	require.Empty(t, p.view)

	p = step(t, p, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, -1, p.choice)
}

func TestPickerEscAborts(t *testing.T) {
	p := instancePickerFixture()
	p = step(t, p, tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, p.aborted)
	assert.Equal(t, -1, p.choice)
}

func TestPickerCursorStaysInRange(t *testing.T) {
	p := instancePickerFixture()
	p = step(t, p, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, p.cursor)

	for i := 0; i < 10; i++ {
		p = step(t, p, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 2, p.cursor)
}

func TestPickerFilterResetsCursor(t *testing.T) {
	p := instancePickerFixture()
	p = step(t, p, tea.KeyMsg{Type: tea.KeyDown})
	p = step(t, p, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 2, p.cursor)

	p = step(t, p, keyRunes("web"))
	assert.Equal(t, 0, p.cursor)
}

func TestPickerViewListsEntries(t *testing.T) {
	p := instancePickerFixture()
	out := p.View()

	assert.Contains(t, out, "Select an instance")
	assert.Contains(t, out, "i-aaa")
	assert.Contains(t, out, "batch-1")
	assert.Contains(t, out, "3/3")
}

func TestPickerViewAfterChoiceIsEmpty(t *testing.T) {
	p := instancePickerFixture()
	p = step(t, p, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "", p.View())
}

func TestPickerWindowSizeClamped(t *testing.T) {
	p := instancePickerFixture()

	p = step(t, p, tea.WindowSizeMsg{Width: 40, Height: 24})
	assert.Equal(t, pickerMinWidth, p.width)

	p = step(t, p, tea.WindowSizeMsg{Width: 500, Height: 24})
	assert.Equal(t, pickerMaxWidth, p.width)
}

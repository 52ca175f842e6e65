package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zfiscal/internal/identity"
)

// detailModel displays all fields of a saved identity.
type detailModel struct {
	identity identity.Identity
	fields   []identityField
	cursor   int
	flash    string
}

func newDetailModel(id identity.Identity) detailModel {
	return detailModel{identity: id, fields: identityFields(id)}
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch {
	case key.Matches(msg, zstyle.KeyQuit):
		return m, tea.Quit

	case key.Matches(msg, zstyle.KeyBack):
		return m, navigate(viewList)

	case key.Matches(msg, zstyle.KeyUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, zstyle.KeyDown):
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, zstyle.KeyEnter):
		return m.copy(m.fields[m.cursor].value, "copied!")
	}

	switch msg.String() {
	case "c":
		return m.copy(fieldsText(m.fields), "copied all!")
	case "d":
		id := m.identity.ID
		return m, func() tea.Msg { return deleteIdentityMsg{id: id} }
	}

	return m, nil
}

func (m detailModel) copy(text, ok string) (detailModel, tea.Cmd) {
	if err := copyToClipboard(text); err != nil {
		m.flash = "copy: " + err.Error()
	} else {
		m.flash = ok
	}
	return m, clearFlashAfter()
}

func (m detailModel) View() string {
	name := zstyle.Subtitle.Render(m.identity.FullName())
	s := "\n  " + name + "\n\n"
	s += renderFields(m.fields, m.cursor) + "\n"
	return s + renderFlash(m.flash)
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zfiscal/internal/identity"
)

// generateModel displays a random identity and its code.
type generateModel struct {
	identity identity.Identity
	fields   []identityField
	cursor   int
	flash    string
}

// saveIdentityMsg requests saving an identity.
type saveIdentityMsg struct {
	identity identity.Identity
}

// identitySavedMsg confirms the identity was saved.
type identitySavedMsg struct{}

func newGenerateModel(id identity.Identity) generateModel {
	return generateModel{identity: id, fields: identityFields(id)}
}

func (m generateModel) Init() tea.Cmd {
	return nil
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case identitySavedMsg:
		m.flash = "saved"
		return m, clearFlashAfter()

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m generateModel) handleKey(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	switch {
	case key.Matches(msg, zstyle.KeyQuit):
		return m, tea.Quit

	case key.Matches(msg, zstyle.KeyBack):
		return m, navigate(viewMenu)

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
	case "s":
		id := m.identity
		return m, func() tea.Msg { return saveIdentityMsg{identity: id} }
	case "c":
		return m.copy(fieldsText(m.fields), "copied all!")
	case "n":
		return m, navigate(viewGenerate)
	}

	return m, nil
}

func (m generateModel) copy(text, ok string) (generateModel, tea.Cmd) {
	if err := copyToClipboard(text); err != nil {
		m.flash = "copy: " + err.Error()
	} else {
		m.flash = ok
	}
	return m, clearFlashAfter()
}

func (m generateModel) View() string {
	s := "\n" + renderFields(m.fields, m.cursor) + "\n"
	return s + renderFlash(m.flash)
}

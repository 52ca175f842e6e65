package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zfiscal/internal/identity"
)

// listModel displays saved identities in a scrollable list.
type listModel struct {
	identities []identity.Identity
	cursor     int
	flash      string
}

// deleteIdentityMsg requests deletion of an identity.
type deleteIdentityMsg struct {
	id string
}

// viewIdentityMsg requests viewing a specific identity.
type viewIdentityMsg struct {
	identity identity.Identity
}

func newListModel(ids []identity.Identity) listModel {
	return listModel{identities: ids}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, navigate(viewMenu)
	}

	if len(m.identities) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, zstyle.KeyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, zstyle.KeyDown):
		if m.cursor < len(m.identities)-1 {
			m.cursor++
		}
	case key.Matches(msg, zstyle.KeyEnter):
		id := m.identities[m.cursor]
		return m, func() tea.Msg { return viewIdentityMsg{identity: id} }
	case msg.String() == "d":
		id := m.identities[m.cursor].ID
		return m, func() tea.Msg { return deleteIdentityMsg{id: id} }
	}

	return m, nil
}

func (m listModel) View() string {
	s := "\n"

	if len(m.identities) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved identities") + "\n\n"
		return s + renderFlash(m.flash)
	}

	marker := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("▸")
	for i, id := range m.identities {
		line := fmt.Sprintf("%-24s %s", truncate(id.FullName(), 24), id.Code)
		if i == m.cursor {
			s += "  " + marker + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	return s + "\n" + renderFlash(m.flash)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

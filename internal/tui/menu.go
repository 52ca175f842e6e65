package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type menuChoice int

const (
	menuGenerate menuChoice = iota
	menuCompute
	menuBrowse
	menuSettings
	menuQuit
)

var menuItems = []string{
	"Random identity",
	"Compute fiscal code",
	"Browse saved identities",
	"Settings",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor        int
	version       string
	identityCount int
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

func newMenuModel(version string) menuModel {
	return menuModel{version: version}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, zstyle.KeyQuit):
		return m, tea.Quit
	case key.Matches(keyMsg, zstyle.KeyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, zstyle.KeyDown):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, zstyle.KeyEnter):
		return m, m.selectItem()
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuGenerate:
		return navigate(viewGenerate)
	case menuCompute:
		return navigate(viewCompute)
	case menuBrowse:
		return navigate(viewList)
	case menuSettings:
		return navigate(viewSettings)
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func navigate(v viewID) tea.Cmd {
	return func() tea.Msg { return navigateMsg{view: v} }
}

func (m menuModel) View() string {
	title := zstyle.Title.Render("zfiscal")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n  %s %s\n\n", title, ver)

	for i, item := range menuItems {
		if menuChoice(i) == menuBrowse && m.identityCount > 0 {
			item += zstyle.MutedText.Render(fmt.Sprintf(" (%d)", m.identityCount))
		}
		mi := zstyle.MenuItem{Label: item, Active: m.cursor == i}
		s += zstyle.RenderMenuItem(mi, accent) + "\n"
	}

	s += "\n  " + zstyle.MutedText.Render("j/k navigate  enter select  q quit") + "\n\n"
	return s
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// passwordModel unlocks (or on first run creates) the identity store.
type passwordModel struct {
	input      textinput.Model
	firstRun   bool
	confirming bool
	firstPass  string
	errMsg     string
}

// passwordSubmitMsg carries the entered master password to the root.
type passwordSubmitMsg struct {
	password string
}

// passwordErrMsg reports a failed unlock.
type passwordErrMsg struct {
	err error
}

func newPasswordModel(firstRun bool) passwordModel {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return passwordModel{input: ti, firstRun: firstRun}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

// Value returns the text typed so far.
func (m passwordModel) Value() string {
	return m.input.Value()
}

func (m passwordModel) Update(msg tea.Msg) (passwordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// only ctrl+c quits here, 'q' is a valid password character
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if key.Matches(msg, zstyle.KeyEnter) {
			return m.submit()
		}
		m.errMsg = ""

	case passwordErrMsg:
		m = m.reset(msg.err.Error())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m passwordModel) reset(errMsg string) passwordModel {
	m.errMsg = errMsg
	m.confirming = false
	m.firstPass = ""
	m.input.SetValue("")
	return m
}

func (m passwordModel) submit() (passwordModel, tea.Cmd) {
	val := m.input.Value()
	if val == "" {
		m.errMsg = "password cannot be empty"
		return m, nil
	}

	if m.firstRun {
		if !m.confirming {
			m.firstPass = val
			m.confirming = true
			m.errMsg = ""
			m.input.SetValue("")
			return m, nil
		}
		if val != m.firstPass {
			return m.reset("passwords do not match"), nil
		}
	}

	m.errMsg = ""
	return m, func() tea.Msg { return passwordSubmitMsg{password: val} }
}

func (m passwordModel) prompt() string {
	switch {
	case m.firstRun && m.confirming:
		return "confirm password:"
	case m.firstRun:
		return "create master password:"
	}
	return "master password:"
}

func (m passwordModel) View() string {
	indent := lipgloss.NewStyle().MarginLeft(2)
	logo := indent.Render(zstyle.StyledLogo(lipgloss.NewStyle().Foreground(accent)))
	toolName := indent.Render(zstyle.MutedText.Render("zfiscal"))

	s := fmt.Sprintf("\n%s\n%s\n\n  %s\n  %s\n", logo, toolName, m.prompt(), m.input.View())

	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg)
	}

	return s + "\n"
}

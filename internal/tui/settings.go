package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zfiscal/internal/config"
	"github.com/zarlcorp/zfiscal/internal/fiscalcode"
)

type settingsChoice int

const (
	settingsSkipPadding settingsChoice = iota
	settingsVowelStride
	settingsMinAge
	settingsMaxAge
	settingsSave
	settingsBack
)

var settingsItems = []string{
	"skip X padding",
	"legacy vowel stride",
	"minimum age",
	"maximum age",
	"save",
	"back",
}

// maxAge caps the age range editable from the settings view.
const maxAge = 120

// settingsModel edits the encoder compatibility switches and the age range.
type settingsModel struct {
	cursor int
	cfg    config.Config
	dirty  bool
	flash  string
}

// saveSettingsMsg asks the root to persist and apply a config.
type saveSettingsMsg struct {
	cfg config.Config
}

// settingsSavedMsg confirms the config was written.
type settingsSavedMsg struct{}

func newSettingsModel(cfg config.Config) settingsModel {
	return settingsModel{cfg: cfg}
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case settingsSavedMsg:
		m.dirty = false
		m.flash = "saved"
		return m, clearFlashAfter()

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m settingsModel) handleKey(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
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
		if m.cursor < len(settingsItems)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, zstyle.KeyEnter):
		return m.selectItem()
	}

	switch msg.String() {
	case "s":
		return m, m.save()
	case "h", "left", "-":
		return m.adjust(-1), nil
	case "l", "right", "+":
		return m.adjust(1), nil
	case " ":
		return m.toggle(), nil
	}

	return m, nil
}

func (m settingsModel) selectItem() (settingsModel, tea.Cmd) {
	switch settingsChoice(m.cursor) {
	case settingsSkipPadding, settingsVowelStride:
		return m.toggle(), nil
	case settingsSave:
		return m, m.save()
	case settingsBack:
		return m, navigate(viewMenu)
	}
	return m, nil
}

func (m settingsModel) toggle() settingsModel {
	switch settingsChoice(m.cursor) {
	case settingsSkipPadding:
		m.cfg.Legacy.SkipPadding = !m.cfg.Legacy.SkipPadding
	case settingsVowelStride:
		if m.cfg.Legacy.VowelStride == 0 {
			m.cfg.Legacy.VowelStride = fiscalcode.LegacyVowelStride
		} else {
			m.cfg.Legacy.VowelStride = 0
		}
	default:
		return m
	}
	m.dirty = true
	return m
}

// adjust moves the selected age bound by delta, keeping min <= max.
func (m settingsModel) adjust(delta int) settingsModel {
	age := &m.cfg.Age
	switch settingsChoice(m.cursor) {
	case settingsMinAge:
		age.Min = clamp(age.Min+delta, 0, age.Max)
	case settingsMaxAge:
		age.Max = clamp(age.Max+delta, age.Min, maxAge)
	default:
		return m
	}
	m.dirty = true
	return m
}

func (m settingsModel) save() tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg { return saveSettingsMsg{cfg: cfg} }
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func onOff(b bool) string {
	if b {
		return zstyle.StatusWarn.Render("on")
	}
	return zstyle.MutedText.Render("off")
}

func (m settingsModel) valueFor(choice settingsChoice) string {
	switch choice {
	case settingsSkipPadding:
		return onOff(m.cfg.Legacy.SkipPadding)
	case settingsVowelStride:
		return onOff(m.cfg.Legacy.VowelStride != 0)
	case settingsMinAge:
		return fmt.Sprintf("%d", m.cfg.Age.Min)
	case settingsMaxAge:
		return fmt.Sprintf("%d", m.cfg.Age.Max)
	case settingsSave:
		if m.dirty {
			return zstyle.StatusWarn.Render("unsaved")
		}
	}
	return ""
}

func (m settingsModel) View() string {
	s := "\n"

	for i, item := range settingsItems {
		mi := zstyle.MenuItem{Label: item, Active: m.cursor == i}
		line := zstyle.RenderMenuItem(mi, accent)
		if v := m.valueFor(settingsChoice(i)); v != "" {
			line += " " + v
		}
		s += line + "\n"
	}

	if m.cfg.Legacy.SkipPadding || m.cfg.Legacy.VowelStride != 0 {
		s += "\n  " + zstyle.StatusWarn.Render("legacy switches produce non-standard codes") + "\n"
	}

	return s + "\n" + renderFlash(m.flash)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zfiscal/internal/fiscalcode"
	"github.com/zarlcorp/zfiscal/internal/identity"
	"github.com/zarlcorp/zfiscal/internal/places"
)

// form field indexes
const (
	fieldGiven = iota
	fieldFamily
	fieldSex
	fieldDOB
	fieldPlace
	fieldCount
)

var computeLabels = [fieldCount]string{"given", "family", "sex", "dob", "place"}

var computePlaceholders = [fieldCount]string{"Mario", "Rossi", "M or F", "1980-01-01", "H501 or RM"}

// computeModel encodes the fiscal code of whatever is typed into the form.
type computeModel struct {
	gen    *identity.Generator
	table  *places.Table
	inputs [fieldCount]textinput.Model
	focus  int

	// result previews the entered identity without ID or creation time;
	// it is valid only when complete is true
	result   identity.Identity
	place    places.Place
	complete bool
	errMsg   string
	flash    string
}

func newComputeModel(gen *identity.Generator, table *places.Table) computeModel {
	m := computeModel{gen: gen, table: table}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = computePlaceholders[i]
		ti.CharLimit = 64
		ti.Width = 30
		m.inputs[i] = ti
	}
	m.inputs[fieldSex].CharLimit = 1
	m.inputs[fieldDOB].CharLimit = 10
	m.inputs[fieldPlace].CharLimit = 4
	m.inputs[0].Focus()
	return m
}

func (m computeModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m computeModel) Update(msg tea.Msg) (computeModel, tea.Cmd) {
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

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m computeModel) handleKey(msg tea.KeyMsg) (computeModel, tea.Cmd) {
	// letters go to the inputs, so only ctrl+c quits
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		return m, navigate(viewMenu)
	case tea.KeyTab, tea.KeyDown:
		return m.setFocus(m.focus + 1), nil
	case tea.KeyShiftTab, tea.KeyUp:
		return m.setFocus(m.focus - 1), nil
	case tea.KeyCtrlY:
		if !m.complete {
			return m, nil
		}
		if err := copyToClipboard(m.result.Code); err != nil {
			m.flash = "copy: " + err.Error()
		} else {
			m.flash = "copied!"
		}
		return m, clearFlashAfter()
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		if !m.complete {
			return m, nil
		}
		r := m.result
		id := m.gen.Build(r.GivenName, r.FamilyName, r.Sex, r.DOB, m.place)
		return m, func() tea.Msg { return saveIdentityMsg{identity: id} }
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m.recompute(), cmd
}

func (m computeModel) setFocus(i int) computeModel {
	i = (i + fieldCount) % fieldCount
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m computeModel) value(field int) string {
	return strings.TrimSpace(m.inputs[field].Value())
}

// recompute encodes the form once every field is filled in, reporting the
// first invalid field otherwise.
func (m computeModel) recompute() computeModel {
	m.complete = false
	m.errMsg = ""

	for i := range m.inputs {
		if m.value(i) == "" {
			return m
		}
	}

	given, family := m.value(fieldGiven), m.value(fieldFamily)
	if err := identity.ValidateName(given); err != nil {
		m.errMsg = "given: " + err.Error()
		return m
	}
	if err := identity.ValidateName(family); err != nil {
		m.errMsg = "family: " + err.Error()
		return m
	}

	sex, err := fiscalcode.ParseSex(m.value(fieldSex))
	if err != nil {
		m.errMsg = "sex: use M or F"
		return m
	}

	dob, err := time.Parse("2006-01-02", m.value(fieldDOB))
	if err != nil {
		m.errMsg = "dob: use YYYY-MM-DD"
		return m
	}

	place, err := m.table.Resolve(m.value(fieldPlace))
	if err != nil {
		m.errMsg = "place: " + err.Error()
		return m
	}

	m.place = place
	m.result = identity.Identity{
		GivenName:  given,
		FamilyName: family,
		Sex:        sex,
		DOB:        dob,
		PlaceCode:  place.Code,
		PlaceName:  place.Name,
		Province:   place.Province,
	}
	m.result.Code = m.gen.Encoder().EncodePerson(m.result.Person())
	m.complete = true
	return m
}

func (m computeModel) View() string {
	marker := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("▸")

	s := "\n"
	for i, in := range m.inputs {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-8s", computeLabels[i]))
		if i == m.focus {
			s += "  " + marker + " " + label + " " + in.View() + "\n"
		} else {
			s += "    " + label + " " + in.View() + "\n"
		}
	}
	s += "\n"

	switch {
	case m.complete:
		code := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(m.result.Code)
		s += "    " + zstyle.MutedText.Render(fmt.Sprintf("%-8s", "code")) + " " + code + "\n"
		if m.result.PlaceName != "" {
			s += "    " + zstyle.MutedText.Render(fmt.Sprintf("%-8s", "")) + " " + placeLabel(m.result) + "\n"
		}
	case m.errMsg != "":
		s += "  " + zstyle.StatusWarn.Render(m.errMsg) + "\n"
	default:
		s += "  " + zstyle.MutedText.Render("fill in every field") + "\n"
	}

	return s + "\n" + renderFlash(m.flash)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/zarlcorp/zfiscal/internal/identity"
)

// identityField is a labeled value that can be selected and copied.
type identityField struct {
	label string
	value string
}

// flashMsg clears the flash line after a timeout.
type flashMsg struct{}

func identityFields(id identity.Identity) []identityField {
	return []identityField{
		{"code", id.Code},
		{"name", id.FullName()},
		{"sex", id.Sex.String()},
		{"dob", id.DOB.Format("2006-01-02")},
		{"place", placeLabel(id)},
		{"id", id.ID},
	}
}

func placeLabel(id identity.Identity) string {
	switch {
	case id.PlaceName == "":
		return id.PlaceCode
	case id.Province == "":
		return fmt.Sprintf("%s (%s)", id.PlaceName, id.PlaceCode)
	}
	return fmt.Sprintf("%s %s (%s)", id.PlaceName, id.Province, id.PlaceCode)
}

func fieldsText(fields []identityField) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}

func renderFields(fields []identityField, cursor int) string {
	marker := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("▸")

	var s string
	for i, f := range fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-8s", f.label))
		if i == cursor {
			s += "  " + marker + " " + label + " " + f.value + "\n"
		} else {
			s += "    " + label + " " + f.value + "\n"
		}
	}
	return s
}

// renderFlash always reserves a line so the layout does not shift.
func renderFlash(flash string) string {
	if flash == "" {
		return "\n"
	}
	return "  " + zstyle.StatusOK.Render(flash) + "\n"
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

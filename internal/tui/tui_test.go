package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zarlcorp/zfiscal/internal/config"
	"github.com/zarlcorp/zfiscal/internal/fiscalcode"
	"github.com/zarlcorp/zfiscal/internal/identity"
	"github.com/zarlcorp/zfiscal/internal/places"
)

// helpers

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func specialKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

func testIdentity() identity.Identity {
	return identity.Identity{
		ID:         "abc12345",
		GivenName:  "Mario",
		FamilyName: "Rossi",
		Sex:        fiscalcode.Male,
		DOB:        time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		PlaceCode:  "H501",
		PlaceName:  "Roma",
		Province:   "RM",
		Code:       "RSSMRA80A10H501W",
		CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func mustNavigate(t *testing.T, cmd tea.Cmd, want viewID) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok {
		t.Fatalf("expected navigateMsg")
	}
	if nav.view != want {
		t.Errorf("navigate to %d, want %d", nav.view, want)
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// menu tests

func TestMenuNavigation(t *testing.T) {
	m := newMenuModel("1.0")

	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 0 {
		t.Errorf("cursor should stay at 0, got %d", m.cursor)
	}

	for range len(menuItems) + 2 {
		m, _ = m.Update(keyMsg('j'))
	}
	if m.cursor != len(menuItems)-1 {
		t.Errorf("cursor should stop at last item, got %d", m.cursor)
	}
}

func TestMenuSelect(t *testing.T) {
	tests := []struct {
		cursor int
		want   viewID
	}{
		{int(menuGenerate), viewGenerate},
		{int(menuCompute), viewCompute},
		{int(menuBrowse), viewList},
		{int(menuSettings), viewSettings},
	}

	for _, tt := range tests {
		m := newMenuModel("1.0")
		m.cursor = tt.cursor
		_, cmd := m.Update(enterKey())
		mustNavigate(t, cmd, tt.want)
	}

	m := newMenuModel("1.0")
	m.cursor = int(menuQuit)
	if _, cmd := m.Update(enterKey()); !isQuit(cmd) {
		t.Error("quit item should quit")
	}
}

func TestMenuViewShowsCount(t *testing.T) {
	m := newMenuModel("1.0")
	m.identityCount = 3
	view := m.View()
	if !strings.Contains(view, "(3)") {
		t.Error("menu should show saved identity count")
	}
	if !strings.Contains(view, "Compute fiscal code") {
		t.Error("menu should list compute item")
	}
}

// generate tests

func TestGenerateFields(t *testing.T) {
	m := newGenerateModel(testIdentity())
	if len(m.fields) != 6 {
		t.Fatalf("fields = %d, want 6", len(m.fields))
	}
	if m.fields[0].value != "RSSMRA80A10H501W" {
		t.Errorf("first field should be the code, got %q", m.fields[0].value)
	}
	view := m.View()
	for _, want := range []string{"RSSMRA80A10H501W", "Mario Rossi", "Roma RM (H501)", "1980-01-01"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestGenerateSaveKey(t *testing.T) {
	m := newGenerateModel(testIdentity())
	_, cmd := m.Update(keyMsg('s'))
	if cmd == nil {
		t.Fatal("s should emit a command")
	}
	save, ok := cmd().(saveIdentityMsg)
	if !ok || save.identity.ID != "abc12345" {
		t.Errorf("save msg = %+v", save)
	}
}

func TestGenerateKeys(t *testing.T) {
	m := newGenerateModel(testIdentity())

	_, cmd := m.Update(keyMsg('n'))
	mustNavigate(t, cmd, viewGenerate)

	_, cmd = m.Update(escKey())
	mustNavigate(t, cmd, viewMenu)

	if _, cmd := m.Update(keyMsg('q')); !isQuit(cmd) {
		t.Error("q should quit")
	}
}

func TestGenerateFlash(t *testing.T) {
	m := newGenerateModel(testIdentity())
	m, _ = m.Update(identitySavedMsg{})
	if !strings.Contains(m.View(), "saved") {
		t.Error("should flash saved")
	}
	m, _ = m.Update(flashMsg{})
	if m.flash != "" {
		t.Error("flashMsg should clear flash")
	}
}

func TestGenerateCursorBounds(t *testing.T) {
	m := newGenerateModel(testIdentity())
	for range 20 {
		m, _ = m.Update(keyMsg('j'))
	}
	if m.cursor != len(m.fields)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.fields)-1)
	}
}

// list tests

func TestListEmpty(t *testing.T) {
	m := newListModel(nil)
	if !strings.Contains(m.View(), "no saved identities") {
		t.Error("empty list should say so")
	}
	if _, cmd := m.Update(enterKey()); cmd != nil {
		t.Error("enter on empty list should do nothing")
	}
}

func TestListKeys(t *testing.T) {
	a := testIdentity()
	b := testIdentity()
	b.ID = "def67890"
	b.GivenName = "Anna"

	m := newListModel([]identity.Identity{a, b})
	if !strings.Contains(m.View(), a.Code) {
		t.Error("list should show codes")
	}

	m, _ = m.Update(keyMsg('j'))
	_, cmd := m.Update(enterKey())
	view, ok := cmd().(viewIdentityMsg)
	if !ok || view.identity.ID != "def67890" {
		t.Errorf("enter should view second identity, got %+v", view)
	}

	_, cmd = m.Update(keyMsg('d'))
	del, ok := cmd().(deleteIdentityMsg)
	if !ok || del.id != "def67890" {
		t.Errorf("d should delete second identity, got %+v", del)
	}

	_, cmd = m.Update(escKey())
	mustNavigate(t, cmd, viewMenu)
}

func TestTruncate(t *testing.T) {
	if got := truncate("Mariagrazia Dellavalle", 10); got != "Mariagraz…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Niccolò", 10); got != "Niccolò" {
		t.Errorf("short strings untouched, got %q", got)
	}
}

// detail tests

func TestDetail(t *testing.T) {
	m := newDetailModel(testIdentity())
	if !strings.Contains(m.View(), "Mario Rossi") {
		t.Error("detail should show name")
	}

	_, cmd := m.Update(keyMsg('d'))
	del, ok := cmd().(deleteIdentityMsg)
	if !ok || del.id != "abc12345" {
		t.Errorf("d should delete, got %+v", del)
	}

	_, cmd = m.Update(escKey())
	mustNavigate(t, cmd, viewList)
}

// compute tests

func newTestCompute() computeModel {
	return newComputeModel(identity.New(), places.Default())
}

func fillCompute(m computeModel, vals ...string) computeModel {
	for i, v := range vals {
		m, _ = m.Update(typeText(v))
		if i < len(vals)-1 {
			m, _ = m.Update(specialKey(tea.KeyTab))
		}
	}
	return m
}

func TestComputeKnownVector(t *testing.T) {
	m := fillCompute(newTestCompute(), "Mario", "Rossi", "M", "1980-01-01", "RM")

	if !m.complete {
		t.Fatalf("form should be complete, err %q", m.errMsg)
	}
	if m.result.Code != "RSSMRA80A10H501W" {
		t.Errorf("code = %q, want RSSMRA80A10H501W", m.result.Code)
	}
	if !strings.Contains(m.View(), "RSSMRA80A10H501W") {
		t.Error("view should show the code")
	}
}

func TestComputeIncomplete(t *testing.T) {
	m := fillCompute(newTestCompute(), "Mario", "Rossi")
	if m.complete {
		t.Error("form should be incomplete")
	}
	if !strings.Contains(m.View(), "fill in every field") {
		t.Error("view should prompt for remaining fields")
	}
	if _, cmd := m.Update(enterKey()); cmd != nil {
		t.Error("enter on incomplete form should not save")
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name string
		vals []string
		want string
	}{
		{"bad name", []string{"M4rio", "Rossi", "M", "1980-01-01", "H501"}, "given"},
		{"bad sex", []string{"Mario", "Rossi", "X", "1980-01-01", "H501"}, "sex"},
		{"bad date", []string{"Mario", "Rossi", "M", "01/01/1980", "H501"}, "dob"},
		{"bad place", []string{"Mario", "Rossi", "M", "1980-01-01", "QQ"}, "place"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fillCompute(newTestCompute(), tt.vals...)
			if m.complete {
				t.Fatal("form should not be complete")
			}
			if !strings.HasPrefix(m.errMsg, tt.want) {
				t.Errorf("errMsg = %q, want prefix %q", m.errMsg, tt.want)
			}
		})
	}
}

func TestComputeEnterSaves(t *testing.T) {
	m := fillCompute(newTestCompute(), "Anna", "Bianchi", "F", "1990-05-12", "F205")
	_, cmd := m.Update(enterKey())
	if cmd == nil {
		t.Fatal("enter on complete form should save")
	}
	save, ok := cmd().(saveIdentityMsg)
	if !ok || save.identity.Code != "BNCNNA90E52F205K" {
		t.Errorf("save msg = %+v", save)
	}
}

func TestComputeIDMintedOnSave(t *testing.T) {
	m := fillCompute(newTestCompute(), "Mario", "Rossi", "M", "1980-01-01", "H501")
	if m.result.ID != "" || !m.result.CreatedAt.IsZero() {
		t.Errorf("typing should not mint an identity, got id %q created %v", m.result.ID, m.result.CreatedAt)
	}

	_, cmd := m.Update(enterKey())
	save, ok := cmd().(saveIdentityMsg)
	if !ok {
		t.Fatal("enter should emit saveIdentityMsg")
	}
	if len(save.identity.ID) != 8 || save.identity.CreatedAt.IsZero() {
		t.Errorf("saved identity id %q created %v", save.identity.ID, save.identity.CreatedAt)
	}
	if save.identity.Code != m.result.Code || save.identity.PlaceName != "Roma" {
		t.Errorf("saved %+v, preview code %q", save.identity, m.result.Code)
	}
}

func TestComputeFocusWraps(t *testing.T) {
	m := newTestCompute()
	m, _ = m.Update(specialKey(tea.KeyShiftTab))
	if m.focus != fieldPlace {
		t.Errorf("shift+tab from first field should wrap to last, got %d", m.focus)
	}
	m, _ = m.Update(specialKey(tea.KeyTab))
	if m.focus != fieldGiven {
		t.Errorf("tab from last field should wrap to first, got %d", m.focus)
	}
}

func TestComputeQIsText(t *testing.T) {
	m := newTestCompute()
	m, cmd := m.Update(keyMsg('q'))
	if isQuit(cmd) {
		t.Fatal("q should be typed, not quit")
	}
	if m.value(fieldGiven) != "q" {
		t.Errorf("given = %q, want q", m.value(fieldGiven))
	}

	_, cmd = m.Update(escKey())
	mustNavigate(t, cmd, viewMenu)
}

// settings tests

func TestSettingsToggles(t *testing.T) {
	m := newSettingsModel(*config.Default())

	m, _ = m.Update(enterKey())
	if !m.cfg.Legacy.SkipPadding {
		t.Error("enter on first item should turn skip padding on")
	}

	m, _ = m.Update(keyMsg('j'))
	m, _ = m.Update(enterKey())
	if m.cfg.Legacy.VowelStride != fiscalcode.LegacyVowelStride {
		t.Errorf("VowelStride = %d, want %d", m.cfg.Legacy.VowelStride, fiscalcode.LegacyVowelStride)
	}
	m, _ = m.Update(enterKey())
	if m.cfg.Legacy.VowelStride != 0 {
		t.Error("second toggle should clear the stride")
	}

	if !m.dirty {
		t.Error("toggling should mark settings dirty")
	}
	if !strings.Contains(m.View(), "unsaved") {
		t.Error("view should flag unsaved changes")
	}
}

func TestSettingsAgeBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Age.Min, cfg.Age.Max = 30, 31

	m := newSettingsModel(*cfg)
	m.cursor = int(settingsMinAge)
	m, _ = m.Update(keyMsg('l'))
	m, _ = m.Update(keyMsg('l'))
	if m.cfg.Age.Min != 31 {
		t.Errorf("min = %d, should stop at max 31", m.cfg.Age.Min)
	}

	m.cursor = int(settingsMaxAge)
	m, _ = m.Update(keyMsg('h'))
	if m.cfg.Age.Max != 31 {
		t.Errorf("max = %d, should not drop below min", m.cfg.Age.Max)
	}

	m.cursor = int(settingsMinAge)
	for range 40 {
		m, _ = m.Update(keyMsg('h'))
	}
	if m.cfg.Age.Min != 0 {
		t.Errorf("min = %d, want 0", m.cfg.Age.Min)
	}
}

func TestSettingsSaveAndBack(t *testing.T) {
	m := newSettingsModel(*config.Default())
	m, _ = m.Update(enterKey())

	_, cmd := m.Update(keyMsg('s'))
	if cmd == nil {
		t.Fatal("s should emit a command")
	}
	save, ok := cmd().(saveSettingsMsg)
	if !ok || !save.cfg.Legacy.SkipPadding {
		t.Errorf("save msg = %+v", save)
	}

	m, _ = m.Update(settingsSavedMsg{})
	if m.dirty || m.flash != "saved" {
		t.Errorf("after save dirty=%v flash=%q", m.dirty, m.flash)
	}

	_, cmd = m.Update(escKey())
	mustNavigate(t, cmd, viewMenu)

	m.cursor = int(settingsBack)
	_, cmd = m.Update(enterKey())
	mustNavigate(t, cmd, viewMenu)
}

func TestSettingsLegacyWarning(t *testing.T) {
	m := newSettingsModel(*config.Default())
	if strings.Contains(m.View(), "non-standard") {
		t.Error("default settings should not warn")
	}
	m.cfg.Legacy.SkipPadding = true
	if !strings.Contains(m.View(), "non-standard") {
		t.Error("legacy switches should warn")
	}
}

// root helpers

func TestViewTitlesAndHelp(t *testing.T) {
	for _, v := range []viewID{viewGenerate, viewCompute, viewList, viewDetail, viewSettings} {
		if viewTitle(v) == "" {
			t.Errorf("view %d has no title", v)
		}
		if len(helpFor(v)) == 0 {
			t.Errorf("view %d has no help", v)
		}
	}
}

func TestPlaceLabel(t *testing.T) {
	id := testIdentity()
	if got := placeLabel(id); got != "Roma RM (H501)" {
		t.Errorf("placeLabel = %q", got)
	}
	id.Province = ""
	if got := placeLabel(id); got != "Roma (H501)" {
		t.Errorf("placeLabel = %q", got)
	}
	id.PlaceName = ""
	if got := placeLabel(id); got != "H501" {
		t.Errorf("placeLabel = %q", got)
	}
}

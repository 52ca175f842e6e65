package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type errTest string

func (e errTest) Error() string { return string(e) }

func TestPasswordModel_QKeyDoesNotQuit(t *testing.T) {
	m := newPasswordModel(false)

	_, cmd := m.Update(keyMsg('q'))
	if isQuit(cmd) {
		t.Fatal("pressing 'q' should not quit the password view")
	}
}

func TestPasswordModel_CtrlCQuits(t *testing.T) {
	m := newPasswordModel(false)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should produce a quit command")
	}

	result := cmd()
	if _, ok := result.(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c should produce QuitMsg, got %T", result)
	}
}

func TestPasswordModel_QKeyReachesTextInput(t *testing.T) {
	m := newPasswordModel(false)

	updated, _ := m.Update(keyMsg('q'))
	if updated.Value() != "q" {
		t.Fatalf("expected textinput to contain %q, got %q", "q", updated.Value())
	}
}

func TestPasswordUnlockLayout(t *testing.T) {
	view := newPasswordModel(false).View()

	if !strings.Contains(view, "master password") {
		t.Error("unlock view should show master password prompt")
	}
	if strings.Contains(view, "create") || strings.Contains(view, "confirm") {
		t.Error("unlock view should not ask to create or confirm")
	}
	if !strings.Contains(view, "zfiscal") {
		t.Error("view should show tool name")
	}
}

func TestPasswordFirstRunConfirmStep(t *testing.T) {
	m := newPasswordModel(true)
	if !strings.Contains(m.View(), "create master password") {
		t.Error("first-run view should show 'create master password'")
	}

	m.input.SetValue("secret")
	m, cmd := m.Update(enterKey())
	if cmd != nil {
		t.Error("first entry should not submit")
	}
	if !m.confirming {
		t.Fatal("should be confirming after first entry")
	}
	if m.Value() != "" {
		t.Error("input should be cleared for confirmation")
	}
	if !strings.Contains(m.View(), "confirm password") {
		t.Error("view should show confirm prompt")
	}
}

func TestPasswordMismatchError(t *testing.T) {
	m := newPasswordModel(true)

	m.input.SetValue("secret1")
	m, _ = m.Update(enterKey())
	m.input.SetValue("secret2")
	m, _ = m.Update(enterKey())

	if !strings.Contains(m.View(), "passwords do not match") {
		t.Error("should show mismatch error")
	}
	if m.confirming {
		t.Error("mismatch should restart from the first entry")
	}
	if m.Value() != "" {
		t.Error("input should be cleared on mismatch")
	}
}

func TestPasswordMatchSubmits(t *testing.T) {
	m := newPasswordModel(true)

	m.input.SetValue("secret")
	m, _ = m.Update(enterKey())
	m.input.SetValue("secret")
	_, cmd := m.Update(enterKey())

	if cmd == nil {
		t.Fatal("should emit command on matching passwords")
	}
	submit, ok := cmd().(passwordSubmitMsg)
	if !ok {
		t.Fatal("should emit passwordSubmitMsg")
	}
	if submit.password != "secret" {
		t.Errorf("password = %q, want %q", submit.password, "secret")
	}
}

func TestPasswordEmptyShowsError(t *testing.T) {
	m := newPasswordModel(false)
	m, cmd := m.Update(enterKey())
	if cmd != nil {
		t.Error("empty password should not emit command")
	}
	if !strings.Contains(m.View(), "password cannot be empty") {
		t.Error("should show empty password error")
	}
}

func TestPasswordUnlockSubmitsImmediately(t *testing.T) {
	m := newPasswordModel(false)
	m.input.SetValue("secret")
	_, cmd := m.Update(enterKey())

	if cmd == nil {
		t.Fatal("should emit command on unlock submit")
	}
	submit, ok := cmd().(passwordSubmitMsg)
	if !ok {
		t.Fatal("should emit passwordSubmitMsg")
	}
	if submit.password != "secret" {
		t.Errorf("password = %q, want %q", submit.password, "secret")
	}
}

func TestPasswordErrorClearsOnKeyPress(t *testing.T) {
	m := newPasswordModel(false)
	m.errMsg = "some error"

	m, _ = m.Update(keyMsg('a'))
	if m.errMsg != "" {
		t.Error("error should be cleared on key press")
	}
}

func TestPasswordErrMsgClearsInput(t *testing.T) {
	m := newPasswordModel(false)
	m.input.SetValue("wrong")

	m, _ = m.Update(passwordErrMsg{err: errTest("bad password")})

	if m.Value() != "" {
		t.Error("input should be cleared on error")
	}
	if !strings.Contains(m.View(), "bad password") {
		t.Error("should display error message")
	}
}

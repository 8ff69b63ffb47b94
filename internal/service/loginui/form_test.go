package loginui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func press(t *testing.T, m tea.Model, key tea.KeyType) tea.Model {
	t.Helper()
	m, _ = m.Update(tea.KeyMsg{Type: key})
	return m
}

func TestSignupFormCollectsAllFields(t *testing.T) {
	var m tea.Model = signupModel()

	m = typeText(t, m, "Jane Roe")
	m = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "user1@mail.com")
	m = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "123456")
	m = press(t, m, tea.KeyEnter)

	out := m.(model)
	if !out.done || out.aborted {
		t.Fatalf("form not submitted: done=%v aborted=%v", out.done, out.aborted)
	}

	creds := out.credentials()
	if creds.Name != "Jane Roe" {
		t.Errorf("name = %q", creds.Name)
	}
	if creds.Email != "user1@mail.com" {
		t.Errorf("email = %q", creds.Email)
	}
	if creds.Password != "123456" {
		t.Errorf("password = %q", creds.Password)
	}
}

func TestLoginFormHasNoNameField(t *testing.T) {
	var m tea.Model = loginModel()

	m = typeText(t, m, "user1@mail.com")
	m = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "123456")
	m = press(t, m, tea.KeyEnter)

	out := m.(model)
	if !out.done {
		t.Fatal("two enters must submit the login form")
	}

	creds := out.credentials()
	if creds.Name != "" {
		t.Errorf("login form must not collect a name, got %q", creds.Name)
	}
	if creds.Email != "user1@mail.com" || creds.Password != "123456" {
		t.Errorf("credentials = %+v", creds)
	}
}

func TestFormAborts(t *testing.T) {
	var m tea.Model = signupModel()

	m = typeText(t, m, "half typed")
	m = press(t, m, tea.KeyEsc)

	out := m.(model)
	if !out.aborted {
		t.Error("esc must abort the form")
	}
	if out.done {
		t.Error("aborted form must not read as submitted")
	}
}

package loginui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Credentials is what a form hands back to the auth commands. Name is
// only set by the signup form.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

type field struct {
	label string
	input textinput.Model
}

type model struct {
	title   string
	fields  []field
	focused int
	done    bool
	aborted bool
}

func textField(label, placeholder string, masked bool) field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 255
	in.Width = 40
	if masked {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return field{label: label, input: in}
}

func newModel(title string, fields []field) model {
	fields[0].input.Focus()
	return model{title: title, fields: fields}
}

func loginModel() model {
	return newModel("Sign in to ragchat", []field{
		textField("Email", "user1@mail.com", false),
		textField("Password", "password", true),
	})
}

func signupModel() model {
	return newModel("Create your ragchat account", []field{
		textField("Name", "John Doe", false),
		textField("Email", "user1@mail.com", false),
		textField("Password", "password", true),
	})
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.focused < len(m.fields)-1 {
				return m.focus(m.focused + 1)
			}
			m.done = true
			return m, tea.Quit
		case "tab":
			return m.focus((m.focused + 1) % len(m.fields))
		case "shift+tab":
			return m.focus((m.focused + len(m.fields) - 1) % len(m.fields))
		}
	}

	var cmd tea.Cmd
	m.fields[m.focused].input, cmd = m.fields[m.focused].input.Update(msg)
	return m, cmd
}

func (m model) focus(i int) (tea.Model, tea.Cmd) {
	m.fields[m.focused].input.Blur()
	m.focused = i
	m.fields[m.focused].input.Focus()
	return m, textinput.Blink
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for _, f := range m.fields {
		fmt.Fprintf(&b, "\n%s:\n%s\n", f.label, f.input.View())
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter to confirm, tab to switch, esc to abort"))
	b.WriteString("\n")
	return b.String()
}

func (m model) value(label string) string {
	for _, f := range m.fields {
		if f.label == label {
			return f.input.Value()
		}
	}
	return ""
}

func (m model) credentials() Credentials {
	return Credentials{
		Email:    m.value("Email"),
		Password: m.value("Password"),
		Name:     m.value("Name"),
	}
}

func run(m model) (Credentials, bool, error) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return Credentials{}, false, err
	}

	out, ok := final.(model)
	if !ok || out.aborted || !out.done {
		return Credentials{}, false, nil
	}
	return out.credentials(), true, nil
}

// Run shows the login form and blocks until it is submitted or aborted.
func Run() (Credentials, bool, error) {
	return run(loginModel())
}

// RunSignup shows the signup form, which also collects a display name.
func RunSignup() (Credentials, bool, error) {
	return run(signupModel())
}

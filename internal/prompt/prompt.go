// Package prompt collects a fixed sequence of answers from the terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrCancelled = errors.New("prompt: cancelled")

const txtHelp = "Press 'Enter' to submit. 'Esc' or 'Ctrl+C' to quit."

var (
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	answerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	placeholderStyle = helpStyle
)

// Field is one question.
type Field struct {
	Label       string
	Placeholder string
	Hidden      bool // password echo, answer is not trimmed
	Required    bool
}

// Ask prompts for every field in order on the terminal and returns the
// answers in the same order.
func Ask(fields []Field) ([]string, error) {
	return AskWith(os.Stdin, os.Stderr, fields)
}

// AskWith is Ask with explicit streams.
func AskWith(in io.Reader, out io.Writer, fields []Field) ([]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	final, err := tea.NewProgram(newModel(fields), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	m := final.(model)
	if m.cancelled || !m.done {
		return nil, ErrCancelled
	}
	return m.answers, nil
}

type model struct {
	fields  []Field
	inputs  []textinput.Model
	answers []string
	current int

	errorMessage string
	done         bool
	cancelled    bool
}

func newModel(fields []Field) model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = "> "
		in.Placeholder = f.Placeholder
		in.PlaceholderStyle = placeholderStyle
		in.CharLimit = 256
		if f.Hidden {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	inputs[0].Focus()

	return model{
		fields:  fields,
		inputs:  inputs,
		answers: make([]string, 0, len(fields)),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.current], cmd = m.inputs[m.current].Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()
	}

	m.errorMessage = ""
	var cmd tea.Cmd
	m.inputs[m.current], cmd = m.inputs[m.current].Update(msg)
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	field := m.fields[m.current]

	value := m.inputs[m.current].Value()
	if !field.Hidden {
		value = strings.TrimSpace(value)
	}

	if field.Required && value == "" {
		m.errorMessage = strings.TrimSuffix(field.Label, ":") + " is required"
		return m, nil
	}

	m.errorMessage = ""
	m.answers = append(m.answers, value)
	m.inputs[m.current].Blur()

	if m.current == len(m.fields)-1 {
		m.done = true
		return m, tea.Quit
	}

	m.current++
	m.inputs[m.current].Focus()
	return m, textinput.Blink
}

func (m model) View() string {
	var b strings.Builder

	for i, answer := range m.answers {
		shown := answer
		if m.fields[i].Hidden {
			shown = strings.Repeat("•", len([]rune(answer)))
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(m.fields[i].Label), answerStyle.Render(shown))
	}

	if m.done || m.cancelled {
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n%s\n", labelStyle.Render(m.fields[m.current].Label), m.inputs[m.current].View())
	if m.errorMessage != "" {
		b.WriteString(errorStyle.Render(m.errorMessage) + "\n")
	}
	b.WriteString(helpStyle.Render(txtHelp) + "\n")

	return b.String()
}

package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m model, s string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(model)
}

func press(m model, k tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(model), cmd
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_CollectsFieldsInOrder(t *testing.T) {
	m := newModel([]Field{
		{Label: "First name:", Required: true},
		{Label: "Last name:", Required: true},
		{Label: "Company/Organization:"},
	})

	m = typeText(m, "  Alice ")
	m, cmd := press(m, tea.KeyEnter)
	assert.False(t, isQuit(t, cmd))
	assert.Equal(t, 1, m.current)

	m = typeText(m, "Liddell")
	m, _ = press(m, tea.KeyEnter)

	m, cmd = press(m, tea.KeyEnter)
	assert.True(t, isQuit(t, cmd))
	assert.True(t, m.done)
	assert.Equal(t, []string{"Alice", "Liddell", ""}, m.answers)
}

func TestModel_RequiredFieldBlocks(t *testing.T) {
	m := newModel([]Field{{Label: "Email:", Required: true}})

	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.done)
	assert.Equal(t, "Email is required", m.errorMessage)
	assert.Contains(t, m.View(), "Email is required")

	m = typeText(m, "a")
	assert.Empty(t, m.errorMessage)

	m, cmd = press(m, tea.KeyEnter)
	assert.True(t, isQuit(t, cmd))
	assert.Equal(t, []string{"a"}, m.answers)
}

func TestModel_HiddenFieldIsMaskedAndUntrimmed(t *testing.T) {
	m := newModel([]Field{{Label: "Password:", Hidden: true, Required: true}})

	m = typeText(m, " s3cret ")
	assert.NotContains(t, m.View(), "s3cret")

	m, _ = press(m, tea.KeyEnter)
	require.True(t, m.done)
	assert.Equal(t, []string{" s3cret "}, m.answers)
	assert.NotContains(t, m.View(), "s3cret")
}

func TestModel_Cancel(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newModel([]Field{{Label: "Email:"}})
		m, cmd := press(m, k)
		assert.True(t, isQuit(t, cmd))
		assert.True(t, m.cancelled)
		assert.False(t, m.done)
	}
}

func TestAskWith_NoFields(t *testing.T) {
	answers, err := AskWith(nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, answers)
}

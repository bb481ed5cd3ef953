package toast

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderContainsMessage(t *testing.T) {
	t.Parallel()

	out := Render("That email is already taken!")
	assert.Contains(t, out, "That email is already taken!")
}

func TestModelDismissesAfterDuration(t *testing.T) {
	t.Parallel()

	m := NewModel("hello", 10*time.Millisecond)
	require.True(t, strings.Contains(m.View(), "hello"))

	updated, cmd := m.Update(dismissMsg{})
	model, ok := updated.(Model)
	require.True(t, ok)
	assert.True(t, model.done)
	assert.Empty(t, model.View())
	assert.NotNil(t, cmd, "dismiss must quit the program")
}

func TestNewModelDefaultsDuration(t *testing.T) {
	t.Parallel()

	m := NewModel("hello", 0)
	assert.Equal(t, DefaultDuration, m.duration)
}

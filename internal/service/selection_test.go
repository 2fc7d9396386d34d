package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	t.Run("toggle mode clears the set both ways", func(t *testing.T) {
		sel := NewSelection()

		assert.True(t, sel.ToggleMode())
		sel.Toggle("a")
		sel.Toggle("b")
		assert.Equal(t, 2, sel.Count())

		assert.False(t, sel.ToggleMode())
		assert.Equal(t, 0, sel.Count())
		assert.Empty(t, sel.Ids())
	})

	t.Run("toggle is a symmetric difference", func(t *testing.T) {
		sel := NewSelection()
		sel.ToggleMode()

		sel.Toggle("a")
		assert.True(t, sel.Selected("a"))

		sel.Toggle("a")
		assert.False(t, sel.Selected("a"))
		assert.Equal(t, 0, sel.Count())
	})

	t.Run("ids preserve selection order", func(t *testing.T) {
		sel := NewSelection()
		sel.ToggleMode()

		sel.Toggle("c")
		sel.Toggle("a")
		sel.Toggle("b")
		sel.Toggle("a") // deselect

		assert.Equal(t, []string{"c", "b"}, sel.Ids())
	})

	t.Run("select all replaces the set", func(t *testing.T) {
		sel := NewSelection()
		sel.ToggleMode()
		sel.Toggle("old")

		sel.SelectAll([]string{"a", "b", "c"})

		assert.Equal(t, []string{"a", "b", "c"}, sel.Ids())
		assert.False(t, sel.Selected("old"))
	})

	t.Run("clear empties without leaving mode", func(t *testing.T) {
		sel := NewSelection()
		sel.ToggleMode()
		sel.Toggle("a")

		sel.Clear()

		assert.True(t, sel.Active())
		assert.Equal(t, 0, sel.Count())
	})

	t.Run("deactivate leaves mode and empties", func(t *testing.T) {
		sel := NewSelection()
		sel.ToggleMode()
		sel.Toggle("a")

		sel.Deactivate()

		assert.False(t, sel.Active())
		assert.Equal(t, 0, sel.Count())
	})
}

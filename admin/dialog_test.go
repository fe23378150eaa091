package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteDialog(t *testing.T) {
	target := DeleteTarget{Resource: "projects", ID: "1", Name: "Mercy Hospital Wing"}

	t.Run("open then cancel", func(t *testing.T) {
		var d DeleteDialog
		assert.Equal(t, DialogClosed, d.State())
		require.NoError(t, d.Open(target))
		got, open := d.Target()
		assert.True(t, open)
		assert.Equal(t, target, got)

		require.NoError(t, d.Cancel())
		assert.Equal(t, DialogClosed, d.State())
		_, open = d.Target()
		assert.False(t, open)
	})

	t.Run("cannot open twice", func(t *testing.T) {
		var d DeleteDialog
		require.NoError(t, d.Open(target))
		assert.ErrorIs(t, d.Open(target), ErrDialogState)
	})

	t.Run("confirm runs delete once and closes", func(t *testing.T) {
		var d DeleteDialog
		require.NoError(t, d.Open(target))
		calls := 0
		err := d.Confirm(context.Background(), func(_ context.Context, got DeleteTarget) error {
			calls++
			assert.Equal(t, target, got)
			assert.Equal(t, DialogInFlight, d.State())
			// a second confirm while in flight is refused
			assert.ErrorIs(t, d.Confirm(context.Background(), func(context.Context, DeleteTarget) error {
				calls++
				return nil
			}), ErrDialogState)
			assert.ErrorIs(t, d.Cancel(), ErrDialogState)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, DialogClosed, d.State())
	})

	t.Run("confirm closes on failure too", func(t *testing.T) {
		var d DeleteDialog
		require.NoError(t, d.Open(target))
		boom := errors.New("boom")
		err := d.Confirm(context.Background(), func(context.Context, DeleteTarget) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, DialogClosed, d.State())
	})

	t.Run("confirm or cancel while closed", func(t *testing.T) {
		var d DeleteDialog
		assert.ErrorIs(t, d.Cancel(), ErrDialogState)
		assert.ErrorIs(t, d.Confirm(context.Background(), func(context.Context, DeleteTarget) error { return nil }), ErrDialogState)
	})
}

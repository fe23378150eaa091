package admin

import (
	"context"
	"errors"
)

// DialogState is the state of the delete confirmation dialog.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpen
	// DialogInFlight is DialogOpen with the confirm action disabled while
	// the delete runs.
	DialogInFlight
)

var ErrDialogState = errors.New("delete dialog: invalid transition")

// DeleteTarget is the record a dialog asks about.
type DeleteTarget struct {
	Resource string
	ID       string
	Name     string
}

// DeleteDialog is the closed -> open(target) -> closed state machine behind
// every delete action.
type DeleteDialog struct {
	state  DialogState
	target DeleteTarget
}

func (d *DeleteDialog) State() DialogState { return d.state }

func (d *DeleteDialog) Target() (DeleteTarget, bool) {
	return d.target, d.state != DialogClosed
}

// Open asks for confirmation to delete target.
func (d *DeleteDialog) Open(target DeleteTarget) error {
	if d.state != DialogClosed {
		return ErrDialogState
	}
	d.state, d.target = DialogOpen, target
	return nil
}

// Cancel closes the dialog without side effects.
func (d *DeleteDialog) Cancel() error {
	if d.state != DialogOpen {
		return ErrDialogState
	}
	d.state, d.target = DialogClosed, DeleteTarget{}
	return nil
}

// Confirm runs del for the target and closes the dialog whatever the
// outcome. A second Confirm while one is running is rejected.
func (d *DeleteDialog) Confirm(ctx context.Context, del func(context.Context, DeleteTarget) error) error {
	if d.state != DialogOpen {
		return ErrDialogState
	}
	d.state = DialogInFlight
	err := del(ctx, d.target)
	d.state, d.target = DialogClosed, DeleteTarget{}
	return err
}

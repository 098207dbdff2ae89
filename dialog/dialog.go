// Package dialog owns the open/closed state of the checkout dialog. Closing
// only detaches the view; it never reaches the execution engine.
package dialog

import (
	"sync"

	"github.com/google/uuid"
)

// Dialog tracks whether the checkout dialog is open. Every transition from
// closed to open starts a new session id. It is safe for concurrent use.
type Dialog struct {
	mu      sync.Mutex
	open    bool
	session string
	onClose func()

	// last host prop seen by Sync
	prop     bool
	propSeen bool
}

// New returns a closed dialog. onClose, when set, is called whenever the user
// closes the dialog so the enclosing container can close too.
func New(onClose func()) *Dialog {
	return &Dialog{onClose: onClose}
}

// Open reports the current state.
func (d *Dialog) Open() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Session returns the id of the current or last opening, empty if the dialog
// was never opened.
func (d *Dialog) Session() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session
}

// Sync mirrors the host's open prop. The state follows the prop only when the
// prop changes, so a close by the user holds until the host flips it. A nil
// prop leaves the state untouched. It does not notify the enclosing container.
func (d *Dialog) Sync(open *bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if open == nil || (d.propSeen && *open == d.prop) {
		return d.open
	}
	d.prop, d.propSeen = *open, true
	d.set(*open)
	return d.open
}

// OnOpenChange handles a user driven open or close. Closing propagates to the
// enclosing container.
func (d *Dialog) OnOpenChange(open bool) {
	d.mu.Lock()
	d.set(open)
	onClose := d.onClose
	d.mu.Unlock()

	if !open && onClose != nil {
		onClose()
	}
}

// Dismiss closes the dialog from the completion screen. The enclosing
// container stays as it is.
func (d *Dialog) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.set(false)
}

func (d *Dialog) set(open bool) {
	if open && !d.open {
		d.session = uuid.NewString()
	}
	d.open = open
}

package globe

// Event is a list of listeners notified in registration order.
type Event struct {
	next      int
	listeners []listener
}

type listener struct {
	id int
	fn func()
}

// Add registers fn and returns the function that removes it again.
func (e *Event) Add(fn func()) (remove func()) {
	e.next++
	id := e.next
	e.listeners = append(e.listeners, listener{id: id, fn: fn})
	return func() { e.remove(id) }
}

func (e *Event) remove(id int) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (e *Event) Len() int { return len(e.listeners) }

// Raise calls every listener. Listeners added or removed during the call
// take effect from the next Raise.
func (e *Event) Raise() {
	ls := make([]listener, len(e.listeners))
	copy(ls, e.listeners)
	for _, l := range ls {
		l.fn()
	}
}

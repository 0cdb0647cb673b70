package nav

// Listener is told about every navigation with the new location.
type Listener func(Location)

// Router keeps the current location and a back stack, and notifies
// listeners when the location changes.
type Router struct {
	current   Location
	history   []Location
	listeners []Listener
}

// NewRouter starts at the given address.
func NewRouter(start string) *Router {
	return &Router{current: Parse(start)}
}

// Current returns the current location.
func (r *Router) Current() Location {
	return r.current
}

// CanGoBack reports whether Back has somewhere to go.
func (r *Router) CanGoBack() bool {
	return len(r.history) > 0
}

// OnChange registers a listener and calls it with the current location.
func (r *Router) OnChange(fn Listener) {
	r.listeners = append(r.listeners, fn)
	fn(r.current)
}

// Navigate moves to raw, pushing the previous location on the back stack.
// Listeners are notified even when the address is unchanged, so re-entering
// the same category still resets dependent state.
func (r *Router) Navigate(raw string) Location {
	r.history = append(r.history, r.current)
	r.current = Parse(raw)
	r.notify()
	return r.current
}

// Back returns to the previous location. It reports false when the history is empty.
func (r *Router) Back() (Location, bool) {
	if len(r.history) == 0 {
		return r.current, false
	}
	last := len(r.history) - 1
	r.current = r.history[last]
	r.history = r.history[:last]
	r.notify()
	return r.current, true
}

func (r *Router) notify() {
	for _, fn := range r.listeners {
		fn(r.current)
	}
}

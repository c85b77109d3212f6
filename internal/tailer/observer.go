package tailer

import "slices"

// Observer receives lines and lifecycle events from a Tailer. Callbacks run on
// the tailer goroutine; a slow observer slows the tail.
//
// Observers are compared with ==, so implementations must be comparable.
// Pointer receivers are the usual choice.
type Observer interface {
	// OnLine is called once per complete line, in file order.
	OnLine(line string)
	// OnFileNotFound is called when the file cannot be opened at start.
	OnFileNotFound()
	// OnFileRemoved is called when the file disappears while being tailed.
	OnFileRemoved()
	// OnException is called for any other failure.
	OnException(err error)
}

// Funcs adapts plain functions to an Observer. Nil fields are ignored.
// Register a pointer: &tailer.Funcs{...}.
type Funcs struct {
	Line         func(line string)
	FileNotFound func()
	FileRemoved  func()
	Exception    func(err error)
}

func (f *Funcs) OnLine(line string) {
	if f.Line != nil {
		f.Line(line)
	}
}

func (f *Funcs) OnFileNotFound() {
	if f.FileNotFound != nil {
		f.FileNotFound()
	}
}

func (f *Funcs) OnFileRemoved() {
	if f.FileRemoved != nil {
		f.FileRemoved()
	}
}

func (f *Funcs) OnException(err error) {
	if f.Exception != nil {
		f.Exception(err)
	}
}

// AddObserver registers o. It reports false when o is nil or already registered.
// Safe to call while the tailer is running; the next event sees the change.
func (t *Tailer) AddObserver(o Observer) bool {
	if o == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if slices.Contains(t.observers, o) {
		return false
	}
	t.observers = append(t.observers, o)
	return true
}

// RemoveObserver unregisters o and reports whether it was registered.
func (t *Tailer) RemoveObserver(o Observer) bool {
	if o == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := slices.Index(t.observers, o)
	if idx < 0 {
		return false
	}
	t.observers = slices.Delete(t.observers, idx, idx+1)
	return true
}

// Observers returns a copy of the registered observers.
func (t *Tailer) Observers() []Observer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.observers)
}

func (t *Tailer) notifyLine(line string) {
	for _, o := range t.Observers() {
		o.OnLine(line)
	}
}

func (t *Tailer) notifyFileNotFound() {
	for _, o := range t.Observers() {
		o.OnFileNotFound()
	}
}

func (t *Tailer) notifyFileRemoved() {
	for _, o := range t.Observers() {
		o.OnFileRemoved()
	}
}

func (t *Tailer) notifyException(err error) {
	for _, o := range t.Observers() {
		o.OnException(err)
	}
}

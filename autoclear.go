package magnify

// autoClearScope forces a backend's auto-clear flag on and remembers the
// caller's value. Release restores it; it is meant to be deferred so the
// flag is restored on every exit path, including scene failures and panics.
type autoClearScope struct {
	backend Backend
	saved   bool
}

func forceAutoClear(b Backend) autoClearScope {
	s := autoClearScope{backend: b, saved: b.AutoClear()}
	b.SetAutoClear(true)
	return s
}

func (s autoClearScope) Release() {
	s.backend.SetAutoClear(s.saved)
}

// withAutoClear runs fn with the backend's auto-clear flag forced on.
func withAutoClear(b Backend, fn func() error) error {
	scope := forceAutoClear(b)
	defer scope.Release()
	return fn()
}

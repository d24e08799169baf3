package theme

import "sync"

// fakeStore is an in-memory Store whose failure modes can be toggled.
type fakeStore struct {
	mu       sync.Mutex
	rows     map[string]string
	panicAll bool
}

func newFakeStore(rows map[string]string) *fakeStore {
	if rows == nil {
		rows = map[string]string{}
	}
	return &fakeStore{rows: rows}
}

func (s *fakeStore) Get(key string) (string, bool) {
	if s.panicAll {
		panic("store unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.rows[key]
	return value, ok
}

func (s *fakeStore) Set(key, value string) error {
	if s.panicAll {
		panic("store unavailable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[key] = value
	return nil
}

func (s *fakeStore) get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[key]
}

func (s *fakeStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[key]
	return ok
}

// fakeOracle answers queries with a fixed preference and lets tests fire
// change notifications by hand.
type fakeOracle struct {
	mu          sync.Mutex
	pref        SystemPreference
	available   bool
	fn          func(SystemPreference)
	cancelCalls int
	subFails    bool
}

func newFakeOracle(pref SystemPreference) *fakeOracle {
	return &fakeOracle{pref: pref, available: true}
}

func (o *fakeOracle) Current() (SystemPreference, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.available {
		return "", false
	}
	return o.pref, true
}

func (o *fakeOracle) Subscribe(fn func(SystemPreference)) func() {
	if o.subFails {
		panic("subscription mechanism missing")
	}
	o.mu.Lock()
	o.fn = fn
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.cancelCalls++
		o.fn = nil
	}
}

// change flips the oracle's answer and notifies the subscriber, as the host
// environment would.
func (o *fakeOracle) change(pref SystemPreference) {
	o.mu.Lock()
	o.pref = pref
	fn := o.fn
	o.mu.Unlock()
	if fn != nil {
		fn(pref)
	}
}

func (o *fakeOracle) cancels() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cancelCalls
}

// recordSurface records every marker application.
type recordSurface struct {
	mu      sync.Mutex
	applies []Effective
}

func (s *recordSurface) Apply(e Effective) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applies = append(s.applies, e)
}

func (s *recordSurface) marker() (Effective, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.applies) == 0 {
		return "", false
	}
	return s.applies[len(s.applies)-1], true
}

func (s *recordSurface) applyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applies)
}

package model

import (
	"math"
	"sort"

	"github.com/PixPMusic/gopher-surface/internal/logger"
	"github.com/PixPMusic/gopher-surface/internal/surface"
)

// Invoker runs named actions on the music application.
type Invoker interface {
	// Invoke runs the action and reports whether it exists.
	Invoke(name string, args ...float64) bool
}

// SetFunc is told about every value changed locally, so it can be pushed
// to the application. value is a bool, a float64 or a surface.Color.
type SetFunc func(key string, value interface{})

// Store is the controller's view of the music application: keyed
// observable values plus named actions. Values written by the controller
// go through Set*, values reported by the application through Update*.
//
// A Store is not safe for concurrent use.
type Store struct {
	log     *logger.Log
	bools   map[string]bool
	numbers map[string]float64
	colors  map[string]surface.Color
	invoker Invoker
	onSet   []SetFunc
}

// NewStore creates an empty store. invoker may be nil, in which case every
// action is missing.
func NewStore(log *logger.Log, invoker Invoker) *Store {
	return &Store{
		log:     log.Module("model"),
		bools:   map[string]bool{},
		numbers: map[string]float64{},
		colors:  map[string]surface.Color{},
		invoker: invoker,
	}
}

// SetInvoker replaces the action backend.
func (s *Store) SetInvoker(inv Invoker) { s.invoker = inv }

// OnSet registers fn to receive local changes.
func (s *Store) OnSet(fn SetFunc) { s.onSet = append(s.onSet, fn) }

func (s *Store) Bool(key string) bool { return s.bools[key] }

func (s *Store) Float(key string) float64 { return s.numbers[key] }

// Int returns the number under key rounded to the nearest integer.
func (s *Store) Int(key string) int { return int(math.Round(s.numbers[key])) }

// Color returns the color under key and whether one is known.
func (s *Store) Color(key string) (surface.Color, bool) {
	c, ok := s.colors[key]
	return c, ok
}

// Has reports whether any value is stored under key.
func (s *Store) Has(key string) bool {
	if _, ok := s.bools[key]; ok {
		return true
	}
	if _, ok := s.numbers[key]; ok {
		return true
	}
	_, ok := s.colors[key]
	return ok
}

func (s *Store) SetBool(key string, v bool) {
	s.bools[key] = v
	s.notify(key, v)
}

func (s *Store) SetFloat(key string, v float64) {
	s.numbers[key] = v
	s.notify(key, v)
}

func (s *Store) SetInt(key string, v int) { s.SetFloat(key, float64(v)) }

// Toggle flips the bool under key and returns the new value.
func (s *Store) Toggle(key string) bool {
	v := !s.bools[key]
	s.SetBool(key, v)
	return v
}

// Add increments the number under key by delta.
func (s *Store) Add(key string, delta float64) {
	s.SetFloat(key, s.numbers[key]+delta)
}

func (s *Store) UpdateBool(key string, v bool) { s.bools[key] = v }

func (s *Store) UpdateFloat(key string, v float64) { s.numbers[key] = v }

func (s *Store) UpdateColor(key string, c surface.Color) { s.colors[key] = c.Clamped() }

// ClearColor forgets the color under key, e.g. for an empty clip slot.
func (s *Store) ClearColor(key string) { delete(s.colors, key) }

// Invoke runs the named action. A missing backend or action is a no-op.
func (s *Store) Invoke(name string, args ...float64) bool {
	if s.invoker == nil || !s.invoker.Invoke(name, args...) {
		s.log.WithField("action", name).Debug("action not available")
		return false
	}
	return true
}

// Keys returns every stored key, sorted.
func (s *Store) Keys() []string {
	seen := map[string]struct{}{}
	for k := range s.bools {
		seen[k] = struct{}{}
	}
	for k := range s.numbers {
		seen[k] = struct{}{}
	}
	for k := range s.colors {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) notify(key string, v interface{}) {
	for _, fn := range s.onSet {
		fn(key, v)
	}
}

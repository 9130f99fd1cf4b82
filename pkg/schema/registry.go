package schema

import (
	"fmt"
	"sync"

	"github.com/dmitrymomot/tableschema/pkg/validation"
)

type namedElement struct {
	fn      validation.ElementPredicate
	message string
}

type namedSeries struct {
	fn      validation.SeriesPredicate
	message string
}

// Registry maps names used in schema files to user code.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	callables map[string]validation.Callable
	elements  map[string]namedElement
	series    map[string]namedSeries
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		callables: make(map[string]validation.Callable),
		elements:  make(map[string]namedElement),
		series:    make(map[string]namedSeries),
	}
}

// RegisterCallable makes fn available to "callable" rule nodes.
func (r *Registry) RegisterCallable(name string, fn validation.Callable) error {
	if fn == nil {
		return validation.ErrNilCallable
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.callables[name]; ok {
		return fmt.Errorf("%w: callable %q", ErrDuplicateRule, name)
	}
	r.callables[name] = fn
	return nil
}

// RegisterElement makes fn available to "element" rule nodes. message is used
// unless the node sets its own.
func (r *Registry) RegisterElement(name string, fn validation.ElementPredicate, message string) error {
	if fn == nil {
		return validation.ErrNilPredicate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.elements[name]; ok {
		return fmt.Errorf("%w: element %q", ErrDuplicateRule, name)
	}
	r.elements[name] = namedElement{fn: fn, message: message}
	return nil
}

// RegisterSeries makes fn available to "series" rule nodes. message is used
// unless the node sets its own.
func (r *Registry) RegisterSeries(name string, fn validation.SeriesPredicate, message string) error {
	if fn == nil {
		return validation.ErrNilPredicate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.series[name]; ok {
		return fmt.Errorf("%w: series %q", ErrDuplicateRule, name)
	}
	r.series[name] = namedSeries{fn: fn, message: message}
	return nil
}

func (r *Registry) callable(name string) (validation.Callable, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.callables[name]
	return fn, ok
}

func (r *Registry) element(name string) (namedElement, bool) {
	if r == nil {
		return namedElement{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.elements[name]
	return e, ok
}

func (r *Registry) seriesPredicate(name string) (namedSeries, bool) {
	if r == nil {
		return namedSeries{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.series[name]
	return s, ok
}

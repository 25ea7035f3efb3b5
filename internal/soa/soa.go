// Package soa provides the generic Service-Oriented-Architecture pipeline
// framework every trading service in this module is built on: a keyed store
// that publishes ordered ProcessAdd/ProcessUpdate/ProcessRemove notifications
// to its registered listeners.
//
// Propagation is entirely synchronous and single-threaded: a call to Put or
// Delete runs every registered listener's handler to completion, in
// registration order, on the calling goroutine, before returning. There is no
// internal queue and no concurrency primitive here - that is a deliberate
// match to the cooperative, single-threaded delivery model the pipeline
// requires, not an oversight.
package soa

import (
	"fmt"

	"bond-trading-pipeline/internal/errors"
)

// Listener is implemented by anything that wants to observe a keyed store's
// publications for record type V.
type Listener[V any] interface {
	ProcessAdd(v V)
	ProcessUpdate(v V)
	ProcessRemove(v V)
}

// ListenerFuncs is a variant-tagged listener handle: a value type wrapping
// plain closures, so a Service can register listeners for a record type
// without requiring every caller to declare a named type satisfying
// Listener[V]. Nil funcs are treated as no-ops.
type ListenerFuncs[V any] struct {
	OnAdd    func(V)
	OnUpdate func(V)
	OnRemove func(V)
}

func (l ListenerFuncs[V]) ProcessAdd(v V) {
	if l.OnAdd != nil {
		l.OnAdd(v)
	}
}

func (l ListenerFuncs[V]) ProcessUpdate(v V) {
	if l.OnUpdate != nil {
		l.OnUpdate(v)
	}
}

func (l ListenerFuncs[V]) ProcessRemove(v V) {
	if l.OnRemove != nil {
		l.OnRemove(v)
	}
}

// Store is the keyed store every Service holds. It owns its records by
// value and fires listener notifications in registration order whenever a
// key is added, replaced or explicitly removed.
type Store[V any] struct {
	data      map[string]V
	listeners []Listener[V]
	owner     any
}

// NewStore constructs an empty keyed store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{data: make(map[string]V)}
}

// BindOwner records the Service that holds this Store, so AddListener can
// reject the one topology that would re-enter OnMessage for the same key:
// a service registering itself as a listener of its own output. Services
// call this once from their constructor, right after constructing the
// Store.
func (s *Store[V]) BindOwner(owner any) {
	s.owner = owner
}

// AddListener registers a listener. Listeners are notified in the order they
// were registered. Panics if l is this Store's own owner: a service cannot
// listen to its own publications, since that would re-enter its own
// OnMessage with the same key it just produced.
func (s *Store[V]) AddListener(l Listener[V]) {
	if s.owner != nil && any(l) == s.owner {
		panic(fmt.Sprintf("soa: %T cannot register itself as a listener of its own store", l))
	}
	s.listeners = append(s.listeners, l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Store[V]) GetListeners() []Listener[V] {
	return s.listeners
}

// GetData returns the record stored under key, or a KeyNotFoundError.
func (s *Store[V]) GetData(key string) (V, error) {
	v, ok := s.data[key]
	if !ok {
		var zero V
		return zero, &errors.KeyNotFoundError{Key: key}
	}
	return v, nil
}

// Has reports whether key is currently present.
func (s *Store[V]) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Put stores v under key, firing ProcessAdd on every listener if key is new,
// or ProcessUpdate if key already held a value. Returns true if this was an
// Add, false if it was an Update.
func (s *Store[V]) Put(key string, v V) bool {
	_, existed := s.data[key]
	s.data[key] = v
	if existed {
		for _, l := range s.listeners {
			l.ProcessUpdate(v)
		}
		return false
	}
	for _, l := range s.listeners {
		l.ProcessAdd(v)
	}
	return true
}

// PutSilent stores v under key without notifying any listener. Reports
// whether key was previously absent. Pairs with Notify for services that
// store one representation of a record but publish another (MarketDataService
// stores the sorted book but republishes the as-received one).
func (s *Store[V]) PutSilent(key string, v V) bool {
	_, existed := s.data[key]
	s.data[key] = v
	return !existed
}

// Notify fires ProcessAdd (if isAdd) or ProcessUpdate on every registered
// listener with v, without touching the store.
func (s *Store[V]) Notify(isAdd bool, v V) {
	if isAdd {
		for _, l := range s.listeners {
			l.ProcessAdd(v)
		}
		return
	}
	for _, l := range s.listeners {
		l.ProcessUpdate(v)
	}
}

// DeleteSilent removes key without notifying any listener. Pairs with
// PutSilent/Notify for services that need to erase a record on a zero-sized
// reversal without publishing a removal (RiskService erasing a PV01 entry
// whose reversed quantity nets to zero).
func (s *Store[V]) DeleteSilent(key string) (V, bool) {
	v, ok := s.data[key]
	if ok {
		delete(s.data, key)
	}
	return v, ok
}

// Delete removes key, firing ProcessRemove with the removed value on every
// listener. Reports whether the key was present.
func (s *Store[V]) Delete(key string) (V, bool) {
	v, ok := s.data[key]
	if !ok {
		return v, false
	}
	delete(s.data, key)
	for _, l := range s.listeners {
		l.ProcessRemove(v)
	}
	return v, true
}

// Len returns the number of keys currently stored.
func (s *Store[V]) Len() int {
	return len(s.data)
}

// Keys returns all currently stored keys, in unspecified order.
func (s *Store[V]) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

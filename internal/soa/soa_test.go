package soa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bond-trading-pipeline/internal/errors"
)

func TestStore_GetData_KeyNotFound(t *testing.T) {
	s := NewStore[string]()
	_, err := s.GetData("missing")
	require.Error(t, err)
	var knf *errors.KeyNotFoundError
	require.True(t, errors.As(err, &knf))
}

func TestStore_Put_AddThenUpdate(t *testing.T) {
	s := NewStore[int]()
	var adds, updates []int
	s.AddListener(ListenerFuncs[int]{
		OnAdd:    func(v int) { adds = append(adds, v) },
		OnUpdate: func(v int) { updates = append(updates, v) },
	})

	isAdd := s.Put("k", 1)
	require.True(t, isAdd)
	isAdd = s.Put("k", 2)
	require.False(t, isAdd)

	require.Equal(t, []int{1}, adds)
	require.Equal(t, []int{2}, updates)

	v, err := s.GetData("k")
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestStore_Replay_IsIdempotentAdd(t *testing.T) {
	// Invariant: feeding the same value twice yields exactly one Add
	// followed by one Update; the stored record equals the latest input.
	s := NewStore[string]()
	var events []string
	s.AddListener(ListenerFuncs[string]{
		OnAdd:    func(v string) { events = append(events, "add:"+v) },
		OnUpdate: func(v string) { events = append(events, "update:"+v) },
	})

	s.Put("T2Y", "first")
	s.Put("T2Y", "first")

	require.Equal(t, []string{"add:first", "update:first"}, events)
}

func TestStore_Delete_FiresRemove(t *testing.T) {
	s := NewStore[int]()
	var removed []int
	s.AddListener(ListenerFuncs[int]{
		OnRemove: func(v int) { removed = append(removed, v) },
	})
	s.Put("k", 5)
	v, ok := s.Delete("k")
	require.True(t, ok)
	require.Equal(t, 5, v)
	require.Equal(t, []int{5}, removed)

	_, ok = s.Delete("k")
	require.False(t, ok)
}

func TestStore_ListenersNotifiedInRegistrationOrder(t *testing.T) {
	s := NewStore[int]()
	var order []string
	s.AddListener(ListenerFuncs[int]{OnAdd: func(int) { order = append(order, "first") }})
	s.AddListener(ListenerFuncs[int]{OnAdd: func(int) { order = append(order, "second") }})
	s.Put("k", 1)
	require.Equal(t, []string{"first", "second"}, order)
}

// selfListener is a stand-in for a Service that both owns a Store[int] and
// implements Listener[int] for that same record type, the shape every
// passthrough service (streaming, tradebooking, pricing, ...) has. The field
// keeps the type non-zero-size: distinct allocations of a zero-size type may
// share one address, which would make two instances compare equal.
type selfListener struct{ _ byte }

func (selfListener) ProcessAdd(int)    {}
func (selfListener) ProcessUpdate(int) {}
func (selfListener) ProcessRemove(int) {}

func TestStore_AddListener_RejectsOwnerAsListener(t *testing.T) {
	s := NewStore[int]()
	owner := &selfListener{}
	s.BindOwner(owner)

	require.Panics(t, func() { s.AddListener(owner) })
}

func TestStore_AddListener_AllowsNonOwnerOfSameType(t *testing.T) {
	s := NewStore[int]()
	s.BindOwner(&selfListener{})

	other := &selfListener{}
	require.NotPanics(t, func() { s.AddListener(other) })
}

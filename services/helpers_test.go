package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScopeLockerSerializesSameScope(t *testing.T) {
	locker := NewScopeLocker()
	categoryID := 7

	var mu sync.Mutex
	events := make([]string, 0, 4)
	record := func(s string) {
		mu.Lock()
		events = append(events, s)
		mu.Unlock()
	}

	unlock := locker.Lock(1, &categoryID)
	record("first acquired")

	done := make(chan struct{})
	go func() {
		defer close(done)
		u := locker.Lock(1, &categoryID)
		record("second acquired")
		u()
	}()

	time.Sleep(20 * time.Millisecond)
	record("first released")
	unlock()
	<-done

	require.Equal(t, []string{"first acquired", "first released", "second acquired"}, events)
}

func TestScopeLockerIndependentScopes(t *testing.T) {
	locker := NewScopeLocker()
	categoryA, categoryB := 1, 2

	unlockA := locker.Lock(1, &categoryA)
	defer unlockA()

	acquired := make(chan struct{})
	go func() {
		u := locker.Lock(1, &categoryB)
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("different category scope must not block")
	}
}

func TestScopeLockerNilCategoryIsItsOwnScope(t *testing.T) {
	locker := NewScopeLocker()
	categoryID := 1

	unlockNil := locker.Lock(1, nil)
	defer unlockNil()

	acquired := make(chan struct{})
	go func() {
		u := locker.Lock(1, &categoryID)
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("nil category must not share a lock with category 1")
	}
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStorePerActorIsolation(t *testing.T) {
	store := NewSessionStore()

	a := store.Start(1, 10)
	a.Step = StepPrice
	b := store.Start(1, 20)
	b.Step = StepName

	// Sessions of different actors in the same chat never alias.
	require.NotSame(t, a, b)
	assert.Equal(t, StepPrice, store.Get(1, 10).Step)
	assert.Equal(t, StepName, store.Get(1, 20).Step)
	assert.Nil(t, store.Get(2, 10))
}

func TestSessionStoreStartClearsPrior(t *testing.T) {
	store := NewSessionStore()

	old := store.Start(1, 10)
	old.Step = StepPoster
	old.Draft.Name = "Old"

	fresh := store.Start(1, 10)
	assert.Equal(t, StepNone, fresh.Step)
	assert.Empty(t, fresh.Draft.Name)
	assert.Same(t, fresh, store.Get(1, 10))
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore()
	store.Start(1, 10)
	store.Clear(1, 10)
	assert.Nil(t, store.Get(1, 10))

	// Clearing a missing session is a no-op.
	store.Clear(1, 10)
}

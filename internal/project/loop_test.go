package project

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopSerializes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLoop()
	go l.Run(ctx)

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Do(ctx, func() { counter++ }))
		}()
	}
	wg.Wait()

	var got int
	require.NoError(t, l.Do(ctx, func() { got = counter }))
	assert.Equal(t, 50, got)
}

func TestLoopStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop()
	go l.Run(ctx)
	cancel()
	<-l.Done()

	assert.ErrorIs(t, l.Do(context.Background(), func() {}), ErrLoopStopped)
	l.Post(func() { t.Error("ran after stop") })
}

func TestSessionOnRealLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLoop()
	go l.Run(ctx)

	s := NewSession(Options{Post: l.Post, SaveDelay: 10 * time.Millisecond, AutosaveEvery: time.Hour, BackupEvery: time.Hour})
	require.NoError(t, l.Do(ctx, func() {
		require.NoError(t, s.Open("blank"))
		_, _ = s.Save()
	}))

	assert.Eventually(t, func() bool {
		var status SaveStatus
		_ = l.Do(ctx, func() { status = s.Status() })
		return status == AutoSaving
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, l.Do(ctx, s.ReturnToMenu))
}

package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/gopher-surface/internal/logger"
)

func TestPostedWorkRunsInOrder(t *testing.T) {
	l := New(logger.Discard(), 0)
	ctx, cancel := context.WithCancel(context.Background())

	var got []int
	for i := 0; i < 5; i++ {
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.True(t, l.Post(cancel))

	require.NoError(t, l.Run(ctx, time.Hour, nil))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestTickRunsOnLoop(t *testing.T) {
	l := New(logger.Discard(), 1)
	ctx, cancel := context.WithCancel(context.Background())

	ticks := 0
	err := l.Run(ctx, time.Millisecond, func() {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ticks, 3)
}

func TestFailStopsRun(t *testing.T) {
	l := New(logger.Discard(), 1)
	boom := errors.New("input port closed")
	l.Fail(boom)
	l.Fail(errors.New("second"))

	err := l.Run(context.Background(), time.Hour, nil)
	assert.ErrorIs(t, err, boom)
	assert.False(t, l.Post(func() {}))
}

func TestPanicIsRecovered(t *testing.T) {
	l := New(logger.Discard(), 4)
	ctx, cancel := context.WithCancel(context.Background())

	ran := false
	l.Post(func() { panic("bad action") })
	l.Post(func() { ran = true })
	l.Post(cancel)

	require.NoError(t, l.Run(ctx, time.Hour, nil))
	assert.True(t, ran)
}

func TestPostFromOtherGoroutines(t *testing.T) {
	l := New(logger.Discard(), 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	total := 0
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Post(func() { total++ })
			}
		}()
	}
	go func() {
		wg.Wait()
		l.Post(cancel)
	}()

	require.NoError(t, l.Run(ctx, time.Hour, nil))
	assert.Equal(t, 200, total)
	<-l.Done()
}

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCollection_Load(t *testing.T) {
	calls := 0
	c := NewCollection("numbers", func(ctx context.Context) ([]int, error) {
		calls++
		return []int{1, 2, 3}, nil
	})

	var received [][]int
	c.Subscribe(func(items []int) {
		received = append(received, items)
	})

	require.NoError(t, c.Load(context.Background()))

	state := c.State()
	assert.Equal(t, []int{1, 2, 3}, state.Items)
	assert.True(t, state.Loaded)
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, [][]int{{1, 2, 3}}, received)
}

func TestCollection_LoadErrorKeepsItems(t *testing.T) {
	fail := false
	c := NewCollection("numbers", func(ctx context.Context) ([]int, error) {
		if fail {
			return nil, errors.New("backend indisponível")
		}
		return []int{7}, nil
	})

	require.NoError(t, c.Load(context.Background()))

	notified := 0
	c.Subscribe(func([]int) { notified++ })

	fail = true
	err := c.Load(context.Background())
	require.Error(t, err)

	state := c.State()
	assert.Equal(t, []int{7}, state.Items)
	assert.EqualError(t, state.Err, "backend indisponível")
	assert.False(t, state.Loading)
	assert.Equal(t, 0, notified)
}

func TestCollection_LoadingFlagDuringLoad(t *testing.T) {
	var c *Collection[int]
	c = NewCollection("numbers", func(ctx context.Context) ([]int, error) {
		assert.True(t, c.State().Loading)
		return nil, nil
	})

	require.NoError(t, c.Load(context.Background()))
	assert.False(t, c.State().Loading)
}

func TestCollection_Unsubscribe(t *testing.T) {
	c := NewCollection[string]("names", nil)

	notified := 0
	unsubscribe := c.Subscribe(func([]string) { notified++ })

	c.Replace([]string{"a"})
	unsubscribe()
	c.Replace([]string{"b"})

	assert.Equal(t, 1, notified)
	assert.Equal(t, []string{"b"}, c.Items())
}

func TestCollection_SubscribersGetCopies(t *testing.T) {
	c := NewCollection[int]("numbers", nil)
	c.Subscribe(func(items []int) {
		items[0] = 99
	})

	c.Replace([]int{1})

	assert.Equal(t, []int{1}, c.Items())
}

func TestCollection_OutOfOrderLoadsKeepNewest(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	calls := 0
	c := NewCollection("deals", func(ctx context.Context) ([]int, error) {
		calls++
		if calls == 1 {
			close(entered)
			<-release
			return []int{1}, nil
		}
		return []int{2}, nil
	})

	var received [][]int
	c.Subscribe(func(items []int) {
		received = append(received, items)
	})

	done := make(chan error)
	go func() {
		done <- c.Load(context.Background())
	}()
	<-entered

	// a segunda carga começa depois e termina antes da primeira
	require.NoError(t, c.Load(context.Background()))
	assert.False(t, c.State().Loading)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []int{2}, c.Items())
	assert.Equal(t, [][]int{{2}}, received)
	assert.False(t, c.State().Loading)
}

func TestCollection_ReplaceSupersedesInFlightLoad(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	c := NewCollection("deals", func(ctx context.Context) ([]int, error) {
		close(entered)
		<-release
		return []int{1}, nil
	})

	done := make(chan error)
	go func() {
		done <- c.Load(context.Background())
	}()
	<-entered

	c.Replace([]int{9})

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []int{9}, c.Items())
	assert.False(t, c.State().Loading)
}

package eventbus

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type created struct {
	id int
}

type deleted struct {
	id int
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestPublish_DispatchesByType(t *testing.T) {
	publisher := NewEventPublisher(quietLogger())
	var got []string
	publisher.Subscribe(func(e *created) { got = append(got, "created") })
	publisher.Subscribe(func(e *deleted) { got = append(got, "deleted") })
	publisher.Subscribe(func(e *created) { got = append(got, "created again") })

	publisher.Publish(&created{id: 1})
	publisher.Publish(&deleted{id: 1})

	require.Equal(t, []string{"created", "created again", "deleted"}, got)
}

func TestPublish_NoSubscribersIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *created) { t.Error("should not be called") })
	publisher.Publish(&deleted{})

	require.Contains(t, buf.String(), "no matching subscribers")
}

func TestPublish_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	publisher := NewEventPublisher(log)
	called := false
	publisher.Subscribe(func(e *created) { panic("boom") })
	publisher.Subscribe(func(e *created) { called = true })

	require.NotPanics(t, func() { publisher.Publish(&created{}) })
	require.True(t, called)
	require.Contains(t, buf.String(), "panicked")
}

func TestMatchSignature(t *testing.T) {
	require.True(t, MatchSignature(func(e *created) {}, []interface{}{&created{}}))
	require.False(t, MatchSignature(func(e *created) {}, []interface{}{&deleted{}}))
	require.False(t, MatchSignature(func(e *created) {}, []interface{}{}))
	require.False(t, MatchSignature(func(e *created) {}, []interface{}{&created{}, &created{}}))
	require.True(t, MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}))
	require.True(t, MatchSignature(func(e *created) {}, []interface{}{nil}))
	require.False(t, MatchSignature(func(e created) {}, []interface{}{nil}))
	require.False(t, MatchSignature("not a func", []interface{}{}))
}

func TestUnsubscribeAndClear(t *testing.T) {
	publisher := NewEventPublisher(quietLogger())
	onCreated := func(e *created) {}
	onDeleted := func(e *deleted) {}
	publisher.Subscribe(onCreated)
	publisher.Subscribe(onDeleted)
	require.Equal(t, 2, publisher.SubscribersCount())

	publisher.Unsubscribe(onCreated)
	require.Equal(t, 1, publisher.SubscribersCount())

	publisher.Clear()
	require.Zero(t, publisher.SubscribersCount())
}

func TestSubscribe_RejectsNonFunctions(t *testing.T) {
	require.Panics(t, func() { NewEventPublisher(quietLogger()).Subscribe(42) })
}

func TestPublish_Concurrent(t *testing.T) {
	publisher := NewEventPublisher(quietLogger())
	var mu sync.Mutex
	count := 0
	publisher.Subscribe(func(e *created) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			publisher.Publish(&created{id: i})
		}()
	}
	wg.Wait()
	require.Equal(t, 20, count)
}

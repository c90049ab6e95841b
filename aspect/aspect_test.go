package aspect_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/CherkashinEvgeny/goaspect"
	"github.com/CherkashinEvgeny/goaspect/aspect"
)

type event struct {
	aspect string
	phase  string
	method string
	params []any
}

type recordingAspect struct {
	name   string
	events *[]event
}

func (r recordingAspect) Handler(_ reflect.Type, method string) aspect.Handler {
	return recordingHandler{aspect: r, method: method}
}

type recordingHandler struct {
	aspect recordingAspect
	method string
}

func (h recordingHandler) Before(in ...any) {
	*h.aspect.events = append(*h.aspect.events, event{aspect: h.aspect.name, phase: "before", method: h.method, params: in})
}

func (h recordingHandler) After(out ...any) {
	*h.aspect.events = append(*h.aspect.events, event{aspect: h.aspect.name, phase: "after", method: h.method, params: out})
}

func TestWeave(t *testing.T) {
	t.Parallel()

	obj, err := aspect.Bind(newStore())
	require.NoError(t, err)

	var events []event
	originals, err := aspect.Weave(obj, reflect.TypeOf(&store{}), recordingAspect{name: "rec", events: &events}, "Put", "Get")
	require.NoError(t, err)
	require.Len(t, originals, 2)

	_, err = obj.Call("Put", "a", 1)
	require.NoError(t, err)
	_, err = obj.Call("Get", "b")
	require.ErrorIs(t, err, errNotFound)

	require.Len(t, events, 4)
	assert.Equal(t, event{aspect: "rec", phase: "before", method: "Put", params: []any{"a", 1}}, events[0])
	assert.Equal(t, event{aspect: "rec", phase: "after", method: "Put", params: []any{nil, nil}}, events[1])
	assert.Equal(t, "Get", events[3].method)
	assert.Equal(t, 0, events[3].params[0])
	assert.ErrorIs(t, events[3].params[1].(error), errNotFound)

	obj.Assign("Put", originals[0])
	obj.Assign("Get", originals[1])
	_, err = obj.Call("Get", "a")
	require.NoError(t, err)
	assert.Len(t, events, 4)
}

func TestWeave_RestoresOnError(t *testing.T) {
	t.Parallel()

	obj, err := aspect.Bind(newStore())
	require.NoError(t, err)
	var events []event

	_, err = aspect.Weave(obj, nil, recordingAspect{name: "rec", events: &events}, "Put", "Missing")
	require.ErrorIs(t, err, goaspect.ErrInvalidMethod)

	_, err = obj.Call("Put", "a", 1)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestWeave_NilAspect(t *testing.T) {
	t.Parallel()

	obj, err := aspect.Bind(newStore())
	require.NoError(t, err)

	_, err = aspect.Weave(obj, nil, nil, "Put")
	assert.ErrorIs(t, err, goaspect.ErrInvalidAspect)
}

func TestGroup(t *testing.T) {
	t.Parallel()

	obj, err := aspect.Bind(newStore())
	require.NoError(t, err)

	var events []event
	group := aspect.Group{
		recordingAspect{name: "outer", events: &events},
		nil,
		recordingAspect{name: "inner", events: &events},
	}
	_, err = aspect.Weave(obj, nil, group, "Put")
	require.NoError(t, err)

	_, err = obj.Call("Put", "a", 1)
	require.NoError(t, err)

	order := make([]string, 0, len(events))
	for _, e := range events {
		order = append(order, e.aspect+" "+e.phase)
	}
	assert.Equal(t, []string{"outer before", "inner before", "inner after", "outer after"}, order)
}

func TestLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	obj, err := aspect.Bind(newStore())
	require.NoError(t, err)

	_, err = aspect.Weave(obj, reflect.TypeOf(&store{}), aspect.Logger(zap.New(core)), "Put", "Get")
	require.NoError(t, err)

	_, err = obj.Call("Put", "a", 1)
	require.NoError(t, err)
	_, err = obj.Call("Get", "missing")
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, "call", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "Put", entries[0].ContextMap()["method"])
	assert.Equal(t, "*aspect_test.store", entries[0].ContextMap()["type"])

	assert.Equal(t, "return", entries[1].Message)

	assert.Equal(t, "call", entries[2].Message)
	assert.Equal(t, "Get", entries[2].ContextMap()["method"])

	assert.Equal(t, "call failed", entries[3].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, errNotFound.Error(), entries[3].ContextMap()["error"])
}

func TestLogger_Nil(t *testing.T) {
	t.Parallel()

	obj, err := aspect.Bind(newStore())
	require.NoError(t, err)

	_, err = aspect.Weave(obj, nil, aspect.Logger(nil), "Put")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, _ = obj.Call("Put", "a", 1)
	})
}

type countingAspect struct {
	handlers *int
	inner    aspect.Aspect
}

func (c countingAspect) Handler(ttype reflect.Type, method string) aspect.Handler {
	*c.handlers++
	if c.inner == nil {
		return nil
	}
	return c.inner.Handler(ttype, method)
}

func TestWeave_HandlerPerCall(t *testing.T) {
	t.Parallel()

	obj, err := aspect.Bind(newStore())
	require.NoError(t, err)

	var events []event
	handlers := 0
	_, err = aspect.Weave(obj, nil, countingAspect{handlers: &handlers, inner: recordingAspect{name: "rec", events: &events}}, "Put")
	require.NoError(t, err)
	assert.Equal(t, 0, handlers)

	for i := 0; i < 3; i++ {
		_, err = obj.Call("Put", "a", i)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, handlers)
	assert.Len(t, events, 6)
}

func TestWeave_NilHandler(t *testing.T) {
	t.Parallel()

	obj, err := aspect.Bind(newStore())
	require.NoError(t, err)

	handlers := 0
	_, err = aspect.Weave(obj, nil, countingAspect{handlers: &handlers}, "Get")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err = obj.Call("Get", "missing")
	})
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, 1, handlers)
}

func TestGroup_SkipsNilHandlers(t *testing.T) {
	t.Parallel()

	obj, err := aspect.Bind(newStore())
	require.NoError(t, err)

	var events []event
	handlers := 0
	group := aspect.Group{
		countingAspect{handlers: &handlers},
		recordingAspect{name: "rec", events: &events},
	}
	_, err = aspect.Weave(obj, nil, group, "Put")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err = obj.Call("Put", "a", 1)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, handlers)
	assert.Len(t, events, 2)
}

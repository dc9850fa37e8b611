package live

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/tck/pkg/render"
	"github.com/dkoosis/tck/pkg/tck"
)

type recordingSender struct {
	msgs []tea.Msg
}

func (s *recordingSender) Send(msg tea.Msg) { s.msgs = append(s.msgs, msg) }

type sample struct{}

func feed(m model, msgs []tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestReporter_TranslatesCalls(t *testing.T) {
	s := &recordingSender{}
	k := tck.New(tck.WithPlatform("plat"))
	require.NoError(t, k.RegisterInstantiator("ok", tck.InstantiatorFunc(func(t reflect.Type) (any, error) {
		return reflect.New(t).Interface(), nil
	})))
	require.NoError(t, k.RegisterInstantiator("broken", tck.InstantiatorFunc(func(reflect.Type) (any, error) {
		return nil, errors.New("refused\nsecond line")
	})))
	set := tck.NewCandidateSet(tck.Candidate{Name: "x.sample", Description: "Sample", Type: reflect.TypeFor[sample]()})

	k.Run(set, &Reporter{program: s})

	require.NotEmpty(t, s.msgs)
	assert.Equal(t, startMsg{platform: "plat", total: 2}, s.msgs[0])
	assert.Equal(t, doneMsg{}, s.msgs[len(s.msgs)-1])

	m := feed(newModel(render.MonoTheme()), s.msgs)
	assert.True(t, m.done)
	assert.Equal(t, 2, m.finished)
	assert.Equal(t, 1, m.passed)
	require.Len(t, m.failures, 1)
	assert.Equal(t, "broken", m.failures[0].instantiator)

	view := m.View()
	assert.Contains(t, view, "2/2")
	assert.Contains(t, view, "X Sample / broken: refused")
	assert.NotContains(t, view, "second line")
}

func TestModel_FailureWithoutException(t *testing.T) {
	m := feed(newModel(render.MonoTheme()), []tea.Msg{
		startMsg{total: 3},
		trialMsg{candidate: "A", instantiator: "std"},
		outcomeMsg{ok: false},
		endTestMsg{},
	})
	assert.Equal(t, 1, m.finished)
	assert.Zero(t, m.passed)
	require.Len(t, m.failures, 1)
	assert.NoError(t, m.failures[0].err)
	assert.InDelta(t, 1.0/3, m.percent(), 1e-9)
	assert.Contains(t, m.View(), "1/3")
	assert.Contains(t, m.View(), "? A / std")
}

func TestModel_CapsFailureList(t *testing.T) {
	var msgs []tea.Msg
	for i := 0; i < maxFailuresShown+3; i++ {
		msgs = append(msgs, trialMsg{candidate: "C", instantiator: "i"}, outcomeMsg{err: errors.New("boom")}, endTestMsg{})
	}
	m := feed(newModel(render.MonoTheme()), msgs)
	assert.Equal(t, maxFailuresShown, strings.Count(m.View(), "C / i: boom"))
}

func TestModel_PercentWithoutTrials(t *testing.T) {
	assert.Zero(t, newModel(render.MonoTheme()).percent())
}

func TestRun_ReturnsRunError(t *testing.T) {
	var out bytes.Buffer
	want := errors.New("loader failed")
	err := Run(context.Background(), &out, render.MonoTheme(), func(_ context.Context, r tck.Reporter) error {
		r.StartTests("plat", []string{"A"}, []string{"std"})
		r.EndTests()
		return want
	})
	assert.ErrorIs(t, err, want)
}

package biz

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"randkit/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	runs []*Run
	err  error
}

func (s *captureSink) Publish(ctx context.Context, run *Run) error {
	s.runs = append(s.runs, run)
	return s.err
}

type fixedIDs struct{ id int64 }

func (g fixedIDs) Generate(ctx context.Context, host string) (int64, error) {
	return g.id, nil
}

func plainHarness(verbose bool) *conf.Harness {
	color := false
	return &conf.Harness{Verbose: verbose, Color: &color}
}

func moduleA(m *M) {
	m.Declare("alpha")
	m.Run(passingTest)
	m.Run(failingTest)
	m.Run(passingTest)
}

func moduleB(m *M) {
	m.Declare("beta")
	m.Run(passingTest)
	m.Run(passingTest)
}

func TestRunner_Aggregation(t *testing.T) {
	sink := &captureSink{}
	r := NewRunner(plainHarness(false), Modules{moduleA}, sink, fixedIDs{id: 7}, log.NewStdLogger(io.Discard))
	r.Register(moduleB)

	var out bytes.Buffer
	s, err := r.Run(context.Background(), &out)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Total())
	assert.Equal(t, 1, s.Failed())
	assert.Equal(t, 4, s.Passed())
	assert.True(t, s.Failing())
	assert.Equal(t, "4/5 passing", s.String())
	assert.Equal(t, 1, ExitCode(s, nil))

	report := out.String()
	assert.True(t, strings.HasPrefix(report, "\n TEST | 4/5 PASSING\n"))
	assert.Contains(t, report, " FAIL | alpha (")
	assert.Contains(t, report, " PASS | beta (")
	assert.NotContains(t, report, "Trace:", "quiet mode renders banners only")

	require.Len(t, sink.runs, 1)
	run := sink.runs[0]
	assert.Equal(t, int64(7), run.ID)
	assert.Same(t, s, run.Summary)
	assert.Contains(t, run.Report, " FAIL | alpha (")
	assert.NotContains(t, run.Report, "\033[")
}

func TestRunner_AllPassing(t *testing.T) {
	r := NewRunner(plainHarness(true), Modules{moduleB}, nil, nil, log.NewStdLogger(io.Discard))

	var out bytes.Buffer
	s, err := r.Run(context.Background(), &out)
	require.NoError(t, err)
	assert.False(t, s.Failing())
	assert.Equal(t, 0, ExitCode(s, nil))
	assert.Contains(t, out.String(), " PASS | passingTest (")
}

func TestRunner_VerboseTrace(t *testing.T) {
	r := NewRunner(plainHarness(true), Modules{moduleA}, nil, nil, log.NewStdLogger(io.Discard))

	var out bytes.Buffer
	_, err := r.Run(context.Background(), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "      |     Trace:    harness_test.go:")
	assert.Contains(t, out.String(), "      |     Error:    value 42 out of range\n")
}

func TestRunner_SinkFailureIgnored(t *testing.T) {
	sink := &captureSink{err: errors.New("redis down")}
	r := NewRunner(plainHarness(false), Modules{moduleB}, sink, fixedIDs{}, log.NewStdLogger(io.Discard))

	s, err := r.Run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.False(t, s.Failing())
	assert.Len(t, sink.runs, 1)
}

func TestRunner_Fatal(t *testing.T) {
	c := plainHarness(false)
	c.MaxTests = 2
	sink := &captureSink{}
	var logs bytes.Buffer
	logger := log.NewFilter(log.NewStdLogger(&logs), log.FilterLevel(log.LevelInfo))
	r := NewRunner(c, Modules{moduleB, moduleA}, sink, nil, logger)

	var out bytes.Buffer
	s, err := r.Run(context.Background(), &out)
	assert.Nil(t, s)
	// 致命错误只由调用方输出一次 FATAL 诊断
	assert.Empty(t, logs.String())

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "runner_test.go", fe.File)
	assert.Equal(t, 2, ExitCode(s, err))
	assert.Empty(t, out.String())
	assert.Empty(t, sink.runs)
}

func TestRunner_PanickingModule(t *testing.T) {
	boom := func(m *M) {
		m.Declare("boom")
		panic("setup failed")
	}
	r := NewRunner(nil, Modules{moduleA, boom}, nil, nil, log.NewStdLogger(io.Discard))

	var out bytes.Buffer
	s, err := r.Run(context.Background(), &out)
	assert.Equal(t, 2, ExitCode(s, err))
	assert.Empty(t, out.String())

	diag := FatalDiagnostic(err, false)
	assert.True(t, strings.HasPrefix(diag, "FATALrunner_test.go:"), diag)
	assert.Contains(t, diag, "module panicked: setup failed")
	assert.Equal(t, 1, strings.Count(diag, "\n"))
}

func TestRunner_ModuleOrder(t *testing.T) {
	var order []string
	mod := func(name string) ModuleFunc {
		return func(m *M) {
			m.Declare(name)
			order = append(order, name)
		}
	}
	r := NewRunner(nil, Modules{mod("one"), mod("two")}, nil, nil, log.NewStdLogger(io.Discard))
	r.Register(mod("three"))

	s, err := r.Run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, order)
	assert.Equal(t, 0, s.Total())
}

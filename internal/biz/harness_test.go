package biz

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passingTest(t *T) {}

func failingTest(t *T) {
	t.Errorf("value %d out of range", 42)
	t.Error("second", " error")
}

func TestRunModule_Records(t *testing.T) {
	rec, err := runModule(func(m *M) {
		m.Declare("demo")
		m.Run(passingTest)
		m.Run(failingTest)
		m.RunNamed("custom", passingTest)
	}, Limits{})
	require.NoError(t, err)

	assert.Equal(t, "demo", rec.Name)
	assert.Equal(t, "harness_test.go", rec.File)
	require.Len(t, rec.Tests, 3)
	assert.Equal(t, "passingTest", rec.Tests[0].Name)
	assert.Equal(t, "failingTest", rec.Tests[1].Name)
	assert.Equal(t, "custom", rec.Tests[2].Name)

	assert.False(t, rec.Tests[0].Failed())
	assert.True(t, rec.Tests[1].Failed())
	assert.Equal(t, 1, rec.Failed())
	assert.Equal(t, 2, rec.Passed())
	assert.Equal(t, 2, rec.ErrorCount())

	errs := rec.Tests[1].Errors
	assert.Equal(t, "value 42 out of range", errs[0].Message)
	assert.Equal(t, "second error", errs[1].Message)
	assert.Equal(t, "harness_test.go", errs[0].File)
	assert.Equal(t, errs[0].Line+1, errs[1].Line)
}

func TestT_ErrorfLine(t *testing.T) {
	var line int
	rec, err := runModule(func(m *M) {
		m.Declare("lines")
		m.Run(func(tt *T) {
			_, _, l, _ := runtime.Caller(0)
			line = l + 1
			tt.Errorf("boom")
		})
	}, Limits{})
	require.NoError(t, err)
	assert.Equal(t, line, rec.Tests[0].Errors[0].Line)
}

func TestRunModule_DefaultName(t *testing.T) {
	rec, err := runModule(undeclaredModule, Limits{})
	require.NoError(t, err)
	assert.Equal(t, "undeclaredModule", rec.Name)
}

func undeclaredModule(m *M) {
	m.Run(passingTest)
}

func TestRunModule_MaxTests(t *testing.T) {
	_, err := runModule(func(m *M) {
		m.Declare("overflow")
		m.Run(passingTest)
		m.Run(passingTest)
	}, Limits{MaxTests: 1})

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "harness_test.go", fe.File)
	assert.Contains(t, fe.Msg, "Test count has exceeded the max 1")
}

func TestRunModule_MaxErrors(t *testing.T) {
	_, err := runModule(func(m *M) {
		m.Declare("loop")
		m.Run(func(t *T) {
			for i := 0; ; i++ {
				t.Errorf("error %d", i)
			}
		})
	}, Limits{MaxErrors: 4})

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Msg, "Error count has exceeded the max 4")
	assert.Equal(t, "harness_test.go", fe.File)
}

func TestRunModule_MaxMessage(t *testing.T) {
	_, err := runModule(func(m *M) {
		m.Declare("long")
		m.Run(func(t *T) {
			t.Errorf("%s", strings.Repeat("x", 200))
		})
	}, Limits{MaxMessage: 128})

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Msg, "length 200 has exceeded the max 128")
}

func TestRunModule_PanickingTest(t *testing.T) {
	rec, err := runModule(func(m *M) {
		m.Declare("panics")
		m.Run(func(t *T) {
			var s []int
			_ = s[3]
		})
		m.Run(passingTest)
	}, Limits{})
	require.NoError(t, err)
	require.Len(t, rec.Tests, 2)
	assert.True(t, rec.Tests[0].Failed())
	assert.Contains(t, rec.Tests[0].Errors[0].Message, "panic:")
	assert.False(t, rec.Tests[1].Failed())
}

func TestRunModule_PanickingModule(t *testing.T) {
	var line int
	rec, err := runModule(func(m *M) {
		m.Declare("setup")
		m.Run(passingTest)
		_, _, l, _ := runtime.Caller(0)
		line = l + 1
		panic("bad setup")
	}, Limits{})
	assert.Nil(t, rec)

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "harness_test.go", fe.File)
	assert.Equal(t, line, fe.Line)
	assert.Equal(t, "module panicked: bad setup", fe.Msg)
}

func TestRunModule_RuntimeErrorInModule(t *testing.T) {
	var counts map[string]int
	_, err := runModule(func(m *M) {
		m.Declare("nil map")
		counts["x"]++
	}, Limits{})

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "harness_test.go", fe.File)
	assert.Greater(t, fe.Line, 0)
	assert.Contains(t, fe.Msg, "nil map")
}

func TestDeclareResetsTests(t *testing.T) {
	rec, err := runModule(func(m *M) {
		m.Run(passingTest)
		m.Declare("fresh")
		m.Run(failingTest)
	}, Limits{})
	require.NoError(t, err)
	require.Len(t, rec.Tests, 1)
	assert.Equal(t, "failingTest", rec.Tests[0].Name)
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "passingTest", funcName(TestFunc(passingTest)))
	var r Renderer
	assert.Equal(t, "paint", funcName(r.paint))
}

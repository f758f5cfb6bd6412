package biz

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_Growth(t *testing.T) {
	l := NewLog(8)
	assert.Equal(t, 8, l.Cap())

	tests := []struct {
		write   string
		wantLen int
		wantCap int
	}{
		{"abc", 3, 8},   // free 8 >= 4
		{"def", 6, 8},   // free 5 >= 4
		{"g", 7, 16},    // free 2 < 4，先翻倍
		{"hij", 10, 16}, // free 9 >= 8
		{"k", 11, 32},   // free 6 < 8
	}
	for _, tt := range tests {
		n, err := l.WriteString(tt.write)
		require.NoError(t, err)
		assert.Equal(t, len(tt.write), n)
		assert.Equal(t, tt.wantLen, l.Len(), "after %q", tt.write)
		assert.Equal(t, tt.wantCap, l.Cap(), "after %q", tt.write)
	}
	assert.Equal(t, "abcdefghijk", l.String())
}

func TestLog_Exhausted(t *testing.T) {
	l := NewLog(8)
	_, err := l.WriteString("abcdef")
	require.NoError(t, err)

	// 翻倍到 16 后剩余 10，仍然放不下
	_, err = l.Write([]byte(strings.Repeat("x", 11)))
	assert.True(t, errors.Is(err, ErrLogExhausted))
	assert.Equal(t, 16, l.Cap())
	assert.Equal(t, "abcdef", l.String(), "no partial write")

	err = l.Printf("%s", strings.Repeat("y", 10))
	require.NoError(t, err)
	assert.Equal(t, 16, l.Len())
}

func TestLog_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultLogCapacity, NewLog(0).Cap())
	assert.Equal(t, DefaultLogCapacity, NewLog(-1).Cap())
}

func TestLog_NeverTruncates(t *testing.T) {
	l := NewLog(16)
	var want strings.Builder
	for i := 0; i < 1000; i++ {
		line := strings.Repeat("z", i%7+1) + "\n"
		_, err := l.WriteString(line)
		require.NoError(t, err)
		want.WriteString(line)
		assert.GreaterOrEqual(t, l.Cap(), l.Len())
	}
	assert.Equal(t, want.String(), l.String())
}

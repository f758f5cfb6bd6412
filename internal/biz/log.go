package biz

import (
	"errors"
	"fmt"
)

// DefaultLogCapacity 报告缓冲区的初始容量
const DefaultLogCapacity = 4096

// ErrLogExhausted 单次写入在扩容之后仍然放不下
var ErrLogExhausted = errors.New("log buffer exhausted")

// Log 可增长的报告缓冲区
// 每次写入前，若剩余空间不足容量的一半则容量翻倍；永远不会截断写入
type Log struct {
	buf []byte
}

// NewLog 创建缓冲区，capacity <= 0 时使用 DefaultLogCapacity
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{buf: make([]byte, 0, capacity)}
}

// Len 已写入的字节数
func (l *Log) Len() int { return len(l.buf) }

// Cap 当前容量
func (l *Log) Cap() int { return cap(l.buf) }

// Bytes 返回已写入内容，调用方不应修改
func (l *Log) Bytes() []byte { return l.buf }

func (l *Log) String() string { return string(l.buf) }

// grow 剩余空间低于容量一半时翻倍
func (l *Log) grow() {
	if cap(l.buf)-len(l.buf) >= cap(l.buf)>>1 {
		return
	}
	buf := make([]byte, len(l.buf), cap(l.buf)<<1)
	copy(buf, l.buf)
	l.buf = buf
}

// Write 实现 io.Writer
func (l *Log) Write(p []byte) (int, error) {
	l.grow()
	if free := cap(l.buf) - len(l.buf); len(p) > free {
		return 0, fmt.Errorf("%w: write of %d bytes, %d free of %d", ErrLogExhausted, len(p), free, cap(l.buf))
	}
	l.buf = append(l.buf, p...)
	return len(p), nil
}

// WriteString 同 Write
func (l *Log) WriteString(s string) (int, error) {
	l.grow()
	if free := cap(l.buf) - len(l.buf); len(s) > free {
		return 0, fmt.Errorf("%w: write of %d bytes, %d free of %d", ErrLogExhausted, len(s), free, cap(l.buf))
	}
	l.buf = append(l.buf, s...)
	return len(s), nil
}

// Printf 格式化后整体写入
func (l *Log) Printf(format string, args ...any) error {
	_, err := l.WriteString(fmt.Sprintf(format, args...))
	return err
}

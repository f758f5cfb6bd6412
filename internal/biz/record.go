package biz

import (
	"fmt"
	"time"
)

// TestError 一条测试错误记录
type TestError struct {
	File    string // 源文件名（不含目录）
	Line    int    // 调用 Errorf 的行号
	Message string
}

// TestRecord 一次测试函数调用的结果
// 记录了至少一条错误即视为失败，测试函数返回后冻结
type TestRecord struct {
	Name     string
	Errors   []TestError
	Duration time.Duration
}

// Failed 是否失败
func (t *TestRecord) Failed() bool {
	return len(t.Errors) > 0
}

// ModuleRecord 一个测试模块的结果
type ModuleRecord struct {
	Name  string
	File  string
	Tests []*TestRecord
}

// Failed 失败的测试数
func (m *ModuleRecord) Failed() int {
	n := 0
	for _, t := range m.Tests {
		if t.Failed() {
			n++
		}
	}
	return n
}

// Passed 通过的测试数
func (m *ModuleRecord) Passed() int {
	return len(m.Tests) - m.Failed()
}

// ErrorCount 所有测试的错误总数
func (m *ModuleRecord) ErrorCount() int {
	n := 0
	for _, t := range m.Tests {
		n += len(t.Errors)
	}
	return n
}

// Duration 模块内所有测试耗时之和
func (m *ModuleRecord) Duration() time.Duration {
	var d time.Duration
	for _, t := range m.Tests {
		d += t.Duration
	}
	return d
}

// Summary 整次运行的聚合结果，取代进程级的失败标记
type Summary struct {
	Modules []*ModuleRecord
}

// Total 测试总数
func (s *Summary) Total() int {
	n := 0
	for _, m := range s.Modules {
		n += len(m.Tests)
	}
	return n
}

// Failed 失败的测试总数
func (s *Summary) Failed() int {
	n := 0
	for _, m := range s.Modules {
		n += m.Failed()
	}
	return n
}

// Passed 通过的测试总数
func (s *Summary) Passed() int {
	return s.Total() - s.Failed()
}

// Failing 任意模块存在失败测试
func (s *Summary) Failing() bool {
	return s.Failed() > 0
}

// Duration 所有模块耗时之和
func (s *Summary) Duration() time.Duration {
	var d time.Duration
	for _, m := range s.Modules {
		d += m.Duration()
	}
	return d
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d/%d passing", s.Passed(), s.Total())
}

// Run 一次完整运行，交给 ReportSink 落地
type Run struct {
	ID        int64
	Host      string
	StartedAt time.Time
	Elapsed   time.Duration
	Summary   *Summary
	Report    string // 不含 ANSI 颜色的完整报告
}

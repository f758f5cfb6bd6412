package biz

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// TestFunc 测试函数，通过 T 报告错误
type TestFunc func(t *T)

// ModuleFunc 模块函数，先 Declare 再逐个 Run 测试
type ModuleFunc func(m *M)

// Modules 注册到 Runner 的模块列表
type Modules []ModuleFunc

// Limits 可选的容量上限，0 表示不限制
// 超出上限说明测试写错了（例如死循环报错），按致命错误处理
type Limits struct {
	MaxTests   int // 每个模块的测试数
	MaxErrors  int // 每个测试的错误数
	MaxMessage int // 单条错误信息的字节数
}

// FatalError 测试框架内部不变量被破坏，整次运行必须终止
type FatalError struct {
	File string
	Line int
	Msg  string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// fatalf 在调用者的调用者处构造 FatalError
func fatalf(skip int, format string, args ...any) *FatalError {
	_, file, line, _ := runtime.Caller(skip + 1)
	return &FatalError{
		File: filepath.Base(file),
		Line: line,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// T 单个测试的上下文
type T struct {
	rec    *TestRecord
	limits Limits
}

// Name 测试名
func (t *T) Name() string {
	return t.rec.Name
}

// Failed 当前是否已经记录过错误
func (t *T) Failed() bool {
	return t.rec.Failed()
}

// Errorf 记录一条错误，测试继续执行
func (t *T) Errorf(format string, args ...any) {
	t.record(2, fmt.Sprintf(format, args...))
}

// Error 同 Errorf，参数按 fmt.Sprint 拼接
func (t *T) Error(args ...any) {
	t.record(2, fmt.Sprint(args...))
}

func (t *T) record(skip int, msg string) {
	if limit := t.limits.MaxErrors; limit > 0 && len(t.rec.Errors) >= limit {
		panic(fatalf(skip, "Error count has exceeded the max %d", limit))
	}
	if limit := t.limits.MaxMessage; limit > 0 && len(msg) > limit {
		panic(fatalf(skip, "Error message length %d has exceeded the max %d", len(msg), limit))
	}
	_, file, line, _ := runtime.Caller(skip)
	t.rec.Errors = append(t.rec.Errors, TestError{
		File:    filepath.Base(file),
		Line:    line,
		Message: msg,
	})
}

// M 单个模块的上下文
type M struct {
	rec    *ModuleRecord
	limits Limits
}

func newM(limits Limits) *M {
	return &M{rec: &ModuleRecord{}, limits: limits}
}

// Declare 绑定模块名与调用者所在的源文件，并清空已有测试
func (m *M) Declare(name string) {
	_, file, _, _ := runtime.Caller(1)
	m.rec.Name = name
	m.rec.File = filepath.Base(file)
	m.rec.Tests = m.rec.Tests[:0]
}

// Run 运行一个测试，测试名取自函数名
func (m *M) Run(fn TestFunc) {
	m.run(funcName(fn), fn)
}

// RunNamed 以指定名称运行一个测试
func (m *M) RunNamed(name string, fn TestFunc) {
	m.run(name, fn)
}

func (m *M) run(name string, fn TestFunc) {
	if limit := m.limits.MaxTests; limit > 0 && len(m.rec.Tests) >= limit {
		panic(fatalf(2, "Test count has exceeded the max %d", limit))
	}

	rec := &TestRecord{Name: name}
	t := &T{rec: rec, limits: m.limits}

	begin := time.Now()
	func() {
		defer func() {
			if p := recover(); p != nil {
				if fe, ok := p.(*FatalError); ok {
					panic(fe)
				}
				// 测试自身 panic 视为失败，其余测试照常执行
				rec.Errors = append(rec.Errors, TestError{
					File:    m.rec.File,
					Message: fmt.Sprintf("panic: %v", p),
				})
			}
		}()
		fn(t)
	}()
	rec.Duration = time.Since(begin)

	m.rec.Tests = append(m.rec.Tests, rec)
}

// runModule 执行模块函数，把致命错误从 panic 转成返回值
func runModule(fn ModuleFunc, limits Limits) (rec *ModuleRecord, err error) {
	m := newM(limits)
	defer func() {
		if p := recover(); p != nil {
			fe, ok := p.(*FatalError)
			if !ok {
				// 测试函数之外的 panic 无法归到某个测试，按致命错误处理
				file, line := panicSite()
				fe = &FatalError{File: file, Line: line, Msg: fmt.Sprintf("module panicked: %v", p)}
			}
			rec, err = nil, fe
		}
	}()
	fn(m)
	if m.rec.Name == "" {
		m.rec.Name = funcName(fn)
	}
	return m.rec, nil
}

// panicSite 在 recover 所在的 defer 中调用，返回触发 panic 的第一个非 runtime 栈帧
func panicSite() (string, int) {
	pcs := make([]uintptr, 32)
	frames := runtime.CallersFrames(pcs[:runtime.Callers(2, pcs)])
	panicking := false
	for {
		f, more := frames.Next()
		switch {
		case f.Function == "runtime.gopanic":
			panicking = true
		case panicking && !strings.HasPrefix(f.Function, "runtime."):
			return filepath.Base(f.File), f.Line
		}
		if !more {
			return "", 0
		}
	}
}

// funcName 取函数符号的最后一段，例如 suite.(*Xoshiro).RandBoolTest-fm -> RandBoolTest
func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "unknown"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

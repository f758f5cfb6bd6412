package biz

import (
	"errors"
	"fmt"
	"io"
)

// ANSI 终端转义序列
const (
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
	ansiReset   = "\033[0m"
)

// HLine 报告中的分隔线
const HLine = "-------------------------------------------------------------------------------\n"

// Renderer 把模块结果渲染成文本报告
type Renderer struct {
	Verbose bool
	Color   bool
}

func (r Renderer) paint(code string) string {
	if !r.Color {
		return ""
	}
	return code
}

// Module 追加一个模块的报告：横幅，verbose 时还有每个测试及其错误
func (r Renderer) Module(l *Log, m *ModuleRecord) error {
	status, color := "PASS", ansiGreen
	if m.Failed() > 0 {
		status, color = "FAIL", ansiRed
	}
	if err := l.Printf("%s%s %s | %s (%.3fs)\n%s",
		r.paint(color), HLine, status, m.Name, m.Duration().Seconds(), HLine); err != nil {
		return fmt.Errorf("render module %s: %w", m.Name, err)
	}
	if !r.Verbose {
		return nil
	}

	for _, t := range m.Tests {
		if !t.Failed() {
			if err := l.Printf("%s PASS | %s (%.3fs)\n", r.paint(ansiGreen), t.Name, t.Duration.Seconds()); err != nil {
				return fmt.Errorf("render test %s: %w", t.Name, err)
			}
			continue
		}
		if err := l.Printf("%s FAIL | %s (%.3fs)\n", r.paint(ansiRed), t.Name, t.Duration.Seconds()); err != nil {
			return fmt.Errorf("render test %s: %w", t.Name, err)
		}
		for _, e := range t.Errors {
			if err := l.Printf("      |     Trace:    %s%s%s:%d%s\n",
				r.paint(ansiCyan), e.File, r.paint(ansiMagenta), e.Line, r.paint(ansiRed)); err != nil {
				return fmt.Errorf("render trace %s: %w", t.Name, err)
			}
			if err := l.Printf("      |     Error:    %s\n", e.Message); err != nil {
				return fmt.Errorf("render error %s: %w", t.Name, err)
			}
		}
	}
	return nil
}

// Summary 写出 "X/Y PASSING" 汇总行，然后是整份报告和收尾分隔线
func (r Renderer) Summary(w io.Writer, l *Log, s *Summary) error {
	color := ansiGreen
	if s.Failing() {
		color = ansiRed
	}
	if _, err := fmt.Fprintf(w, "\n%s TEST | %s%d/%d %sPASSING\n",
		r.paint(ansiReset), r.paint(color), s.Passed(), s.Total(), r.paint(ansiReset)); err != nil {
		return err
	}
	if _, err := l.WriteString(r.paint(color) + HLine); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	_, err := fmt.Fprintf(w, "%s%s\n", l.Bytes(), r.paint(ansiReset))
	return err
}

// FatalDiagnostic 致命错误的单行诊断信息
func FatalDiagnostic(err error, color bool) string {
	r := Renderer{Color: color}
	var fe *FatalError
	if errors.As(err, &fe) {
		return fmt.Sprintf("%sFATAL%s%s:%d%s    %s\n",
			r.paint(ansiRed), r.paint(ansiMagenta), fe.File, fe.Line, r.paint(ansiReset), fe.Msg)
	}
	return fmt.Sprintf("%sFATAL%s    %v\n", r.paint(ansiRed), r.paint(ansiReset), err)
}

package biz

import (
	"context"
	"io"
	"os"
	"time"

	"randkit/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
)

// ReportSink 运行结果的落地接口（Redis / RabbitMQ / Postgres）
type ReportSink interface {
	Publish(ctx context.Context, run *Run) error
}

// RunIDGenerator 运行 ID 生成器接口
type RunIDGenerator interface {
	Generate(ctx context.Context, host string) (int64, error)
}

// Runner 测试模块注册表，按注册顺序串行执行
type Runner struct {
	modules  Modules
	limits   Limits
	verbose  bool
	color    bool
	capacity int
	sink     ReportSink
	ids      RunIDGenerator
	log      *log.Helper
}

// NewRunner 创建 Runner
func NewRunner(c *conf.Harness, modules Modules, sink ReportSink, ids RunIDGenerator, logger log.Logger) *Runner {
	return &Runner{
		modules: modules,
		limits: Limits{
			MaxTests:   c.GetMaxTests(),
			MaxErrors:  c.GetMaxErrors(),
			MaxMessage: c.GetMaxMessage(),
		},
		verbose:  c.GetVerbose(),
		color:    c.GetColor(),
		capacity: c.GetLogCapacity(),
		sink:     sink,
		ids:      ids,
		log:      log.NewHelper(log.With(logger, "module", "biz/runner")),
	}
}

// Register 追加模块
func (r *Runner) Register(fns ...ModuleFunc) {
	r.modules = append(r.modules, fns...)
}

// Run 依次执行所有模块，把报告写到 out
// 测试失败体现在 Summary 中；返回的 error 只表示致命错误
func (r *Runner) Run(ctx context.Context, out io.Writer) (*Summary, error) {
	startedAt := time.Now()
	renderer := Renderer{Verbose: r.verbose, Color: r.color}
	plain := Renderer{Verbose: r.verbose}
	report := NewLog(r.capacity)
	plainReport := NewLog(r.capacity)

	summary := &Summary{}
	for i, fn := range r.modules {
		rec, err := runModule(fn, r.limits)
		if err != nil {
			// 诊断信息由调用方统一输出，这里只留调试日志
			r.log.Debugf("module #%d aborted: %v", i, err)
			return nil, err
		}
		r.log.Debugf("module %s finished: %d/%d passing in %s",
			rec.Name, rec.Passed(), len(rec.Tests), rec.Duration())
		summary.Modules = append(summary.Modules, rec)

		if err := renderer.Module(report, rec); err != nil {
			return nil, fatalf(0, "%v", err)
		}
		if err := plain.Module(plainReport, rec); err != nil {
			return nil, fatalf(0, "%v", err)
		}
	}

	if err := renderer.Summary(out, report, summary); err != nil {
		return nil, fatalf(0, "%v", err)
	}
	r.log.Infof("%d/%d tests passing across %d modules", summary.Passed(), summary.Total(), len(summary.Modules))

	r.publish(ctx, startedAt, summary, plainReport)
	return summary, nil
}

// publish 落地失败只记录日志，不影响测试结果
func (r *Runner) publish(ctx context.Context, startedAt time.Time, summary *Summary, report *Log) {
	if r.sink == nil {
		return
	}
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	run := &Run{
		Host:      host,
		StartedAt: startedAt,
		Elapsed:   time.Since(startedAt),
		Summary:   summary,
		Report:    report.String(),
	}
	if r.ids != nil {
		id, err := r.ids.Generate(ctx, host)
		if err != nil {
			r.log.Warnf("generate run id failed: %v", err)
		} else {
			run.ID = id
		}
	}
	if err := r.sink.Publish(ctx, run); err != nil {
		r.log.Warnf("publish run %d failed: %v", run.ID, err)
		return
	}
	r.log.Infof("run %d published", run.ID)
}

// ExitCode 0 全部通过，1 存在失败测试，2 致命错误
func ExitCode(s *Summary, err error) int {
	switch {
	case err != nil:
		return 2
	case s == nil:
		return 2
	case s.Failing():
		return 1
	default:
		return 0
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"randkit/internal/biz"
	"randkit/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name = "prngtest"
	// Version is the version of the compiled software.
	Version string
	// flagconf is the config flag.
	flagconf string
	// flagverbose forces per-test report lines.
	flagverbose bool

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "../../configs", "config path, eg: -conf config.yaml")
	flag.BoolVar(&flagverbose, "v", false, "render every test, not only module banners")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

// run 返回进程退出码：0 全部通过，1 有失败测试，2 致命错误
func run() int {
	bc, closeConf, err := conf.Load(flagconf)
	if err != nil {
		fmt.Fprint(os.Stderr, biz.FatalDiagnostic(err, true))
		return 2
	}
	defer closeConf()

	hc := bc.GetHarness()
	if hc == nil {
		hc = &conf.Harness{}
	}
	if flagverbose {
		hc.Verbose = true
	}

	logger := log.With(log.NewStdLogger(os.Stderr),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	logger = log.NewFilter(logger, log.FilterLevel(log.ParseLevel(hc.GetLogLevel())))

	runner, cleanup, err := wireApp(hc, bc.GetData(), logger)
	if err != nil {
		fmt.Fprint(os.Stderr, biz.FatalDiagnostic(err, hc.GetColor()))
		return 2
	}
	defer cleanup()

	summary, err := runner.Run(context.Background(), os.Stdout)
	if err != nil {
		fmt.Fprint(os.Stderr, biz.FatalDiagnostic(err, hc.GetColor()))
	}
	return biz.ExitCode(summary, err)
}

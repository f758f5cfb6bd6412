//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"randkit/internal/biz"
	"randkit/internal/conf"
	"randkit/internal/data"
	"randkit/internal/suite"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init prngtest runner.
func wireApp(*conf.Harness, *conf.Data, log.Logger) (*biz.Runner, func(), error) {
	panic(wire.Build(data.ProviderSet, suite.ProviderSet, biz.ProviderSet))
}

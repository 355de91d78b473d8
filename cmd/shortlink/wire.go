//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"shortlink/internal/biz"
	"shortlink/internal/conf"
	"shortlink/internal/data"
	deliveryhttp "shortlink/internal/delivery/http"
	"shortlink/internal/infra/eventbus"
	"shortlink/internal/server"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.Shortener, *zap.Logger, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		data.ProviderSet,
		biz.ProviderSet,
		deliveryhttp.ProviderSet,
		eventbus.ProviderSet,
		newApp,
	))
}

package di

import (
	"github.com/mkoval/rpmarket/internal/adapter/itemdata"
	"github.com/mkoval/rpmarket/internal/app"
	"github.com/mkoval/rpmarket/internal/config"
	"github.com/mkoval/rpmarket/internal/logger"
	"github.com/mkoval/rpmarket/internal/pkg/auth"
	"github.com/mkoval/rpmarket/internal/server/http/handlers"
	"github.com/mkoval/rpmarket/internal/server/http/router"
	"github.com/mkoval/rpmarket/internal/storage/postgres"
	"github.com/mkoval/rpmarket/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		itemdata.Module,
		usecase.Module,
		fx.Provide(func(client itemdata.Client) app.ItemDetailProvider { return client }),
		fx.Provide(func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mkoval/rpmarket/internal/adapter/itemdata"
	"github.com/mkoval/rpmarket/internal/config"
	"github.com/mkoval/rpmarket/internal/domain/repository"
	"github.com/mkoval/rpmarket/internal/usecase"
	"github.com/mkoval/rpmarket/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStorefrontFacade,
		newCheckoutUseCase,
		newHTTPServer,
		newTimerProcessor,
	),
	fx.Invoke(registerLifecycle),
)

type checkoutParams struct {
	fx.In

	Carts    repository.CartRepository
	Orders   repository.OrderRepository
	Redeems  repository.RedeemRepository
	Coupons  repository.CouponRepository
	Statuses repository.StatusRepository
	Loyalty  repository.LoyaltyRepository
	Config   *config.Config
}

func newCheckoutUseCase(p checkoutParams) *usecase.CheckoutUseCase {
	return usecase.NewCheckoutUseCase(
		p.Carts,
		p.Orders,
		p.Redeems,
		p.Coupons,
		p.Statuses,
		p.Loyalty,
		p.Config.PointsRate,
	)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
	Logger *slog.Logger
}

func newTimerProcessor(p workerParams) *worker.TimerProcessor {
	return worker.NewTimerProcessor(
		p.Orders,
		p.Config.TimerPollInterval,
		p.Config.MaxTimersBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.TimerProcessor
	Refresher  *itemdata.Refresher
	Products   repository.ProductRepository
	Config     *config.Config
}

// warmItemDetails pre-fetches game data for the active catalog so the first
// order detail views render enriched.
func warmItemDetails(ctx context.Context, p lifecycleParams) {
	products, err := p.Products.List(ctx, repository.ProductFilter{PageSize: 200})
	if err != nil {
		p.Logger.Warn("catalog warm-up skipped", slog.String("error", err.Error()))
		return
	}
	ids := make([]int64, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	p.Refresher.Refresh(ctx, ids)
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting rpmarket", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go warmItemDetails(context.Background(), p)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()
			p.Refresher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("rpmarket stopped")
			return nil
		},
	})
}

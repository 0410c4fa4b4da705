package itemdata

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mkoval/rpmarket/internal/config"
)

// Module exposes the game-data client implementation to the fx graph.
var Module = fx.Provide(newClient, NewRefresher)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.GameDataAddress, p.Logger)
}

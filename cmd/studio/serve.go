package main

import (
	"context"

	"game-studio/internal/config"
	"game-studio/internal/server"
)

func runServe(ctx context.Context, prefs config.Prefs, addr string) error {
	a := start(ctx, prefs)
	return server.New(a.session, a.loop, a.ai, addr).Start()
}

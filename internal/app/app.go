package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"minefield/internal/config"
	"minefield/internal/session"
)

type App struct {
	log   *logrus.Logger
	cfg   config.Config
	games *session.Registry
	rnd   *rand.Rand
}

func New(log *logrus.Logger, cfg config.Config, rnd *rand.Rand) *App {
	return &App{
		log:   log,
		cfg:   cfg,
		games: session.NewRegistry(),
		rnd:   rnd,
	}
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.routes(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.cfg.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

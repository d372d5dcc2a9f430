package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elee1766/taskdeck/src/server"
)

// ServeCmd runs the HTTP server until interrupted.
type ServeCmd struct {
	Host string `help:"Listen host (overrides config)"`
	Port int    `help:"Listen port (overrides config)"`
}

func (s *ServeCmd) Run(cli *CLI) error {
	a, err := buildApp(cli)
	if err != nil {
		return err
	}
	defer a.Close()

	host := a.Config.Server.Host
	if s.Host != "" {
		host = s.Host
	}
	port := a.Config.Server.Port
	if s.Port != 0 {
		port = s.Port
	}

	srv := server.NewServer(server.Config{
		Host:        host,
		Port:        port,
		Tasks:       a.Tasks,
		Toolbox:     a.Toolbox,
		ModelClient: a.Model,
		Executor:    a.Executor,
		Logger:      a.Logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	a.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

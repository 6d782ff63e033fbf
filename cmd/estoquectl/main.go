package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/controle-estoque/internal/interfaces/cli"
	"github.com/jhoicas/controle-estoque/pkg/config"
	"github.com/jhoicas/controle-estoque/pkg/logger"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(2)
	}

	// Los logs van a stderr para no mezclarse con las tablas.
	level := "warn"
	if os.Getenv("ESTOQUE_DEBUG") != "" {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.Env, Level: level, Output: os.Stderr, Service: "estoquectl"})

	b, err := cli.NewBackend(cfg, cli.Options{Logger: log})
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Backend).Msg("inicializar backend")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cli.Execute(ctx, b, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if cerr := b.Close(); cerr != nil {
		log.Warn().Err(cerr).Msg("cerrar backend")
	}
	if err != nil {
		os.Exit(1)
	}
}

// Command migrate runs goose commands against the form tables.
//
//	migrate up
//	migrate down
//	migrate status
//	migrate redo
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/formintake/internal/store"
	"github.com/dmitrymomot/formintake/pkg/config"
	"github.com/dmitrymomot/formintake/pkg/logger"
	"github.com/dmitrymomot/formintake/pkg/pg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: migrate <up|down|status|version|redo|reset> [args]")
	}

	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(logger.WithFormat(logger.FormatText))

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return pg.RunMigrations(ctx, pool, store.Migrations, cfg, log, args[0], args[1:]...)
}

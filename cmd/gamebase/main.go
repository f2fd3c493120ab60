// Gamebase - Steam library tracking, scraping and analysis
//
// A local-first CLI tool for tracking Steam games, scraping achievement and
// stat data from the Steam Web API, and deriving library reports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Olexiy95/gamebase/internal/cli"
	"github.com/Olexiy95/gamebase/internal/config"
	"github.com/Olexiy95/gamebase/internal/log"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(config.GetPaths(cfg).LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Close()
	}()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

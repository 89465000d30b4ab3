package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/casdoor-go/internal/ctl/app"
)

func main() {
	log.SetFlags(0)

	configFile := flag.String("config", "", "Path to config file (YAML)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, app.Usage) }
	flag.Parse()

	cfg, err := app.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	application, err := app.New(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx, flag.Args()); err != nil {
		if errors.Is(err, app.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			stop()
			os.Exit(2)
		}
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

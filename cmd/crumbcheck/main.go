// Package main validates breadcrumb definition files.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	checkcmd "github.com/louisbranch/crumbtrail/internal/cmd/crumbcheck"
	"github.com/louisbranch/crumbtrail/internal/platform/config"
)

func main() {
	cfg, err := checkcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("crumbcheck: %v", err)
	}
	log.SetPrefix("[CRUMBCHECK] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := checkcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("crumbcheck: %v", err)
	}
}

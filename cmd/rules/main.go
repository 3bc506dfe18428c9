package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	rulescmd "github.com/louisbranch/manaforge/internal/cmd/rules"
)

func main() {
	cfg, err := rulescmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[RULES] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = rulescmd.Run(ctx, cfg, os.Stdout)
	stop()
	if err != nil {
		log.Printf("%s: %v", cfg.Command, err)
		os.Exit(rulescmd.ExitCode(err))
	}
}

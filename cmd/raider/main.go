package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ozacod/raider/internal/app/cli/root"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := root.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

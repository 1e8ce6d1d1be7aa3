package main

import (
	"catalog-crawler/cmd/catalog-cli/commands"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	os.Exit(commands.ExecuteContext(ctx))
}

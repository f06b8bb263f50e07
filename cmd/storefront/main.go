package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ToNga156/FinalProject/cmd/storefront/commands"
	"github.com/ToNga156/FinalProject/cmd/storefront/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.Execute(ctx)
	stop()
	if err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

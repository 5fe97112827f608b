package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/vendorcp/cmd/vendorcp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := vendorcp.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprint(os.Stderr, vendorcp.FormatError(err))
		stop()
		os.Exit(vendorcp.ExitCode(err))
	}
}

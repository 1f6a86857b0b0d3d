// Command landscape2 builds interactive landscape websites.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/GLADI8R/landscape2/internal/adapters/driving/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServices(newServices)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

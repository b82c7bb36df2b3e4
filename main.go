package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/taisan11/pj-creater/cmd"
	errUtils "github.com/taisan11/pj-creater/errors"
	log "github.com/taisan11/pj-creater/pkg/logger"
)

func main() {
	log.Default().SetReportTimestamp(false)

	// Use errUtils.OsExit to allow test interception.
	errUtils.OsExit(run())
}

// run executes the command line and returns the exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cmd.Run(ctx, os.Args[1:], os.Stderr)
}

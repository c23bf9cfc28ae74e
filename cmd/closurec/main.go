// Package main provides the entry point for the closurec CLI.
//
// Usage:
//
//	closurec -i lib.js -i app.js -o app.min.js
//	closurec -i app.js -o app.min.js -l 3 --verbose
//	closurec -i app.js -o app.min.js --format json
//	closurec version
//
// The exit status is 0 once the output file is written and 1 on any failure.
package main

import (
	"closurec/internal/client/commands"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

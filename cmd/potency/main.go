// Command potency estimates parallel-line relative potency from bioassay datasets and
// serves the estimator over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arloliu/potency/errs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError prefixes the message with its error kind. The message itself is unchanged.
func formatError(err error) string {
	return fmt.Sprintf("error (%s): %v", errs.Kind(err), err)
}

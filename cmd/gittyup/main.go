// Package main provides the entry point for the gittyup CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gittyup/gittyup/internal/cli"
	"github.com/gittyup/gittyup/internal/signal"
)

// Build information, injected via ldflags.
var (
	version = "" //nolint:gochecknoglobals // Set at build time
	commit  = "" //nolint:gochecknoglobals // Set at build time
	date    = "" //nolint:gochecknoglobals // Set at build time
)

func main() {
	h := signal.NewHandler(context.Background())
	defer h.Stop()

	err := cli.Execute(h.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err != nil {
		select {
		case <-h.Interrupted():
			_, _ = fmt.Fprintln(os.Stderr, "Interrupted")
		default:
			_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.ExitCodeForError(err))
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/internal/presentation/tui"
	"github.com/aretw0/scribe/pkg/domain"
)

// RunWatch expands path once and again after every vault change until ctx
// is cancelled. Expansion errors are reported and do not stop the watcher.
func RunWatch(ctx context.Context, rt *Runtime, path string, mode domain.ContextMode, emit func(string) error) error {
	logger := rt.Logger

	events, err := rt.Engine.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch mode unavailable: %w", err)
	}

	tui.PrintBanner(os.Stderr)
	logger.Info("Starting Watcher", "path", path, "version", scribe.Version)
	printSystemMessage("Watching '%s' (Ctrl+C to stop).", path)

	expand := func() error {
		out, err := rt.Engine.Expand(ctx, path, mode)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			logger.Error("Expansion failed", "path", path, "err", err)
			printSystemMessage("Error: %v", err)
			return nil
		}
		return emit(out)
	}

	if err := expand(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			if sig := stopSignal(ctx); sig != nil {
				logger.Info("Watcher stopped", "signal", sig.String())
				printSystemMessage("Watcher stopped by %s.", sig)
			} else {
				printSystemMessage("Watcher stopped.")
			}
			return nil
		case changed, ok := <-events:
			if !ok {
				return nil
			}
			logger.Debug("Vault changed", "document", changed)
			printSystemMessage("Change detected in '%s', re-expanding...", changed)
			if err := expand(); err != nil {
				return err
			}
		}
	}
}

// stopSignal reports the signal that cancelled ctx when ctx records one,
// as SignalContext does.
func stopSignal(ctx context.Context) os.Signal {
	if sc, ok := ctx.(interface{ Signal() os.Signal }); ok {
		return sc.Signal()
	}
	return nil
}

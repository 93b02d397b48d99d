package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/scribe/internal/presentation/tui"
	"github.com/aretw0/scribe/pkg/domain"
)

// ExpandRequest names the document to expand and how to print it.
type ExpandRequest struct {
	Path string
	Mode string
	// Render is auto, always or never.
	Render string
	Watch  bool
	Out    io.Writer
}

// Expand builds an engine and prints the expansion of one document. With
// Watch set it keeps running and re-expands on every vault change.
func Expand(opts EngineOptions, req ExpandRequest) error {
	mode, err := domain.ParseContextMode(req.Mode)
	if err != nil {
		return err
	}
	if req.Out == nil {
		req.Out = os.Stdout
	}
	emit, err := newPrinter(req)
	if err != nil {
		return err
	}

	rt, err := CreateEngine(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	if req.Watch {
		sigCtx := NewSignalContext(context.Background())
		defer sigCtx.Cancel()
		return RunWatch(sigCtx, rt, req.Path, mode, emit)
	}

	out, err := rt.Engine.Expand(context.Background(), req.Path, mode)
	if err != nil {
		return err
	}
	return emit(out)
}

// newPrinter returns the function writing expanded output to req.Out,
// rendering it as styled markdown when the render policy asks for it.
func newPrinter(req ExpandRequest) (func(string) error, error) {
	f, _ := req.Out.(*os.File)
	styled, err := tui.ShouldRender(req.Render, f)
	if err != nil {
		return nil, err
	}

	var render func(string) (string, error)
	if styled {
		if render, err = tui.NewRenderer(); err != nil {
			return nil, err
		}
	}

	return func(text string) error {
		if render != nil {
			rendered, err := render(text)
			if err != nil {
				return fmt.Errorf("failed to render output: %w", err)
			}
			text = rendered
		}
		_, err := io.WriteString(req.Out, text)
		return err
	}, nil
}

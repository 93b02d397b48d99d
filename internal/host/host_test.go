package host

import (
	"context"
	"testing"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatic_Selection(t *testing.T) {
	h := New()
	_, err := h.ActiveSelection(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveView)

	h.Focus("highlighted")
	sel, err := h.ActiveSelection(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "highlighted", sel)

	h.Blur()
	_, err = h.ActiveSelection(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveView)
}

func TestStatic_Options(t *testing.T) {
	h := New(WithFilesystemPaths(false), WithSelection(""))
	assert.False(t, h.SupportsFilesystemPaths())

	sel, err := h.ActiveSelection(context.Background())
	assert.NoError(t, err, "an empty selection is still an active view")
	assert.Equal(t, "", sel)
}

package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	m, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnInclusionEnter(ctx, &domain.InclusionEvent{Depth: 1})
	hooks.OnInclusionEnter(ctx, &domain.InclusionEvent{Depth: 2})
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OpenInclusions))

	hooks.OnInclusionLeave(ctx, &domain.InclusionEvent{Depth: 2})
	hooks.OnInclusionRejected(ctx, &domain.InclusionEvent{Depth: 11})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Inclusions.WithLabelValues("admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Inclusions.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenInclusions))
}

func TestMetrics_ObserveExpansion(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveExpansion(domain.ModeTopLevel, 10*time.Millisecond, nil)
	m.ObserveExpansion(domain.ModeTopLevel, 10*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Expansions.WithLabelValues("top_level", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Expansions.WithLabelValues("top_level", "false")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ExpansionDuration))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

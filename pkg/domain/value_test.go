package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_LiteralAndOperation(t *testing.T) {
	ctx := context.Background()

	lit := domain.Literal("marker")
	assert.Equal(t, domain.KindLiteral, lit.Kind())
	got, err := lit.Call(ctx, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "marker", got)

	op := domain.Op(func(ctx context.Context, args ...any) (any, error) {
		return len(args), nil
	})
	assert.Equal(t, domain.KindOperation, op.Kind())
	assert.Nil(t, op.Literal())
	got, err = op.Call(ctx, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestTable_Names(t *testing.T) {
	table := domain.Table{}
	table.Set("title", domain.Literal("x"))
	table.Set("content", domain.Literal("y"))

	assert.Equal(t, []string{"content", "title"}, table.Names())
	_, ok := table.Lookup("missing")
	assert.False(t, ok)
}

func TestInclusionHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.InclusionHooks{OnInclusionEnter: func(context.Context, *domain.InclusionEvent) { calls = append(calls, "a") }}
	b := domain.InclusionHooks{
		OnInclusionEnter: func(context.Context, *domain.InclusionEvent) { calls = append(calls, "b") },
		OnInclusionLeave: func(context.Context, *domain.InclusionEvent) { calls = append(calls, "leave") },
	}

	merged := a.Merge(b)
	merged.OnInclusionEnter(context.Background(), &domain.InclusionEvent{})
	merged.OnInclusionLeave(context.Background(), &domain.InclusionEvent{})

	assert.Equal(t, []string{"a", "b", "leave"}, calls)
	assert.Nil(t, merged.OnInclusionRejected)
}

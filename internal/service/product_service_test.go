package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gin-gorm-shop/internal/core/events"
	"gin-gorm-shop/internal/domain"
)

func TestProductService_CreateAndFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(ctx, ProductInput{Name: "Cadeira", Description: "Madeira", Price: 99.9, Quantity: 3})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	got, err := f.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cadeira", got.Name)
	assert.InDelta(t, 99.9, got.Price, 0.001)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, []string{events.ProductCreated}, f.pub.types())
}

func TestProductService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   ProductInput
	}{
		{"zero price", ProductInput{Name: "a", Description: "b", Price: 0, Quantity: 1}},
		{"negative price", ProductInput{Name: "a", Description: "b", Price: -1, Quantity: 1}},
		{"negative quantity", ProductInput{Name: "a", Description: "b", Price: 1, Quantity: -1}},
		{"blank name", ProductInput{Name: "  ", Description: "b", Price: 1}},
		{"blank description", ProductInput{Name: "a", Price: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.products.Create(ctx, tt.in)
			require.ErrorIs(t, err, domain.ErrBadRequest)
		})
	}
	all, err := f.products.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductService_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"produtos de limpeza", "outros produtos", "cadeira"} {
		_, err := f.products.Create(ctx, ProductInput{Name: name, Description: "d", Price: 1, Quantity: 1})
		require.NoError(t, err)
	}

	got, err := f.products.Search(ctx, "produtos")
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"produtos de limpeza", "outros produtos"}, names)

	// 通配符按字面量匹配
	got, err = f.products.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProductService_UpdateMergesFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(ctx, ProductInput{Name: "Mesa", Description: "Vidro", Price: 10, Quantity: 1})
	require.NoError(t, err)

	got, err := f.products.Update(ctx, p.ID, ProductPatch{Price: ptr(12.5)})
	require.NoError(t, err)
	assert.Equal(t, "Mesa", got.Name)
	assert.Equal(t, "Vidro", got.Description)
	assert.InDelta(t, 12.5, got.Price, 0.001)

	_, err = f.products.Update(ctx, p.ID, ProductPatch{Quantity: ptr(-1)})
	require.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.products.Update(ctx, "missing", ProductPatch{Name: ptr("x")})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductService_DeleteIsHard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(ctx, ProductInput{Name: "Sofa", Description: "Couro", Price: 500, Quantity: 1})
	require.NoError(t, err)

	snap, err := f.products.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, snap.ID)

	_, err = f.products.FindByID(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.products.Delete(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := f.products.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, []string{events.ProductCreated, events.ProductDeleted}, f.pub.types())
}

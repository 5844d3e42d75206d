package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gin-gorm-shop/internal/core/events"
	"gin-gorm-shop/internal/domain"
)

func TestCalculateTotal(t *testing.T) {
	prices := []domain.ProductPrice{{ID: "a", Price: 10}, {ID: "b", Price: 2.5}}

	tests := []struct {
		name  string
		items []LineItemInput
		want  float64
	}{
		{"empty", nil, 0},
		{"single", []LineItemInput{{"a", 3}}, 30},
		{"mixed", []LineItemInput{{"a", 2}, {"b", 2}}, 25},
		{"unknown skipped", []LineItemInput{{"a", 1}, {"zzz", 9}}, 10},
		{"repeated product", []LineItemInput{{"b", 1}, {"b", 1}}, 5},
		{"rounded to cents", []LineItemInput{{"b", 3}}, 7.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateTotal(tt.items, prices), 1e-9)
		})
	}
}

func seedPurchase(t *testing.T, f *fixture) (user *domain.User, p1, p2 *domain.Product) {
	t.Helper()
	ctx := context.Background()
	var err error
	user, err = f.users.Create(ctx, CreateUserInput{Name: "Comprador", Email: "c@example.com", Password: "x"})
	require.NoError(t, err)
	p1, err = f.products.Create(ctx, ProductInput{Name: "Caneta", Description: "Azul", Price: 10, Quantity: 100})
	require.NoError(t, err)
	p2, err = f.products.Create(ctx, ProductInput{Name: "Lapis", Description: "HB", Price: 5, Quantity: 100})
	require.NoError(t, err)
	return user, p1, p2
}

func TestPurchaseService_CreateComputesTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, p1, p2 := seedPurchase(t, f)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p, err := f.purchases.Create(ctx, CreatePurchaseInput{
		UserID:       u.ID,
		PurchaseDate: date,
		Products:     []LineItemInput{{p1.ID, 2}, {p2.ID, 1}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 25, p.Total, 1e-9)
	assert.Len(t, p.Products, 2)

	got, err := f.purchases.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 25, got.Total, 1e-9)
	assert.Equal(t, u.ID, got.UserID)
	assert.True(t, date.Equal(got.PurchaseDate))
	require.Len(t, got.Products, 2)
	for _, it := range got.Products {
		assert.Equal(t, p.ID, it.PurchaseID)
	}
	assert.Contains(t, f.pub.types(), events.PurchaseCreated)
}

func TestPurchaseService_TotalIsFixedAtCreation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, p1, _ := seedPurchase(t, f)

	p, err := f.purchases.Create(ctx, CreatePurchaseInput{UserID: u.ID, PurchaseDate: time.Now(), Products: []LineItemInput{{p1.ID, 3}}})
	require.NoError(t, err)
	require.InDelta(t, 30, p.Total, 1e-9)

	_, err = f.products.Update(ctx, p1.ID, ProductPatch{Price: ptr(99.0)})
	require.NoError(t, err)

	got, err := f.purchases.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 30, got.Total, 1e-9)
}

func TestPurchaseService_UnknownProductContributesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, p1, _ := seedPurchase(t, f)

	p, err := f.purchases.Create(ctx, CreatePurchaseInput{
		UserID:       u.ID,
		PurchaseDate: time.Now(),
		Products:     []LineItemInput{{p1.ID, 1}, {"ghost", 4}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 10, p.Total, 1e-9)
	assert.Len(t, p.Products, 2)
}

func TestPurchaseService_CreateRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, p1, _ := seedPurchase(t, f)

	t.Run("no items", func(t *testing.T) {
		_, err := f.purchases.Create(ctx, CreatePurchaseInput{UserID: u.ID, PurchaseDate: time.Now()})
		require.ErrorIs(t, err, domain.ErrBadRequest)
	})
	t.Run("zero quantity", func(t *testing.T) {
		_, err := f.purchases.Create(ctx, CreatePurchaseInput{UserID: u.ID, PurchaseDate: time.Now(), Products: []LineItemInput{{p1.ID, 0}}})
		require.ErrorIs(t, err, domain.ErrBadRequest)
	})
	t.Run("unknown owner", func(t *testing.T) {
		_, err := f.purchases.Create(ctx, CreatePurchaseInput{UserID: "nobody", PurchaseDate: time.Now(), Products: []LineItemInput{{p1.ID, 1}}})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("deleted owner", func(t *testing.T) {
		_, err := f.users.Delete(ctx, u.ID)
		require.NoError(t, err)
		_, err = f.purchases.Create(ctx, CreatePurchaseInput{UserID: u.ID, PurchaseDate: time.Now(), Products: []LineItemInput{{p1.ID, 1}}})
		require.ErrorIs(t, err, domain.ErrBadRequest)
	})

	all, err := f.purchases.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPurchaseService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, p1, p2 := seedPurchase(t, f)

	keep, err := f.purchases.Create(ctx, CreatePurchaseInput{UserID: u.ID, PurchaseDate: time.Now(), Products: []LineItemInput{{p2.ID, 1}}})
	require.NoError(t, err)
	p, err := f.purchases.Create(ctx, CreatePurchaseInput{UserID: u.ID, PurchaseDate: time.Now(), Products: []LineItemInput{{p1.ID, 1}, {p2.ID, 2}}})
	require.NoError(t, err)

	del, err := f.purchases.Delete(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, del.DeletedAt)
	require.Len(t, del.Products, 2)
	for _, it := range del.Products {
		assert.NotNil(t, it.DeletedAt)
	}

	_, err = f.purchases.FindByID(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrBadRequest)
	_, err = f.purchases.Delete(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrBadRequest)
	_, err = f.purchases.FindByID(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := f.purchases.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}

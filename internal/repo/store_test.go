package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gin-gorm-shop/internal/domain"
	"gin-gorm-shop/internal/repo"
	"gin-gorm-shop/internal/testutil"
)

func newUser(id, email string) *domain.User {
	return &domain.User{ID: id, Name: "n", Email: email, PasswordHash: "h"}
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	st := testutil.Store(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.Transaction(ctx, func(tx domain.Gateway) error {
		require.NoError(t, tx.Users().Create(ctx, newUser("u-1", "a@x.io")))
		require.NoError(t, tx.Addresses().Create(ctx, &domain.Address{ID: "a-1", Street: "s", City: "c", State: "st", Country: "co", ZipCode: "z", UserID: "u-1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	u, err := st.Users().FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestTransaction_RollsBackOnPanic(t *testing.T) {
	st := testutil.Store(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = st.Transaction(ctx, func(tx domain.Gateway) error {
			require.NoError(t, tx.Users().Create(ctx, newUser("u-1", "a@x.io")))
			panic("half way")
		})
	})
	ok, err := st.Users().EmailExists(ctx, "a@x.io")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	st := testutil.Store(t)
	ctx := context.Background()

	require.NoError(t, st.Users().Create(ctx, newUser("u-1", "a@x.io")))
	err := st.Users().Create(ctx, newUser("u-2", "a@x.io"))
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.ErrDuplicateKey)
	assert.True(t, repo.IsDupKey(err))
	assert.False(t, repo.IsDupKey(errors.New("connection refused")))
}

func TestUserRepo_EmailIsCaseSensitive(t *testing.T) {
	st := testutil.Store(t)
	ctx := context.Background()

	require.NoError(t, st.Users().Create(ctx, newUser("u-1", "Ana@x.io")))
	require.NoError(t, st.Users().Create(ctx, newUser("u-2", "ana@x.io")))

	ok, err := st.Users().EmailExists(ctx, "ANA@x.io")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepo_SoftDelete(t *testing.T) {
	st := testutil.Store(t)
	ctx := context.Background()
	require.NoError(t, st.Users().Create(ctx, newUser("u-1", "a@x.io")))
	require.NoError(t, st.Users().Create(ctx, newUser("u-2", "b@x.io")))

	require.NoError(t, st.Users().SoftDelete(ctx, "u-1", time.Now()))

	active, err := st.Users().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "u-2", active[0].ID)

	// 软删的用户仍占着邮箱
	taken, err := st.Users().EmailExists(ctx, "a@x.io")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestProductRepo_SearchAndPrices(t *testing.T) {
	st := testutil.Store(t)
	ctx := context.Background()
	for _, p := range []domain.Product{
		{ID: "p-1", Name: "50% off", Description: "d", Price: 1, Quantity: 1},
		{ID: "p-2", Name: "500 off", Description: "d", Price: 2, Quantity: 1},
		{ID: "p-3", Name: "under_score", Description: "d", Price: 3, Quantity: 1},
	} {
		p := p
		require.NoError(t, st.Products().Create(ctx, &p))
	}

	got, err := st.Products().SearchByName(ctx, "50%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-1", got[0].ID)

	got, err = st.Products().SearchByName(ctx, "0_o")
	require.NoError(t, err)
	assert.Empty(t, got)

	prices, err := st.Products().FindPricesByIDs(ctx, []string{"p-1", "p-3", "nope"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.ProductPrice{{ID: "p-1", Price: 1}, {ID: "p-3", Price: 3}}, prices)

	require.NoError(t, st.Products().Delete(ctx, "p-1"))
	p, err := st.Products().FindByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestAddressRepo_UpdateForUserIsScoped(t *testing.T) {
	st := testutil.Store(t)
	ctx := context.Background()
	require.NoError(t, st.Users().Create(ctx, newUser("u-1", "a@x.io")))
	require.NoError(t, st.Users().Create(ctx, newUser("u-2", "b@x.io")))
	require.NoError(t, st.Addresses().Create(ctx, &domain.Address{ID: "a-1", Street: "s", City: "c", State: "st", Country: "co", ZipCode: "z", UserID: "u-1"}))

	ok, err := st.Addresses().UpdateForUser(ctx, "a-1", "u-2", map[string]any{"city": "x"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = st.Addresses().UpdateForUser(ctx, "a-1", "u-1", map[string]any{"city": "x"})
	require.NoError(t, err)
	assert.True(t, ok)

	u, err := st.Users().FindByID(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, u.Addresses, 1)
	assert.Equal(t, "x", u.Addresses[0].City)
}

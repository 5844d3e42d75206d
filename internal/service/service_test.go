package service

import (
	"sync"
	"testing"

	"go.uber.org/zap"

	"gin-gorm-shop/internal/core/events"
	"gin-gorm-shop/internal/repo"
	"gin-gorm-shop/internal/testutil"
)

type recorder struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recorder) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.got))
	for _, e := range r.got {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store     *repo.Store
	pub       *recorder
	products  *ProductService
	users     *UserService
	purchases *PurchaseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	testutil.FastPasswords(t)
	st := testutil.Store(t)
	pub := &recorder{}
	l := zap.NewNop()
	return &fixture{
		store:     st,
		pub:       pub,
		products:  NewProductService(st, pub, l),
		users:     NewUserService(st, pub, l),
		purchases: NewPurchaseService(st, pub, l),
	}
}

func ptr[T any](v T) *T { return &v }

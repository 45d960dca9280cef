package products

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/grocerpos/grocer/internal/shared"
)

type memoryRepo struct {
	items  map[int64]Product
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]Product)}
}

func (r *memoryRepo) List(ctx context.Context) ([]Product, error) {
	out := make([]Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepo) Create(ctx context.Context, p Product) (int64, error) {
	if p.Barcode != nil {
		for _, existing := range r.items {
			if existing.Barcode != nil && *existing.Barcode == *p.Barcode {
				return 0, ErrDuplicateBarcode
			}
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.items[p.ID] = p
	return p.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, p Product) error {
	if _, ok := r.items[p.ID]; !ok {
		return ErrProductNotFound
	}
	r.items[p.ID] = p
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

func intPtr(v int) *int { return &v }

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func milk() Input {
	return Input{Name: "Milk", Category: "Dairy", Price: price("3.49"), Quantity: intPtr(50), Barcode: "1234567892"}
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), Input{Name: " Salt ", Category: "Pantry", Price: price("0.99"), Quantity: intPtr(5)})
	require.NoError(t, err)

	p := repo.items[id]
	require.Equal(t, "Salt", p.Name)
	require.Equal(t, DefaultReorderLevel, p.ReorderLevel)
	require.Equal(t, "", p.Supplier)
	require.Nil(t, p.Barcode)
}

func TestCreateDuplicateBarcodeConflicts(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, milk())
	require.NoError(t, err)

	_, err = svc.Create(ctx, milk())
	require.ErrorIs(t, err, ErrDuplicateBarcode)
	require.ErrorIs(t, err, shared.ErrConflict)
	require.Len(t, repo.items, 1)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	cases := map[string]Input{
		"blank name":     {Name: "  ", Category: "Dairy", Price: price("1"), Quantity: intPtr(1)},
		"negative price": {Name: "Milk", Category: "Dairy", Price: price("-0.01"), Quantity: intPtr(1)},
		"negative qty":   {Name: "Milk", Category: "Dairy", Price: price("1"), Quantity: intPtr(-1)},
		"negative level": {Name: "Milk", Category: "Dairy", Price: price("1"), Quantity: intPtr(1), ReorderLevel: intPtr(-2)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			require.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestUpdateReplacesFields(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, milk())
	require.NoError(t, err)

	in := milk()
	in.Price = price("3.79")
	in.Quantity = intPtr(12)
	in.ReorderLevel = intPtr(15)
	in.Barcode = ""
	require.NoError(t, svc.Update(ctx, id, in))

	p := repo.items[id]
	require.True(t, p.Price.Equal(decimal.RequireFromString("3.79")))
	require.Equal(t, 12, p.Quantity)
	require.Equal(t, 15, p.ReorderLevel)
	require.Nil(t, p.Barcode)
	require.True(t, p.LowStock())
}

func TestUpdateAndDeleteMissingProduct(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.ErrorIs(t, svc.Update(ctx, 99, milk()), ErrProductNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 99), ErrProductNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 0), shared.ErrNotFound)
	require.Empty(t, repo.items)
}

func TestDeleteRemovesProduct(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, milk())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

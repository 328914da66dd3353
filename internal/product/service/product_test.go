package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-atelier/storefront/internal/product/repository"
)

type fakeProductRepository struct {
	products []repository.Product
	inserts  int
}

func (f *fakeProductRepository) FindAll(_ context.Context) ([]repository.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepository) Count(_ context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepository) InsertMany(
	_ context.Context,
	products []repository.Product,
) error {
	f.products = append(f.products, products...)
	f.inserts++
	return nil
}

func TestSeedCatalog(t *testing.T) {
	repo := &fakeProductRepository{}
	svc := NewProductService(repo)

	require.NoError(t, svc.SeedCatalog(context.Background()))
	assert.Len(t, repo.products, 9)
	assert.Equal(t, 1, repo.inserts)

	require.NoError(t, svc.SeedCatalog(context.Background()))
	assert.Equal(t, 1, repo.inserts, "a populated catalog must not be reseeded")
}

func TestFindProducts(t *testing.T) {
	repo := &fakeProductRepository{}
	svc := NewProductService(repo)
	require.NoError(t, svc.SeedCatalog(context.Background()))

	products, err := svc.FindProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 9)
	assert.EqualValues(t, 1, products[0].ID)
	assert.EqualValues(t, "The Eternity Ring", products[0].Name)
	assert.EqualValues(t, "$12,500", products[0].Price)
}

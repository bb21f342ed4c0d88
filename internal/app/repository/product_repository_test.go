package repository

import (
	"testing"

	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	category := &model.Category{Name: "Iluminación", Slug: "iluminacion"}
	require.NoError(t, NewCategoryRepository(testDB).Create(category))

	return testDB, NewProductRepository(testDB), category
}

func newProduct(externalID, title string, categoryID uint) *model.Product {
	return &model.Product{
		ExternalID:    externalID,
		Title:         title,
		Price:         59.9,
		Rating:        4.2,
		StockQuantity: 5,
		ImageURL:      "https://cdn.example.com/" + externalID + ".jpg",
		CategoryID:    categoryID,
	}
}

func TestProductRepository_Create(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newProduct("ext-1", "Lámpara de mesa Nórdica", category.ID)

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
}

func TestProductRepository_CreateDuplicateExternalID(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newProduct("ext-1", "Lámpara", category.ID)))

	err := repo.Create(newProduct("ext-1", "Otra lámpara", category.ID))
	assert.Error(t, err)
}

func TestProductRepository_FindAll_InsertionOrderWithCategory(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Create(newProduct(id, "Producto "+id, category.ID)))
	}

	found, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, found, 3)

	assert.Equal(t, "c", found[0].ExternalID)
	assert.Equal(t, "a", found[1].ExternalID)
	assert.Equal(t, "b", found[2].ExternalID)
	for _, p := range found {
		assert.Equal(t, "Iluminación", p.CategoryName())
	}
}

func TestProductRepository_FindByExternalID(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newProduct("ext-9", "Lámpara de pie Arco", category.ID)))

	found, err := repo.FindByExternalID("ext-9")
	require.NoError(t, err)
	assert.Equal(t, "Lámpara de pie Arco", found.Title)
	assert.Equal(t, category.ID, found.Category.ID)

	_, err = repo.FindByExternalID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_Update(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newProduct("ext-1", "Lámpara", category.ID)
	require.NoError(t, repo.Create(product))

	product.Price = 45
	product.StockQuantity = 0
	require.NoError(t, repo.Update(product))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 45.0, found.Price)
	assert.False(t, found.InStock())
}

func TestProductRepository_UpdateImagePrompt(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newProduct("ext-1", "Lámpara", category.ID)
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.UpdateImagePrompt(product.ID, "warm studio light"))
	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "warm studio light", found.ImagePrompt)

	assert.ErrorIs(t, repo.UpdateImagePrompt(9999, "x"), gorm.ErrRecordNotFound)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newProduct("ext-1", "Lámpara", category.ID)
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.Delete(product.ID))

	_, err := repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(product.ID), gorm.ErrRecordNotFound)
}

func TestProductRepository_CountByCategory(t *testing.T) {
	testDB, repo, category := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	other := &model.Category{Name: "Textiles", Slug: "textiles"}
	require.NoError(t, NewCategoryRepository(testDB).Create(other))

	require.NoError(t, repo.Create(newProduct("a", "Lámpara", category.ID)))
	require.NoError(t, repo.Create(newProduct("b", "Aplique", category.ID)))
	require.NoError(t, repo.Create(newProduct("c", "Cojín", other.ID)))

	count, err := repo.CountByCategory(category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	deleted, err := repo.FindByExternalID("b")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(deleted.ID))

	count, err = repo.CountByCategory(category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

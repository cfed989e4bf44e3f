package gormrepo

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFields(name, price string) entity.ProductFields {
	return entity.ProductFields{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Description: name + " description",
		ImageURL:    "https://img.example.com/" + name + ".png",
	}
}

func TestProductRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := entity.NewProduct(newProductFields("mug", "12.50"), owner.ID)
	require.NoError(t, repo.Create(ctx, product))
	assert.NotZero(t, product.ID)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "mug", found.Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(found.Price), found.Price.String())
	assert.Equal(t, "https://img.example.com/mug.png", found.ImageURL)
	assert.Equal(t, owner.ID, found.OwnerID)
}

func TestProductRepository_FindByOwner(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	repo := NewProductRepository(db)
	ctx := context.Background()

	for _, name := range []string{"first", "second"} {
		require.NoError(t, repo.Create(ctx, entity.NewProduct(newProductFields(name, "1"), alice.ID)))
	}
	require.NoError(t, repo.Create(ctx, entity.NewProduct(newProductFields("other", "1"), bob.ID)))

	products, err := repo.FindByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "first", products[0].Name)
	assert.Equal(t, "second", products[1].Name)

	none, err := repo.FindByOwner(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductRepository_UpdateKeepsOwner(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := entity.NewProduct(newProductFields("mug", "1"), owner.ID)
	require.NoError(t, repo.Create(ctx, product))

	product.Apply(newProductFields("cup", "3.25"))
	product.OwnerID = owner.ID + 100
	require.NoError(t, repo.Update(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "cup", found.Name)
	assert.Equal(t, "cup description", found.Description)
	assert.True(t, decimal.RequireFromString("3.25").Equal(found.Price))
	assert.Equal(t, owner.ID, found.OwnerID)
}

func TestProductRepository_UpdateMissing(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))

	product := entity.NewProduct(newProductFields("ghost", "1"), 1)
	product.ID = 404

	err := repo.Update(context.Background(), product)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := entity.NewProduct(newProductFields("mug", "1"), owner.ID)
	require.NoError(t, repo.Create(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, product.ID), repository.ErrProductNotFound)
}

func TestProductRepository_NegativePriceRejected(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")

	err := NewProductRepository(db).Create(context.Background(), entity.NewProduct(newProductFields("mug", "-1"), owner.ID))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProductRepository_UnknownOwnerRejected(t *testing.T) {
	err := NewProductRepository(newTestDB(t)).Create(context.Background(), entity.NewProduct(newProductFields("mug", "1"), 999))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductWriteFailed))
}

func TestProductRepository_PostgresPriceOutOfRange(t *testing.T) {
	db, mock := newPostgresMock(t)

	mock.ExpectQuery(`INSERT INTO "products"`).
		WillReturnError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"})

	err := NewProductRepository(db).Create(context.Background(), entity.NewProduct(newProductFields("mug", "12345678901234567890.12"), 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_PostgresUpdateOutOfRange(t *testing.T) {
	db, mock := newPostgresMock(t)

	mock.ExpectExec(`UPDATE "products"`).
		WillReturnError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"})

	product := entity.NewProduct(newProductFields("mug", "12345678901234567890.12"), 1)
	product.ID = 1

	err := NewProductRepository(db).Update(context.Background(), product)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

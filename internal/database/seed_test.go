package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var testSeed = SeedData{
	Categories: []SeedCategory{{Name: "Garden", Slug: "garden"}},
	Products: []SeedProduct{
		{Name: "Planter", CategorySlug: "garden", Price: 10, Images: []string{"a.webp", "b.webp"}},
		{Name: "Hose", CategorySlug: "garden", Price: 5},
	},
}

func TestSeedInsertsOnlyNewProducts(t *testing.T) {
	mock, err := pgxmock.NewConn()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO public.categories")).
		WithArgs("Garden", "garden", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO public.products")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("p-1"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO public.product_images")).
		WithArgs("p-1", "a.webp", 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO public.product_images")).
		WithArgs("p-1", "b.webp", 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// already present: the NOT EXISTS guard returns no row
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO public.products")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	inserted, err := Seed(context.Background(), mock, testSeed)
	require.NoError(t, err)
	require.Equal(t, 1, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewConn()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO public.categories")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO public.products")).
		WillReturnError(errors.New("numeric field overflow"))
	mock.ExpectRollback()

	_, err = Seed(context.Background(), mock, testSeed)
	require.ErrorContains(t, err, `failed to seed product "Planter"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDemoCatalogIsConsistent(t *testing.T) {
	slugs := map[string]bool{}
	for _, c := range DemoCatalog.Categories {
		slugs[c.Slug] = true
	}
	for _, p := range DemoCatalog.Products {
		require.True(t, slugs[p.CategorySlug], p.Name)
		require.Positive(t, p.Price, p.Name)
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/bekawave/internal/domain"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

var storeColumns = []string{"store_id", "name", "location"}

func TestCreateInsertsAfterExistenceCheck(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, StoreTable)

	mock.ExpectQuery(q("SELECT 1 FROM public.store WHERE name = $1 AND location = $2 LIMIT 1")).
		WithArgs("Downtown", "5th Ave").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
	mock.ExpectQuery(q("INSERT INTO public.store (name, location) VALUES ($1, $2) RETURNING store_id, name, location")).
		WithArgs("Downtown", "5th Ave").
		WillReturnRows(sqlmock.NewRows(storeColumns).AddRow(int64(1), "Downtown", "5th Ave"))

	created, err := repo.Create(context.Background(), domain.Store{StoreID: 42, Name: "Downtown", Location: "5th Ave"})

	require.NoError(t, err)
	assert.Equal(t, domain.Store{StoreID: 1, Name: "Downtown", Location: "5th Ave"}, created)
}

func TestCreateRejectsDuplicateBeforeInsert(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, StoreTable)

	mock.ExpectQuery(q("SELECT 1 FROM public.store WHERE name = $1 AND location = $2 LIMIT 1")).
		WithArgs("Downtown", "5th Ave").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	_, err := repo.Create(context.Background(), domain.Store{Name: "Downtown", Location: "5th Ave"})

	assert.ErrorIs(t, err, domain.ErrDuplicateEntity)
}

func TestCreateMapsUniqueViolationToDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, CustomerTable)

	mock.ExpectQuery(q("SELECT 1 FROM public.customer WHERE phone_no = $1 LIMIT 1")).
		WithArgs("0700").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
	mock.ExpectQuery(q("INSERT INTO public.customer")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), domain.Customer{Name: "Amina", PhoneNo: "0700", Location: "Kisumu"})

	assert.ErrorIs(t, err, domain.ErrDuplicateEntity)
}

func TestCreateWithoutUniqueKeySkipsCheck(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, SalesTable)
	soldAt := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	repID := int64(4)

	mock.ExpectQuery(q("INSERT INTO public.sales (customer_id, sales_pair_id, sales_rep_id, total_price, sales_time, product_id, product_quantity) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING sales_id")).
		WithArgs(int64(1), nil, int64(4), int64(29999), sqlmock.AnyArg(), int64(3), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"sales_id", "customer_id", "sales_pair_id", "sales_rep_id", "total_price", "sales_time", "product_id", "product_quantity"}).
			AddRow(int64(7), int64(1), nil, int64(4), int64(29999), soldAt, int64(3), int64(2)))

	created, err := repo.Create(context.Background(), domain.Sales{
		CustomerID:      1,
		SalesRepID:      &repID,
		TotalPrice:      29999,
		SalesTime:       domain.NewTimestamp(soldAt),
		ProductID:       3,
		ProductQuantity: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.SalesID)
	assert.Nil(t, created.SalesPairID)
	require.NotNil(t, created.SalesRepID)
	assert.Equal(t, int64(4), *created.SalesRepID)
	assert.Equal(t, "2024-08-01 12:00:00", created.SalesTime.String())
}

func TestGetReturnsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, StoreTable)

	mock.ExpectQuery(q("SELECT store_id, name, location FROM public.store WHERE store_id = $1")).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(storeColumns))

	_, err := repo.Get(context.Background(), 999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetWrapsDriverFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, StoreTable)
	boom := errors.New("connection reset")

	mock.ExpectQuery(q("SELECT store_id, name, location FROM public.store WHERE store_id = $1")).
		WithArgs(int64(1)).
		WillReturnError(boom)

	_, err := repo.Get(context.Background(), 1)

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "store", storageErr.Entity)
	assert.ErrorIs(t, err, boom)
	assert.False(t, domain.IsNotFound(err))
}

func TestGetAllEmptyTableReturnsEmptySlice(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, ProductTable)

	mock.ExpectQuery(q("SELECT product_id, name, price FROM public.product")).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "price"}))

	products, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGetAllScansEveryRow(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, ProductTable)

	mock.ExpectQuery(q("SELECT product_id, name, price FROM public.product")).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "price"}).
			AddRow(int64(1), "Soap", int64(150)).
			AddRow(int64(2), "Sugar", int64(220)))

	products, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Product{
		{ProductID: 1, Name: "Soap", Price: 150},
		{ProductID: 2, Name: "Sugar", Price: 220},
	}, products)
}

func TestUpdateAbsentWhenNoRowMatches(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, StoreTable)

	mock.ExpectQuery(q("UPDATE public.store SET name = $1, location = $2 WHERE store_id = $3 RETURNING store_id, name, location")).
		WithArgs("Uptown", "Main St", int64(5)).
		WillReturnRows(sqlmock.NewRows(storeColumns))

	updated, err := repo.Update(context.Background(), domain.Store{StoreID: 5, Name: "Uptown", Location: "Main St"})

	require.NoError(t, err)
	assert.True(t, updated.IsAbsent())
}

func TestUpdateReturnsStoredRow(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, StoreTable)

	mock.ExpectQuery(q("UPDATE public.store SET name = $1, location = $2 WHERE store_id = $3")).
		WithArgs("Uptown", "Main St", int64(5)).
		WillReturnRows(sqlmock.NewRows(storeColumns).AddRow(int64(5), "Uptown", "Main St"))

	updated, err := repo.Update(context.Background(), domain.Store{StoreID: 5, Name: "Uptown", Location: "Main St"})

	require.NoError(t, err)
	store, ok := updated.Get()
	require.True(t, ok)
	assert.Equal(t, "Uptown", store.Name)
}

func TestDeleteReportsWhetherRowWasRemoved(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, DebtTable)

	mock.ExpectExec(q("DELETE FROM public.debt WHERE debt_id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM public.debt WHERE debt_id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestExists(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, StockTable)

	mock.ExpectQuery(q("SELECT 1 FROM public.stock_record WHERE stock_id = $1 LIMIT 1")).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), 8)

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDebtScansNullablePaidDate(t *testing.T) {
	db, mock := newMock(t)
	repo := New(db, DebtTable)

	mock.ExpectQuery(q("SELECT debt_id, customer_id, amount, date, paid_date, is_paid FROM public.debt WHERE debt_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"debt_id", "customer_id", "amount", "date", "paid_date", "is_paid"}).
			AddRow(int64(2), int64(1), int64(500), time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), nil, false))

	debt, err := repo.Get(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.August, 1), debt.Date)
	assert.Nil(t, debt.PaidDate)
}

package service

import (
	"database/sql"

	"github.com/tair/bekawave/internal/domain"
	"github.com/tair/bekawave/internal/events"
	"github.com/tair/bekawave/internal/repository"
)

// Registry holds one service per entity, all sharing a single pool.
type Registry struct {
	Stores     *CRUD[domain.Store]
	Customers  *CRUD[domain.Customer]
	Products   *CRUD[domain.Product]
	SalesReps  *CRUD[domain.SalesRep]
	SalesPairs *CRUD[domain.SalesPair]
	Stocks     *CRUD[domain.Stock]
	Debts      *CRUD[domain.Debt]
	Sales      *CRUD[domain.Sales]
}

// NewRegistry builds every entity service over db
func NewRegistry(db *sql.DB, publisher events.Publisher) *Registry {
	return &Registry{
		Stores:     NewCRUD[domain.Store](repository.New(db, repository.StoreTable), storePolicy, publisher),
		Customers:  NewCRUD[domain.Customer](repository.New(db, repository.CustomerTable), StrictPolicy, publisher),
		Products:   NewCRUD[domain.Product](repository.New(db, repository.ProductTable), StrictPolicy, publisher),
		SalesReps:  NewCRUD[domain.SalesRep](repository.New(db, repository.SalesRepTable), StrictPolicy, publisher),
		SalesPairs: NewCRUD[domain.SalesPair](repository.New(db, repository.SalesPairTable), StrictPolicy, publisher),
		Stocks:     NewCRUD[domain.Stock](repository.New(db, repository.StockTable), storePolicy, publisher),
		Debts:      NewCRUD[domain.Debt](repository.New(db, repository.DebtTable), LenientPolicy, publisher),
		Sales:      NewCRUD[domain.Sales](repository.New(db, repository.SalesTable), LenientPolicy, publisher),
	}
}

// Stores and stocks report a missing row as absent on update but refuse to
// delete one.
var storePolicy = Policy{DeleteChecksExistence: true}

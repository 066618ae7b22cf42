package repository

import (
	"database/sql"

	"github.com/tair/bekawave/internal/domain"
)

// StoreTable maps domain.Store onto public.store
var StoreTable = Table[domain.Store]{
	Entity:    "store",
	Name:      "public.store",
	IDColumn:  "store_id",
	Columns:   []string{"name", "location"},
	UniqueKey: []string{"name", "location"},
	Values: func(s *domain.Store) []any {
		return []any{s.Name, s.Location}
	},
	Scan: func(row Scanner) (domain.Store, error) {
		var s domain.Store
		err := row.Scan(&s.StoreID, &s.Name, &s.Location)
		return s, err
	},
}

// CustomerTable maps domain.Customer onto public.customer
var CustomerTable = Table[domain.Customer]{
	Entity:    "customer",
	Name:      "public.customer",
	IDColumn:  "customer_id",
	Columns:   []string{"name", "phone_no", "location"},
	UniqueKey: []string{"phone_no"},
	Values: func(c *domain.Customer) []any {
		return []any{c.Name, c.PhoneNo, c.Location}
	},
	Scan: func(row Scanner) (domain.Customer, error) {
		var c domain.Customer
		err := row.Scan(&c.CustomerID, &c.Name, &c.PhoneNo, &c.Location)
		return c, err
	},
}

// ProductTable maps domain.Product onto public.product
var ProductTable = Table[domain.Product]{
	Entity:    "product",
	Name:      "public.product",
	IDColumn:  "product_id",
	Columns:   []string{"name", "price"},
	UniqueKey: []string{"name", "price"},
	Values: func(p *domain.Product) []any {
		return []any{p.Name, p.Price}
	},
	Scan: func(row Scanner) (domain.Product, error) {
		var p domain.Product
		err := row.Scan(&p.ProductID, &p.Name, &p.Price)
		return p, err
	},
}

// SalesRepTable maps domain.SalesRep onto public.sales_rep
var SalesRepTable = Table[domain.SalesRep]{
	Entity:    "sales rep",
	Name:      "public.sales_rep",
	IDColumn:  "sales_rep_id",
	Columns:   []string{"name", "phone_no"},
	UniqueKey: []string{"name", "phone_no"},
	Values: func(r *domain.SalesRep) []any {
		return []any{r.Name, r.PhoneNo}
	},
	Scan: func(row Scanner) (domain.SalesRep, error) {
		var r domain.SalesRep
		err := row.Scan(&r.SalesRepID, &r.Name, &r.PhoneNo)
		return r, err
	},
}

// SalesPairTable maps domain.SalesPair onto public.sales_pair
var SalesPairTable = Table[domain.SalesPair]{
	Entity:    "sales pair",
	Name:      "public.sales_pair",
	IDColumn:  "sales_pair_id",
	Columns:   []string{"sales_rep_id_one", "sales_rep_id_two", "paired_date"},
	UniqueKey: []string{"sales_rep_id_one", "sales_rep_id_two", "paired_date"},
	Values: func(p *domain.SalesPair) []any {
		return []any{p.SalesRepIDOne, p.SalesRepIDTwo, p.PairedDate}
	},
	Scan: func(row Scanner) (domain.SalesPair, error) {
		var p domain.SalesPair
		err := row.Scan(&p.SalesPairID, &p.SalesRepIDOne, &p.SalesRepIDTwo, &p.PairedDate)
		return p, err
	},
}

// StockTable maps domain.Stock onto public.stock_record
var StockTable = Table[domain.Stock]{
	Entity:    "stock",
	Name:      "public.stock_record",
	IDColumn:  "stock_id",
	Columns:   []string{"store_id", "amount", "product_id", "quantity", "product_worth"},
	UniqueKey: []string{"store_id", "product_id"},
	Values: func(s *domain.Stock) []any {
		return []any{s.StoreID, s.Amount, s.ProductID, s.Quantity, s.ProductWorth}
	},
	Scan: func(row Scanner) (domain.Stock, error) {
		var s domain.Stock
		err := row.Scan(&s.StockID, &s.StoreID, &s.Amount, &s.ProductID, &s.Quantity, &s.ProductWorth)
		return s, err
	},
}

// DebtTable maps domain.Debt onto public.debt
var DebtTable = Table[domain.Debt]{
	Entity:    "debt",
	Name:      "public.debt",
	IDColumn:  "debt_id",
	Columns:   []string{"customer_id", "amount", "date", "paid_date", "is_paid"},
	UniqueKey: []string{"customer_id", "amount", "date"},
	Values: func(d *domain.Debt) []any {
		return []any{d.CustomerID, d.Amount, d.Date, d.PaidDate, d.IsPaid}
	},
	Scan: func(row Scanner) (domain.Debt, error) {
		var d domain.Debt
		err := row.Scan(&d.DebtID, &d.CustomerID, &d.Amount, &d.Date, &d.PaidDate, &d.IsPaid)
		return d, err
	},
}

// SalesTable maps domain.Sales onto public.sales
var SalesTable = Table[domain.Sales]{
	Entity:   "sales record",
	Name:     "public.sales",
	IDColumn: "sales_id",
	Columns: []string{
		"customer_id", "sales_pair_id", "sales_rep_id", "total_price",
		"sales_time", "product_id", "product_quantity",
	},
	Values: func(s *domain.Sales) []any {
		return []any{
			s.CustomerID, nullableID(s.SalesPairID), nullableID(s.SalesRepID), s.TotalPrice,
			s.SalesTime, s.ProductID, s.ProductQuantity,
		}
	},
	Scan: func(row Scanner) (domain.Sales, error) {
		var (
			s             domain.Sales
			pairID, repID sql.NullInt64
		)
		err := row.Scan(&s.SalesID, &s.CustomerID, &pairID, &repID, &s.TotalPrice,
			&s.SalesTime, &s.ProductID, &s.ProductQuantity)
		if pairID.Valid {
			s.SalesPairID = &pairID.Int64
		}
		if repID.Valid {
			s.SalesRepID = &repID.Int64
		}
		return s, err
	},
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

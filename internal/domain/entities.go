package domain

import "strings"

// Entity is implemented by every persisted record.
type Entity interface {
	PrimaryKey() int64
	Validate() error
}

// Store represents a physical shop location
type Store struct {
	StoreID  int64  `json:"store_id" gorm:"column:store_id;primaryKey"`
	Name     string `json:"name" gorm:"not null;uniqueIndex:idx_store_name_location"`
	Location string `json:"location" gorm:"not null;uniqueIndex:idx_store_name_location"`
}

// TableName specifies the table name
func (Store) TableName() string { return "store" }

func (s Store) PrimaryKey() int64 { return s.StoreID }

func (s Store) Validate() error {
	return firstError(required("name", s.Name), required("location", s.Location))
}

// Customer represents a buying customer, unique by phone number
type Customer struct {
	CustomerID int64  `json:"customer_id" gorm:"column:customer_id;primaryKey"`
	Name       string `json:"name" gorm:"not null"`
	PhoneNo    string `json:"phone_no" gorm:"column:phone_no;not null;uniqueIndex:idx_customer_phone_no"`
	Location   string `json:"location"`
}

// TableName specifies the table name
func (Customer) TableName() string { return "customer" }

func (c Customer) PrimaryKey() int64 { return c.CustomerID }

func (c Customer) Validate() error {
	return firstError(required("name", c.Name), required("phone_no", c.PhoneNo))
}

// Product represents a sellable product; price is in minor units
type Product struct {
	ProductID int64  `json:"product_id" gorm:"column:product_id;primaryKey"`
	Name      string `json:"name" gorm:"not null;uniqueIndex:idx_product_name_price"`
	Price     int64  `json:"price" gorm:"not null;uniqueIndex:idx_product_name_price"`
}

// TableName specifies the table name
func (Product) TableName() string { return "product" }

func (p Product) PrimaryKey() int64 { return p.ProductID }

func (p Product) Validate() error {
	return firstError(required("name", p.Name), nonNegative("price", p.Price))
}

// SalesRep represents a sales representative
type SalesRep struct {
	SalesRepID int64  `json:"sales_rep_id" gorm:"column:sales_rep_id;primaryKey"`
	Name       string `json:"name" gorm:"not null;uniqueIndex:idx_sales_rep_name_phone"`
	PhoneNo    string `json:"phone_no" gorm:"column:phone_no;not null;uniqueIndex:idx_sales_rep_name_phone"`
}

// TableName specifies the table name
func (SalesRep) TableName() string { return "sales_rep" }

func (r SalesRep) PrimaryKey() int64 { return r.SalesRepID }

func (r SalesRep) Validate() error {
	return firstError(required("name", r.Name), required("phone_no", r.PhoneNo))
}

// SalesPair pairs two sales representatives from a point in time
type SalesPair struct {
	SalesPairID   int64     `json:"sales_pair_id" gorm:"column:sales_pair_id;primaryKey"`
	SalesRepIDOne int64     `json:"sales_rep_id_one" gorm:"column:sales_rep_id_one;not null;uniqueIndex:idx_sales_pair_reps_date"`
	SalesRepIDTwo int64     `json:"sales_rep_id_two" gorm:"column:sales_rep_id_two;not null;uniqueIndex:idx_sales_pair_reps_date"`
	PairedDate    Timestamp `json:"paired_date" gorm:"column:paired_date;not null;uniqueIndex:idx_sales_pair_reps_date"`
}

// TableName specifies the table name
func (SalesPair) TableName() string { return "sales_pair" }

func (p SalesPair) PrimaryKey() int64 { return p.SalesPairID }

func (p SalesPair) Validate() error {
	if err := firstError(
		reference("sales_rep_id_one", p.SalesRepIDOne),
		reference("sales_rep_id_two", p.SalesRepIDTwo),
		requiredTime("paired_date", p.PairedDate.IsZero()),
	); err != nil {
		return err
	}
	if p.SalesRepIDOne == p.SalesRepIDTwo {
		return invalid("sales_rep_id_two", "must differ from sales_rep_id_one")
	}
	return nil
}

// Stock is the holding of one product in one store
type Stock struct {
	StockID      int64 `json:"stock_id" gorm:"column:stock_id;primaryKey"`
	StoreID      int64 `json:"store_id" gorm:"column:store_id;not null;uniqueIndex:idx_stock_store_product"`
	Amount       int64 `json:"amount" gorm:"not null"`
	ProductID    int64 `json:"product_id" gorm:"column:product_id;not null;uniqueIndex:idx_stock_store_product"`
	Quantity     int64 `json:"quantity" gorm:"not null"`
	ProductWorth int64 `json:"product_worth" gorm:"column:product_worth;not null"`
}

// TableName specifies the table name
func (Stock) TableName() string { return "stock_record" }

func (s Stock) PrimaryKey() int64 { return s.StockID }

func (s Stock) Validate() error {
	return firstError(
		reference("store_id", s.StoreID),
		reference("product_id", s.ProductID),
		nonNegative("amount", s.Amount),
		nonNegative("quantity", s.Quantity),
		nonNegative("product_worth", s.ProductWorth),
	)
}

// Debt is an amount owed by a customer
type Debt struct {
	DebtID     int64 `json:"debt_id" gorm:"column:debt_id;primaryKey"`
	CustomerID int64 `json:"customer_id" gorm:"column:customer_id;not null;uniqueIndex:idx_debt_customer_amount_date"`
	Amount     int64 `json:"amount" gorm:"not null;uniqueIndex:idx_debt_customer_amount_date"`
	Date       Date  `json:"date" gorm:"not null;uniqueIndex:idx_debt_customer_amount_date"`
	PaidDate   *Date `json:"paid_date" gorm:"column:paid_date"`
	IsPaid     bool  `json:"is_paid" gorm:"column:is_paid;not null;default:false"`
}

// TableName specifies the table name
func (Debt) TableName() string { return "debt" }

func (d Debt) PrimaryKey() int64 { return d.DebtID }

func (d Debt) Validate() error {
	return firstError(
		reference("customer_id", d.CustomerID),
		nonNegative("amount", d.Amount),
		requiredTime("date", d.Date.IsZero()),
	)
}

// Sales is a single sales transaction of one product to one customer
type Sales struct {
	SalesID         int64     `json:"sales_id" gorm:"column:sales_id;primaryKey"`
	CustomerID      int64     `json:"customer_id" gorm:"column:customer_id;not null;index"`
	SalesPairID     *int64    `json:"sales_pair_id" gorm:"column:sales_pair_id"`
	SalesRepID      *int64    `json:"sales_rep_id" gorm:"column:sales_rep_id"`
	TotalPrice      int64     `json:"total_price" gorm:"column:total_price;not null"`
	SalesTime       Timestamp `json:"sales_time" gorm:"column:sales_time;not null"`
	ProductID       int64     `json:"product_id" gorm:"column:product_id;not null;index"`
	ProductQuantity int64     `json:"product_quantity" gorm:"column:product_quantity;not null"`
}

// TableName specifies the table name
func (Sales) TableName() string { return "sales" }

func (s Sales) PrimaryKey() int64 { return s.SalesID }

func (s Sales) Validate() error {
	return firstError(
		reference("customer_id", s.CustomerID),
		reference("product_id", s.ProductID),
		nonNegative("total_price", s.TotalPrice),
		nonNegative("product_quantity", s.ProductQuantity),
		requiredTime("sales_time", s.SalesTime.IsZero()),
	)
}

// Models lists every persisted entity for the schema bootstrap.
func Models() []any {
	return []any{
		&Store{}, &Customer{}, &Product{}, &SalesRep{},
		&SalesPair{}, &Stock{}, &Debt{}, &Sales{},
	}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func requiredTime(field string, zero bool) error {
	if zero {
		return invalid(field, "is required")
	}
	return nil
}

func reference(field string, id int64) error {
	if id <= 0 {
		return invalid(field, "is required")
	}
	return nil
}

func nonNegative(field string, v int64) error {
	if v < 0 {
		return invalid(field, "cannot be negative")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

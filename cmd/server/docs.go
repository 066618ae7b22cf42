package main

// @title Bekawave Sales API
// @version 1.0
// @description Sales back office: stores, customers, products, sales reps and pairs, stock, debts and sales records, with CSV and XLSX sales reports.

// @host localhost:8000
// @BasePath /

// @tag.name Stores
// @tag.description Store locations

// @tag.name Customers
// @tag.description Customer records

// @tag.name Products
// @tag.description Product catalogue

// @tag.name Sales
// @tag.description Sales transactions

// @tag.name SalesReps
// @tag.description Sales representatives

// @tag.name SalesPairs
// @tag.description Pairs of sales representatives

// @tag.name Stocks
// @tag.description Stock per store and product

// @tag.name Debts
// @tag.description Customer debts

// @tag.name Reports
// @tag.description Sales report downloads

// @tag.name Health
// @tag.description Health check endpoints

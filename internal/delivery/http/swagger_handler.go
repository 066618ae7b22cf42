package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListStores godoc
// @Summary List all stores
// @Tags Stores
// @Produce json
// @Success 200 {array} domain.Store
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /stores/all [get]
func ListStoresDoc() {}

// GetStore godoc
// @Summary Get store by ID
// @Tags Stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} domain.Store
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /stores/by-id/{id} [get]
func GetStoreDoc() {}

// CreateStore godoc
// @Summary Create a store
// @Description Name and location together must be unique
// @Tags Stores
// @Accept json
// @Produce json
// @Param request body domain.Store true "Store data"
// @Success 201 {object} domain.Store
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /stores/create [post]
func CreateStoreDoc() {}

// UpdateStore godoc
// @Summary Replace a store
// @Tags Stores
// @Accept json
// @Produce json
// @Param request body domain.Store true "Store data including store_id"
// @Success 200 {object} domain.Store
// @Failure 404 {object} ErrorResponse
// @Router /stores/update [put]
func UpdateStoreDoc() {}

// DeleteStore godoc
// @Summary Delete a store
// @Tags Stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {boolean} boolean
// @Failure 404 {object} ErrorResponse
// @Router /stores/delete/{id} [delete]
func DeleteStoreDoc() {}

// ListCustomers godoc
// @Summary List all customers
// @Tags Customers
// @Produce json
// @Success 200 {array} domain.Customer
// @Failure 404 {object} ErrorResponse
// @Router /customers/all [get]
func ListCustomersDoc() {}

// CreateCustomer godoc
// @Summary Create a customer
// @Description Phone numbers are unique
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body domain.Customer true "Customer data"
// @Success 201 {object} domain.Customer
// @Failure 409 {object} ErrorResponse
// @Router /customers/create [post]
func CreateCustomerDoc() {}

// ListProducts godoc
// @Summary List all products
// @Tags Products
// @Produce json
// @Success 200 {array} domain.Product
// @Failure 404 {object} ErrorResponse
// @Router /products/all [get]
func ListProductsDoc() {}

// ListSales godoc
// @Summary List all sales records
// @Tags Sales
// @Produce json
// @Success 200 {array} domain.Sales
// @Failure 404 {object} ErrorResponse
// @Router /sales/all [get]
func ListSalesDoc() {}

// ListDebts godoc
// @Summary List all debts
// @Tags Debts
// @Produce json
// @Success 200 {array} domain.Debt
// @Failure 404 {object} ErrorResponse
// @Router /debts/all [get]
func ListDebtsDoc() {}

// ListSalesReps godoc
// @Summary List all sales reps
// @Tags SalesReps
// @Produce json
// @Success 200 {array} domain.SalesRep
// @Failure 404 {object} ErrorResponse
// @Router /sales-reps/all [get]
func ListSalesRepsDoc() {}

// ListSalesPairs godoc
// @Summary List all sales pairs
// @Tags SalesPairs
// @Produce json
// @Success 200 {array} domain.SalesPair
// @Failure 404 {object} ErrorResponse
// @Router /sales_pairs/all [get]
func ListSalesPairsDoc() {}

// ListStocks godoc
// @Summary List all stock records
// @Tags Stocks
// @Produce json
// @Success 200 {array} domain.Stock
// @Failure 404 {object} ErrorResponse
// @Router /stocks/all [get]
func ListStocksDoc() {}

// Download godoc
// @Summary Download the sales report
// @Tags Reports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string true "csv or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /download [get]
func DownloadDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func HealthCheckDoc() {}

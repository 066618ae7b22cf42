package http

// Route layout and client messages per entity. The alias paths predate the
// uniform /all, /by-id, /create layout and are still served.
var (
	StoreResource = Resource{
		Prefix: "/stores",
		Messages: Messages{
			Empty:        "No stores found",
			NotFound:     "Store not found",
			Duplicate:    "There exist such a store in that location",
			NoSuch:       "No such store found",
			CreateFailed: "An error has occurred",
			GetFailed:    "An error has occurred",
			ListFailed:   "Failed to retrieve stores",
			UpdateFailed: "Failed to update store",
			DeleteFailed: "Error deleting store",
		},
		Aliases: Aliases{All: "/stores/get-all", ByID: "/stores/get_store_by_id/{id}"},
	}

	CustomerResource = Resource{
		Prefix: "/customers",
		Messages: Messages{
			Empty:        "No customers found",
			NotFound:     "Customer not found",
			Duplicate:    "Duplicate customer",
			NoSuch:       "No such customer found",
			CreateFailed: "Failed to create customer",
			GetFailed:    "Failed to get customer",
			ListFailed:   "Failed to retrieve customers",
			UpdateFailed: "Failed to update customer",
			DeleteFailed: "Failed to delete customer",
		},
	}

	ProductResource = Resource{
		Prefix: "/products",
		Messages: Messages{
			Empty:        "No products found",
			NotFound:     "Product not found",
			Duplicate:    "Product with the same name and price already exists",
			NoSuch:       "Product not found",
			CreateFailed: "Failed to create product",
			GetFailed:    "Failed to retrieve product",
			ListFailed:   "Failed to retrieve products",
			UpdateFailed: "Failed to update product",
			DeleteFailed: "Failed to delete product",
		},
		Aliases: Aliases{All: "/products/get-all", ByID: "/products/get_product_by_id/{id}"},
	}

	DebtResource = Resource{
		Prefix: "/debts",
		Messages: Messages{
			Empty:        "No debts found",
			NotFound:     "Debt not found",
			Duplicate:    "Duplicate debt",
			NoSuch:       "No such debt found",
			CreateFailed: "Failed to create debt",
			GetFailed:    "Failed to get debt",
			ListFailed:   "Failed to retrieve debts",
			UpdateFailed: "Failed to update debt due to a database error",
			DeleteFailed: "Failed to delete debt",
		},
	}

	SalesResource = Resource{
		Prefix: "/sales",
		Messages: Messages{
			Empty:        "No sales records found",
			NotFound:     "Sales record not found",
			Duplicate:    "Duplicate sales record",
			NoSuch:       "Sales record not found",
			CreateFailed: "Failed to create sales record",
			GetFailed:    "Failed to retrieve sales record",
			ListFailed:   "Failed to retrieve sales records",
			UpdateFailed: "Failed to update sales record",
			DeleteFailed: "Failed to delete sales record",
		},
		Aliases: Aliases{All: "/sales/get-all", ByID: "/sales/get_sales_by_id/{id}"},
	}

	SalesRepResource = Resource{
		Prefix: "/sales-reps",
		Messages: Messages{
			Empty:        "No sales reps found",
			NotFound:     "Sales rep not found",
			Duplicate:    "Duplicate sales rep",
			NoSuch:       "Sales rep not found",
			CreateFailed: "Failed to create sales rep",
			GetFailed:    "Failed to get sales rep",
			ListFailed:   "Failed to retrieve sales reps",
			UpdateFailed: "Failed to update sales rep",
			DeleteFailed: "Failed to delete sales rep",
		},
		Aliases: Aliases{All: "/sales-reps/all-reps", Create: "/sales-reps/create-new"},
	}

	SalesPairResource = Resource{
		Prefix: "/sales_pairs",
		Messages: Messages{
			Empty:        "No sales pairs found",
			NotFound:     "Sales pair not found",
			Duplicate:    "Sales pair already exists",
			NoSuch:       "No such sales pair found",
			CreateFailed: "An error has occurred",
			GetFailed:    "An error has occurred",
			ListFailed:   "Failed to retrieve sales pairs",
			UpdateFailed: "Failed to update sales pair",
			DeleteFailed: "Error deleting sales pair",
		},
		Aliases: Aliases{All: "/sales_pairs/get-all", ByID: "/sales_pairs/get_by_id/{id}"},
	}

	StockResource = Resource{
		Prefix: "/stocks",
		Messages: Messages{
			Empty:        "No stocks found",
			NotFound:     "Stock not found",
			Duplicate:    "Duplicate stock entry",
			NoSuch:       "No such stock found",
			CreateFailed: "An error occurred",
			GetFailed:    "An error occurred",
			ListFailed:   "Failed to retrieve stocks",
			UpdateFailed: "Failed to update stock",
			DeleteFailed: "Error deleting stock",
		},
		Aliases: Aliases{All: "/stocks/get-all", ByID: "/stocks/get_stock_by_id/{id}"},
	}
)

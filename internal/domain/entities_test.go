package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequiresDates(t *testing.T) {
	day := NewDate(2024, time.March, 5)
	at := NewTimestamp(time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC))

	cases := []struct {
		name  string
		rec   Entity
		field string
	}{
		{"debt without date", Debt{CustomerID: 1, Amount: 10}, "date"},
		{"sales without sales_time", Sales{CustomerID: 1, ProductID: 2, TotalPrice: 10, ProductQuantity: 1}, "sales_time"},
		{"pair without paired_date", SalesPair{SalesRepIDOne: 1, SalesRepIDTwo: 2}, "paired_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			var validation *ValidationError
			if assert.ErrorAs(t, err, &validation) {
				assert.Equal(t, tc.field, validation.Field)
			}
		})
	}

	assert.NoError(t, Debt{CustomerID: 1, Amount: 10, Date: day}.Validate())
	assert.NoError(t, Sales{CustomerID: 1, ProductID: 2, TotalPrice: 10, ProductQuantity: 1, SalesTime: at}.Validate())
	assert.NoError(t, SalesPair{SalesRepIDOne: 1, SalesRepIDTwo: 2, PairedDate: at}.Validate())
}

func TestValidateRejectsSelfPair(t *testing.T) {
	at := NewTimestamp(time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC))

	err := SalesPair{SalesRepIDOne: 3, SalesRepIDTwo: 3, PairedDate: at}.Validate()

	assert.True(t, IsValidation(err))
}

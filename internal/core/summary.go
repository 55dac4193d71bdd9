package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// ProductQuantity is the number of units sold for one product.
type ProductQuantity struct {
	Product  string
	Quantity int
}

// DailyAmount is the sales total for a single calendar day.
type DailyAmount struct {
	Date   Date
	Amount Money
}

package analysis

import (
	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// index holds the per-key aggregates every analyzer reads. It is built in a
// single pass over the normalized stream and is immutable afterwards, which
// lets the analyzers run concurrently without locking and keeps overlapping
// metrics (overall vs. category-level profit) reconciled exactly instead of
// recomputed.
type index struct {
	lines int

	revenueWithTax    decimal.Decimal
	revenueWithoutTax decimal.Decimal
	cost              decimal.Decimal
	orderValues       []decimal.Decimal // with-tax line revenue, median input

	customers  map[string]*customerAcc
	products   map[string]*productAcc
	categories map[string]*categoryAcc
	months     map[string]*monthAcc

	days      map[string]struct{}
	documents map[string]struct{}
	// Lines without a document number count as single-line transactions.
	undocumentedLines int

	unitsSold     decimal.Decimal
	unitsReturned decimal.Decimal

	unknownCustomerLines int
	undatedLines         int
}

type customerAcc struct {
	name     string
	revenue  decimal.Decimal
	orders   int
	products map[string]struct{}
}

type productAcc struct {
	name     string
	revenue  decimal.Decimal
	cost     decimal.Decimal
	quantity decimal.Decimal
	tx       int
}

type subcategoryAcc struct {
	revenue decimal.Decimal
	orders  int
}

type categoryAcc struct {
	revenue        decimal.Decimal // without tax, drives margins
	revenueWithTax decimal.Decimal // drives the trend distribution
	cost           decimal.Decimal
	orders         int
	subcategories  map[string]*subcategoryAcc
}

type monthAcc struct {
	revenue decimal.Decimal
	tx      int
}

func buildIndex(lines []domain.NormalizedLine) *index {
	idx := &index{
		lines:      len(lines),
		customers:  make(map[string]*customerAcc),
		products:   make(map[string]*productAcc),
		categories: make(map[string]*categoryAcc),
		months:     make(map[string]*monthAcc),
		days:       make(map[string]struct{}),
		documents:  make(map[string]struct{}),
	}

	for _, line := range lines {
		idx.revenueWithTax = idx.revenueWithTax.Add(line.RevenueWithTax)
		idx.revenueWithoutTax = idx.revenueWithoutTax.Add(line.RevenueWithoutTax)
		idx.cost = idx.cost.Add(line.Cost)
		idx.orderValues = append(idx.orderValues, line.RevenueWithTax)

		cust := idx.customers[line.CustomerKey]
		if cust == nil {
			cust = &customerAcc{name: line.CustomerName, products: make(map[string]struct{})}
			idx.customers[line.CustomerKey] = cust
		}
		cust.revenue = cust.revenue.Add(line.RevenueWithTax)
		cust.orders++
		cust.products[line.ProductCode] = struct{}{}
		if line.CustomerKey == "" || line.CustomerKey == domain.UnknownKey {
			idx.unknownCustomerLines++
		}

		prod := idx.products[line.ProductCode]
		if prod == nil {
			prod = &productAcc{name: line.ProductName}
			idx.products[line.ProductCode] = prod
		}
		prod.revenue = prod.revenue.Add(line.RevenueWithoutTax)
		prod.cost = prod.cost.Add(line.Cost)
		prod.quantity = prod.quantity.Add(line.Quantity)
		prod.tx++

		cat := idx.categories[line.Category]
		if cat == nil {
			cat = &categoryAcc{subcategories: make(map[string]*subcategoryAcc)}
			idx.categories[line.Category] = cat
		}
		cat.revenue = cat.revenue.Add(line.RevenueWithoutTax)
		cat.revenueWithTax = cat.revenueWithTax.Add(line.RevenueWithTax)
		cat.cost = cat.cost.Add(line.Cost)
		cat.orders++

		sub := cat.subcategories[line.Subcategory]
		if sub == nil {
			sub = &subcategoryAcc{}
			cat.subcategories[line.Subcategory] = sub
		}
		sub.revenue = sub.revenue.Add(line.RevenueWithoutTax)
		sub.orders++

		if line.Date.IsZero() {
			idx.undatedLines++
		} else {
			month := idx.months[line.Date.Format("2006-01")]
			if month == nil {
				month = &monthAcc{}
				idx.months[line.Date.Format("2006-01")] = month
			}
			month.revenue = month.revenue.Add(line.RevenueWithTax)
			month.tx++
			idx.days[line.Date.Format("2006-01-02")] = struct{}{}
		}

		if line.DocumentNumber == "" {
			idx.undocumentedLines++
		} else {
			idx.documents[line.DocumentNumber] = struct{}{}
		}

		if line.Quantity.IsNegative() {
			idx.unitsReturned = idx.unitsReturned.Add(line.Quantity.Neg())
		} else {
			idx.unitsSold = idx.unitsSold.Add(line.Quantity)
		}
	}

	return idx
}

// transactions is the number of distinct documents, with undocumented lines
// counted individually.
func (idx *index) transactions() int {
	return len(idx.documents) + idx.undocumentedLines
}

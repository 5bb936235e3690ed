package models

// LowStockThreshold is the quantity at or below which an item (with any
// stock left) is flagged low_stock.
const LowStockThreshold = 5

// DeriveStatus maps a quantity onto the three-tier stock status.
// Every write path that touches Item.Quantity must go through this.
func DeriveStatus(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// SaleTotals computes the two derived money fields of a sale.
// basePrice is the item's base price at sale time (or the caller-supplied
// one for out-of-store sales).
func SaleTotals(quantity int, sellingPrice, basePrice float64) (totalAmount, profit float64) {
	totalAmount = float64(quantity) * sellingPrice
	profit = (sellingPrice - basePrice) * float64(quantity)
	return totalAmount, profit
}

// TaskTotals computes a task's derived cost and profit fields.
func TaskTotals(basePrice, taxiCost, otherCosts, profitGained float64) (totalCost, netProfit float64) {
	totalCost = basePrice + taxiCost + otherCosts
	netProfit = profitGained - totalCost
	return totalCost, netProfit
}

package models

import "testing"

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		quantity int
		want     StockStatus
	}{
		{0, StatusOutOfStock},
		{1, StatusLowStock},
		{3, StatusLowStock},
		{5, StatusLowStock},
		{6, StatusInStock},
		{100, StatusInStock},
	}
	for _, c := range cases {
		if got := DeriveStatus(c.quantity); got != c.want {
			t.Errorf("DeriveStatus(%d) = %s, want %s", c.quantity, got, c.want)
		}
	}
}

func TestSaleTotals(t *testing.T) {
	total, profit := SaleTotals(3, 30, 20)
	if total != 90 {
		t.Errorf("total = %v, want 90", total)
	}
	if profit != 30 {
		t.Errorf("profit = %v, want 30", profit)
	}

	// selling below cost yields a negative profit, not an error
	_, profit = SaleTotals(2, 15, 20)
	if profit != -10 {
		t.Errorf("profit = %v, want -10", profit)
	}
}

func TestTaskTotals(t *testing.T) {
	totalCost, netProfit := TaskTotals(20, 5, 3, 40)
	if totalCost != 28 {
		t.Errorf("totalCost = %v, want 28", totalCost)
	}
	if netProfit != 12 {
		t.Errorf("netProfit = %v, want 12", netProfit)
	}
}

package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeSubtotalWithinAllowance(t *testing.T) {
	got := ComputeSubtotal(dec("8"), dec("1500.00"), dec("180.00"))
	if !got.Equal(dec("1500.00")) {
		t.Fatalf("subtotal = %s, want 1500.00", got)
	}
}

func TestComputeSubtotalAtAllowanceBoundary(t *testing.T) {
	got := ComputeSubtotal(dec("10"), dec("1500.00"), dec("180.00"))
	if !got.Equal(dec("1500.00")) {
		t.Fatalf("subtotal = %s, want 1500.00", got)
	}
}

func TestComputeSubtotalChargesExcess(t *testing.T) {
	// 5 m3 above the allowance at 180.00 each.
	got := ComputeSubtotal(dec("15"), dec("1500.00"), dec("180.00"))
	if !got.Equal(dec("2400.00")) {
		t.Fatalf("subtotal = %s, want 2400.00", got)
	}
}

func TestComputeSubtotalRoundsToCents(t *testing.T) {
	got := ComputeSubtotal(dec("10.5"), dec("1000.00"), dec("33.333"))
	if !got.Equal(dec("1016.67")) {
		t.Fatalf("subtotal = %s, want 1016.67", got)
	}
}

func TestComputeTotal(t *testing.T) {
	got := ComputeTotal(dec("2400.00"), dec("100.00"), dec("50.00"), dec("210.00"))
	if !got.Equal(dec("2560.00")) {
		t.Fatalf("total = %s, want 2560.00", got)
	}
}

package utils

import (
	"testing"

	"collectionledger/internal/pkg/consts"

	"github.com/shopspring/decimal"
)

func TestComputePenaltyAmount(t *testing.T) {
	tests := []struct {
		name     string
		status   consts.InstallmentStatus
		period   string
		expected string
		ok       bool
	}{
		{"past due is two percent", consts.StatusPastDue, "1000", "20", true},
		{"overdue is five percent", consts.StatusOverdue, "1000", "50", true},
		{"past due rounds to centavos", consts.StatusPastDue, "1033.33", "20.67", true},
		{"paid has no penalty", consts.StatusPaid, "1000", "0", false},
		{"unpaid has no penalty", consts.StatusUnpaid, "1000", "0", false},
		{"partial has no penalty", consts.StatusPartial, "1000", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputePenaltyAmount(tt.status, decimal.RequireFromString(tt.period))
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("ComputePenaltyAmount(%s, %s) = %s, want %s",
					tt.status, tt.period, got, tt.expected)
			}
		})
	}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		name string
		from ItemStatus
		to   ItemStatus
		want bool
	}{
		{"available to loaned", ItemStatusAvailable, ItemStatusLoaned, true},
		{"available to reserved", ItemStatusAvailable, ItemStatusReserved, true},
		{"reserved to loaned", ItemStatusReserved, ItemStatusLoaned, true},
		{"reserved to available", ItemStatusReserved, ItemStatusAvailable, true},
		{"loaned to available", ItemStatusLoaned, ItemStatusAvailable, true},
		{"any to lost", ItemStatusLoaned, ItemStatusLost, true},
		{"available to available", ItemStatusAvailable, ItemStatusAvailable, false},
		{"loaned to reserved", ItemStatusLoaned, ItemStatusReserved, false},
		{"lost is terminal", ItemStatusLost, ItemStatusAvailable, false},
		{"lost to lost", ItemStatusLost, ItemStatusLost, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTransition(tt.from, tt.to))
		})
	}
}

func TestLoanable(t *testing.T) {
	item := BookItem{Status: ItemStatusAvailable}
	assert.True(t, item.Loanable())

	item.IsReferenceOnly = true
	assert.False(t, item.Loanable())
}

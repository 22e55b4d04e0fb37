package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio_server/internal/domain"
)

func days(counts ...int) []domain.ContributionDay {
	out := make([]domain.ContributionDay, len(counts))
	for i, c := range counts {
		out[i] = domain.ContributionDay{Count: c}
	}
	return out
}

func TestComputeStreaks(t *testing.T) {
	tests := []struct {
		name        string
		counts      []int
		wantCurrent int
		wantLongest int
	}{
		{"empty", nil, 0, 0},
		{"all zero", []int{0, 0, 0}, 0, 0},
		{"single active day", []int{0, 0, 1}, 1, 1},
		{"streak running today", []int{0, 1, 1, 1}, 3, 3},
		{"zero today keeps streak", []int{1, 1, 0}, 2, 2},
		{"broken earlier streak", []int{1, 1, 1, 0, 1}, 1, 3},
		{"gap before today", []int{1, 0, 0, 1, 1}, 2, 2},
		{"only past activity", []int{1, 1, 0, 0}, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := computeStreaks(days(tt.counts...))
			assert.Equal(t, tt.wantCurrent, current, "current streak")
			assert.Equal(t, tt.wantLongest, longest, "longest streak")
		})
	}
}

func TestContributionLevel(t *testing.T) {
	tests := []struct {
		count int
		level int
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{7, 2},
		{8, 3},
		{15, 3},
		{16, 4},
		{100, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, domain.ContributionLevel(tt.count), "count %d", tt.count)
	}
}

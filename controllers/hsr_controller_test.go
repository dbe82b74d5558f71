package controllers

import (
	"testing"

	"github.com/Amankrah/ecodish365/models"
)

func TestValidateMealInput(t *testing.T) {
	tests := []struct {
		name         string
		foodIDs      []int
		servingSizes []float64
		wantErr      bool
	}{
		{"valid pair", []int{1, 2}, []float64{100, 150}, false},
		{"empty lists", nil, nil, true},
		{"length mismatch", []int{1, 2}, []float64{100}, true},
		{"zero serving", []int{1}, []float64{0}, true},
		{"oversized serving", []int{1}, []float64{2001}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMealInput(tt.foodIDs, tt.servingSizes)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateMealInput(%v, %v) error = %v, wantErr %v",
					tt.foodIDs, tt.servingSizes, err, tt.wantErr)
			}
		})
	}
}

func TestComparisonPayloadKeepsFailedEntries(t *testing.T) {
	comparisons := []foodComparison{
		{FoodID: 1, FoodName: "Candy, hard", HSRRating: 2.0, HSRLevel: models.LevelBelowAverage},
		{FoodID: 2, Error: "food not found: id 2"},
		{FoodID: 3, FoodName: "Apple, raw", HSRRating: 5.0, HSRLevel: models.LevelExcellent},
	}

	payload := comparisonPayload(100, comparisons)

	if got := payload["total_foods"].(int); got != 3 {
		t.Errorf("total_foods = %d, want 3", got)
	}
	if got := payload["successfully_analyzed"].(int); got != 2 {
		t.Errorf("successfully_analyzed = %d, want 2", got)
	}

	failed := payload["failed"].([]foodComparison)
	if len(failed) != 1 || failed[0].FoodID != 2 {
		t.Fatalf("failed = %+v, want the single unresolved food", failed)
	}
	if failed[0].Error == "" {
		t.Error("failed entry lost its error message")
	}

	foods := payload["foods"].([]foodComparison)
	if len(foods) != 2 {
		t.Fatalf("got %d analyzed foods, want 2", len(foods))
	}
	if foods[0].FoodID != 3 || foods[1].FoodID != 1 {
		t.Errorf("foods not sorted by rating: %+v", foods)
	}
}

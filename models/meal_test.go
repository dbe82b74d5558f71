package models

import (
	"math"
	"strings"
	"testing"
)

func stubCategorizer(category Category, confidence float64) CategorizerFunc {
	return func(foods []*Food) CategoryDecision {
		return CategoryDecision{Category: category, Confidence: confidence, Reason: "stub"}
	}
}

func testFood(id int, name string, serving float64, group int, nutrients map[string]float64, fvnl float64) *Food {
	return NewFood(id, name, serving, nutrients, fvnl, group, Classification{
		Category:   CategoryFood,
		Confidence: 0.9,
		Source:     CategorySourceAuto,
	})
}

func TestNewMealEmpty(t *testing.T) {
	meal := NewMeal(nil, stubCategorizer(CategoryBeverage, 0.9))

	if meal.Category != CategoryFood {
		t.Errorf("category = %v, want %v", meal.Category, CategoryFood)
	}
	if meal.CategoryConfidence != 0.0 {
		t.Errorf("confidence = %v, want 0", meal.CategoryConfidence)
	}
	found := false
	for _, w := range meal.CategoryWarnings {
		if strings.Contains(w, "Empty meal") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected empty meal warning, got %v", meal.CategoryWarnings)
	}
}

func TestAggregateNutrients(t *testing.T) {
	foods := []*Food{
		testFood(1, "Chicken breast, roasted", 100, 5, map[string]float64{
			NutrientEnergyKcal: 50,
			NutrientProtein:    10,
		}, 100),
		testFood(2, "White bread", 100, 18, map[string]float64{
			NutrientSugars: 20,
		}, 0),
	}

	totals, warnings := AggregateNutrients(foods)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if totals.TotalWeight != 200 {
		t.Errorf("total weight = %v, want 200", totals.TotalWeight)
	}
	if totals.EnergyKcal != 25 {
		t.Errorf("energy = %v, want 25", totals.EnergyKcal)
	}
	if math.Abs(totals.EnergyKJ-25*KJPerKcal) > 1e-9 {
		t.Errorf("energy kJ = %v, want %v", totals.EnergyKJ, 25*KJPerKcal)
	}
	if totals.Protein != 5 {
		t.Errorf("protein = %v, want 5", totals.Protein)
	}
	if totals.Sugars != 10 {
		t.Errorf("sugars = %v, want 10", totals.Sugars)
	}
	if totals.FVNLPercent != 50 {
		t.Errorf("fvnl = %v, want 50", totals.FVNLPercent)
	}
}

func TestAggregateNutrientsZeroWeight(t *testing.T) {
	foods := []*Food{
		testFood(1, "Broken entry", 0, 5, map[string]float64{NutrientProtein: 10}, 0),
	}

	totals, warnings := AggregateNutrients(foods)
	if totals.TotalWeight != 0 {
		t.Errorf("total weight = %v, want 0", totals.TotalWeight)
	}
	if totals.Protein != 0 {
		t.Errorf("protein = %v, want 0", totals.Protein)
	}
	if len(warnings) < 2 {
		t.Errorf("expected serving size and zero weight warnings, got %v", warnings)
	}
}

func TestNewMealWithCategoryMismatch(t *testing.T) {
	foods := []*Food{
		testFood(1, "Chicken breast, roasted", 100, 5, map[string]float64{
			NutrientEnergyKcal: 165,
			NutrientProtein:    31,
		}, 0),
	}

	meal := NewMealWithCategory(foods, CategoryBeverage, stubCategorizer(CategoryFood, 0.5))

	if meal.Category != CategoryBeverage {
		t.Errorf("category = %v, want assigned %v", meal.Category, CategoryBeverage)
	}

	var mismatch, suggestion bool
	for _, w := range meal.CategoryWarnings {
		if strings.Contains(w, "differs from assigned") {
			mismatch = true
		}
		if strings.Contains(w, "Consider using Food category") {
			suggestion = true
		}
	}
	if !mismatch {
		t.Errorf("expected mismatch warning, got %v", meal.CategoryWarnings)
	}
	if !suggestion {
		t.Errorf("expected low-confidence suggestion, got %v", meal.CategoryWarnings)
	}
}

func TestValidateTotalsExtremes(t *testing.T) {
	foods := []*Food{
		testFood(1, "Suspicious blob", 100, 5, map[string]float64{
			NutrientEnergyKcal: 2500,
			NutrientSodium:     6000,
		}, 0),
	}

	meal := NewMeal(foods, stubCategorizer(CategoryFood, 0.9))

	var energyWarn, sodiumWarn bool
	for _, w := range meal.CategoryWarnings {
		if strings.Contains(w, "Very high energy") {
			energyWarn = true
		}
		if strings.Contains(w, "Extremely high sodium") {
			sodiumWarn = true
		}
	}
	if !energyWarn || !sodiumWarn {
		t.Errorf("expected extreme value warnings, got %v", meal.CategoryWarnings)
	}
}

func TestLevelForStars(t *testing.T) {
	tests := []struct {
		stars float64
		want  HSRLevel
	}{
		{5.0, LevelExcellent},
		{4.5, LevelExcellent},
		{4.0, LevelGood},
		{3.0, LevelAverage},
		{2.0, LevelBelowAverage},
		{1.0, LevelPoor},
	}
	for _, tt := range tests {
		if got := LevelForStars(tt.stars); got != tt.want {
			t.Errorf("LevelForStars(%v) = %v, want %v", tt.stars, got, tt.want)
		}
	}
}

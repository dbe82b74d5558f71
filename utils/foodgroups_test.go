package utils

import (
	"testing"

	"github.com/Amankrah/ecodish365/models"
)

func TestCategoryForFoodGroup(t *testing.T) {
	tests := []struct {
		name        string
		foodGroupID int
		foodName    string
		want        models.Category
	}{
		{"cheddar in dairy group", 1, "Cheese, cheddar", models.CategoryCheese},
		{"milk in dairy group", 1, "Milk, fluid, 2%", models.CategoryDairyBeverage},
		{"fruit juice", 9, "Apple juice, canned", models.CategoryBeverage},
		{"whole fruit stays food", 9, "Apples, raw, with skin", models.CategoryFood},
		{"chocolate milk in beverage group", 14, "Chocolate milk, partly skimmed", models.CategoryDairyBeverage},
		{"plain beverage", 14, "Coffee, brewed", models.CategoryBeverage},
		{"fats and oils group", 4, "Canola oil", models.CategoryOilsAndSpreads},
		{"oil keyword outside its group", 20, "Rice, cooked in vegetable oil", models.CategoryOilsAndSpreads},
		{"boiled does not match oil", 20, "Rice, boiled", models.CategoryFood},
		{"unmapped group defaults to food", 99, "Mystery item", models.CategoryFood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryForFoodGroup(tt.foodGroupID, tt.foodName)
			if got != tt.want {
				t.Errorf("CategoryForFoodGroup(%d, %q) = %v, want %v",
					tt.foodGroupID, tt.foodName, got, tt.want)
			}
		})
	}
}

func TestCategoryOverridePrecedence(t *testing.T) {
	// Cheese wins over the dairy beverage rule within group 1.
	got := CategoryForFoodGroup(1, "Cream cheese milk spread")
	if got != models.CategoryCheese {
		t.Errorf("expected cheese rule to win in dairy group, got %v", got)
	}
}

func TestClassifyFood(t *testing.T) {
	cls := ClassifyFood(9, "Apples, raw, with skin")
	if cls.Category != models.CategoryFood {
		t.Errorf("category = %v, want %v", cls.Category, models.CategoryFood)
	}
	if cls.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", cls.Confidence)
	}
	if cls.Source != models.CategorySourceAuto {
		t.Errorf("source = %q, want %q", cls.Source, models.CategorySourceAuto)
	}
}

func TestClassifyFoodMissingGroup(t *testing.T) {
	cls := ClassifyFood(0, "Unknown item")
	if cls.Category != models.CategoryFood {
		t.Errorf("fallback category = %v, want %v", cls.Category, models.CategoryFood)
	}
	if cls.Confidence != 0.3 {
		t.Errorf("fallback confidence = %v, want 0.3", cls.Confidence)
	}
	if cls.Source != models.CategorySourceFallback {
		t.Errorf("fallback source = %q, want %q", cls.Source, models.CategorySourceFallback)
	}
}

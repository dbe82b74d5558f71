package models

import (
	"fmt"
)

// kcal → kJ conversion factor.
const KJPerKcal = 4.184

// NutrientTotals holds serving-weighted per-100g totals for a set of foods.
type NutrientTotals struct {
	EnergyKcal   float64 `json:"energy_kcal"`
	EnergyKJ     float64 `json:"energy_kj"`
	Protein      float64 `json:"protein"`
	Carbohydrate float64 `json:"carbohydrate"`
	Fiber        float64 `json:"fiber"`
	Sugars       float64 `json:"sugars"`
	FatTotal     float64 `json:"fat_total"`
	SaturatedFat float64 `json:"saturated_fat"`
	Sodium       float64 `json:"sodium"`
	Calcium      float64 `json:"calcium"`
	FVNLPercent  float64 `json:"fvnl_percent"`
	TotalWeight  float64 `json:"total_weight"`
}

// AggregateNutrients combines foods into per-100g totals of the combined
// mass. A zero total weight yields all-zero totals plus a warning; missing
// nutrient keys count as zero. Never fails.
func AggregateNutrients(foods []*Food) (NutrientTotals, []string) {
	var totals NutrientTotals
	var warnings []string

	for _, food := range foods {
		if food.ServingSize <= 0 {
			warnings = append(warnings, fmt.Sprintf("Food %q: invalid serving size %.1fg", food.FoodName, food.ServingSize))
			continue
		}
		totals.TotalWeight += food.ServingSize
	}

	if totals.TotalWeight == 0 {
		warnings = append(warnings, "Meal has zero total weight")
		return totals, warnings
	}

	weighted := func(key string) float64 {
		var sum float64
		for _, food := range foods {
			if food.ServingSize <= 0 {
				continue
			}
			sum += food.Nutrient(key) * food.ServingSize / 100
		}
		return sum / (totals.TotalWeight / 100)
	}

	totals.EnergyKcal = weighted(NutrientEnergyKcal)
	totals.EnergyKJ = totals.EnergyKcal * KJPerKcal
	totals.Protein = weighted(NutrientProtein)
	totals.Carbohydrate = weighted(NutrientCarbohydrate)
	totals.Fiber = weighted(NutrientFiber)
	totals.Sugars = weighted(NutrientSugars)
	totals.FatTotal = weighted(NutrientFatTotal)
	totals.SaturatedFat = weighted(NutrientSaturatedFat)
	totals.Sodium = weighted(NutrientSodium)
	totals.Calcium = weighted(NutrientCalcium)

	var fvnlWeight float64
	for _, food := range foods {
		if food.ServingSize <= 0 {
			continue
		}
		fvnlWeight += food.ServingSize * (food.FVNLPercent / 100)
	}
	totals.FVNLPercent = fvnlWeight / totals.TotalWeight * 100

	return totals, warnings
}

// CategoryDecision is the outcome of meal-level categorization.
type CategoryDecision struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
	Reasoning  []string `json:"reasoning,omitempty"`
	Rationale  string   `json:"rationale,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// CategorizerFunc resolves a category for a list of foods. Implementations
// must never panic their way out; degraded decisions carry warnings instead.
type CategorizerFunc func(foods []*Food) CategoryDecision

// Meal is an ordered list of foods with derived per-100g totals and a
// resolved category. Fully computed at construction and immutable after;
// recomputation means building a new Meal.
type Meal struct {
	Foods []*Food `json:"foods"`
	NutrientTotals

	Category           Category         `json:"category"`
	CategoryConfidence float64          `json:"category_confidence"`
	CategoryAnalysis   CategoryDecision `json:"category_analysis"`
	CategoryWarnings   []string         `json:"category_warnings"`
}

// NewMeal builds a meal, aggregating nutrients and resolving the category
// through categorize. An empty food list degrades to CategoryFood with zero
// confidence and a warning; it never fails.
func NewMeal(foods []*Food, categorize CategorizerFunc) *Meal {
	meal := &Meal{Foods: foods}

	if len(foods) == 0 {
		meal.Category = CategoryFood
		meal.CategoryConfidence = 0.0
		meal.CategoryAnalysis = CategoryDecision{
			Category: CategoryFood,
			Reason:   "empty_meal",
		}
		meal.CategoryWarnings = []string{"Empty meal - defaulting to FOOD category"}
		return meal
	}

	totals, warnings := AggregateNutrients(foods)
	meal.NutrientTotals = totals
	meal.CategoryWarnings = warnings

	decision := categorize(foods)
	meal.Category = decision.Category
	meal.CategoryConfidence = decision.Confidence
	meal.CategoryAnalysis = decision
	meal.CategoryWarnings = append(meal.CategoryWarnings, decision.Warnings...)

	meal.CategoryWarnings = append(meal.CategoryWarnings, meal.validateTotals()...)
	meal.CategoryWarnings = append(meal.CategoryWarnings, meal.validateCategoryConsistency()...)

	return meal
}

// NewMealWithCategory builds a meal with a caller-supplied category,
// validated against the calculated one; mismatches are warnings, not errors.
func NewMealWithCategory(foods []*Food, category Category, categorize CategorizerFunc) *Meal {
	meal := NewMeal(foods, categorize)
	if len(foods) == 0 {
		return meal
	}

	calculated := meal.Category
	meal.CategoryAnalysis.Reason = "user_provided"
	if calculated != category {
		meal.CategoryWarnings = append(meal.CategoryWarnings,
			fmt.Sprintf("Calculated category %s differs from assigned %s", calculated.Name(), category.Name()))
		if meal.CategoryConfidence < 0.6 {
			meal.CategoryWarnings = append(meal.CategoryWarnings,
				fmt.Sprintf("Consider using %s category instead", calculated.Name()))
		}
	}
	meal.Category = category
	return meal
}

// validateTotals flags extreme or negative aggregate values. Informational
// only; the meal is still scored.
func (m *Meal) validateTotals() []string {
	var warnings []string

	if m.EnergyKcal > 2000 {
		warnings = append(warnings, fmt.Sprintf("Very high energy content: %.1f kcal/100g", m.EnergyKcal))
	}
	if m.Protein > 100 {
		warnings = append(warnings, fmt.Sprintf("Extremely high protein: %.1f g/100g", m.Protein))
	}
	if m.FatTotal > 100 {
		warnings = append(warnings, fmt.Sprintf("Extremely high fat: %.1f g/100g", m.FatTotal))
	}
	if m.Sodium > 5000 {
		warnings = append(warnings, fmt.Sprintf("Extremely high sodium: %.1f mg/100g", m.Sodium))
	}
	if m.FVNLPercent > 100 {
		warnings = append(warnings, fmt.Sprintf("FVNL percent exceeds 100%%: %.1f%%", m.FVNLPercent))
	}

	for name, value := range map[string]float64{
		"energy":        m.EnergyKcal,
		"protein":       m.Protein,
		"carbohydrates": m.Carbohydrate,
		"fiber":         m.Fiber,
		"sugars":        m.Sugars,
		"fat":           m.FatTotal,
		"saturated_fat": m.SaturatedFat,
		"sodium":        m.Sodium,
		"calcium":       m.Calcium,
		"fvnl_percent":  m.FVNLPercent,
	} {
		if value < 0 {
			warnings = append(warnings, fmt.Sprintf("Negative %s value: %g", name, value))
		}
	}

	return warnings
}

func (m *Meal) validateCategoryConsistency() []string {
	var warnings []string

	switch m.Category {
	case CategoryBeverage:
		if m.Protein > 10 || m.FatTotal > 5 {
			warnings = append(warnings, "High protein/fat content unusual for beverage category")
		}
	case CategoryCheese:
		if m.Protein < 5 || m.FatTotal < 5 {
			warnings = append(warnings, "Low protein/fat content unusual for cheese category")
		}
	case CategoryOilsAndSpreads:
		if m.FatTotal < 20 {
			warnings = append(warnings, "Low fat content unusual for oils/spreads category")
		}
	}

	if m.FVNLPercent > 80 && m.Category != CategoryFood && m.Category != CategoryDairyFood {
		warnings = append(warnings,
			fmt.Sprintf("High FVNL content (%.1f%%) may indicate food category more appropriate", m.FVNLPercent))
	}

	return warnings
}

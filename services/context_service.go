package services

import (
	"strings"

	"github.com/Amankrah/ecodish365/models"
	"github.com/Amankrah/ecodish365/utils"
)

// ProcessingLevel is the coarse processing intensity of a food or meal.
type ProcessingLevel string

const (
	MinimallyProcessed ProcessingLevel = "minimally_processed"
	Processed          ProcessingLevel = "processed"
	UltraProcessed     ProcessingLevel = "ultra_processed"
)

// NutritionalContext captures the signals that adjust HSR thresholds.
// Pure value; recomputed fresh for every calculation.
type NutritionalContext struct {
	IsNaturalSugarDominant bool            `json:"is_natural_sugar_dominant"`
	HasAddedSugars         bool            `json:"has_added_sugars"`
	SatietyIndex           float64         `json:"satiety_index"` // 0.5-1.5, 1.0 = baseline
	ProcessingLevel        ProcessingLevel `json:"processing_level"`
	LiquidPercentage       float64         `json:"liquid_percentage"` // 0.0-1.0
	FiberDensity           float64         `json:"fiber_density"`     // g/100g
	ProteinQualityScore    float64         `json:"protein_quality_score"`
	FVNLNaturalness        float64         `json:"fvnl_naturalness"` // 0.0-1.0
}

// Food groups whose protein is treated as high quality (complete amino
// acid profiles: poultry, meats, fish, legumes).
var highQualityProteinGroups = map[int]bool{5: true, 6: true, 7: true, 8: true, 15: true, 16: true}

// Food groups counted when judging natural- vs added-sugar dominance.
var (
	naturalSugarGroups  = map[int]bool{9: true, 11: true}
	addedSugarGroups    = map[int]bool{1: true, 2: true, 3: true, 19: true}
	addedSugarIndicator = []string{
		"sweetened", "sugar", "syrup", "honey", "flavoured",
		"dessert", "candy", "chocolate", "cake", "cookie",
	}
	liquidIndicator = []string{"juice", "drink", "beverage", "milk", "water"}
)

// AnalyzeContext derives the nutritional context for a meal from its
// aggregated totals and per-food metadata.
func AnalyzeContext(meal *models.Meal) NutritionalContext {
	liquid := liquidPercentage(meal.Foods)

	return NutritionalContext{
		IsNaturalSugarDominant: countGroups(meal.Foods, naturalSugarGroups) > countGroups(meal.Foods, addedSugarGroups),
		HasAddedSugars:         anyFoodNamed(meal.Foods, addedSugarIndicator),
		SatietyIndex:           satietyIndex(meal.Protein, meal.Fiber, liquid),
		ProcessingLevel:        overallProcessingLevel(meal.Foods),
		LiquidPercentage:       liquid,
		FiberDensity:           meal.Fiber,
		ProteinQualityScore:    proteinQualityScore(meal.Foods),
		FVNLNaturalness:        fvnlNaturalness(meal.Foods),
	}
}

// satietyIndex multiplies a 1.0 baseline by the highest applicable protein
// and fiber tiers and divides it down for liquid-heavy meals.
func satietyIndex(protein, fiber, liquidPct float64) float64 {
	index := 1.0

	switch {
	case protein >= 20:
		index *= 1.2
	case protein >= 15:
		index *= 1.15
	case protein >= 10:
		index *= 1.1
	}

	switch {
	case fiber >= 10:
		index *= 1.2
	case fiber >= 6:
		index *= 1.15
	case fiber >= 3:
		index *= 1.1
	}

	switch {
	case liquidPct > 0.5:
		index *= 0.7
	case liquidPct > 0.2:
		index *= 0.85
	}

	return clamp(index, 0.5, 1.5)
}

// foodProcessingScore rates a single food 1 (minimal) to 3 (ultra) from
// preparation keywords in its name.
func foodProcessingScore(foodName string) float64 {
	name := strings.ToLower(foodName)

	switch {
	case containsAny(name, "raw", "fresh", "whole", "natural"):
		return 1
	case containsAny(name, "canned", "frozen", "dried", "cooked"):
		return 2
	case containsAny(name, "processed", "enriched", "flavored", "instant"):
		return 3
	default:
		return 2
	}
}

func overallProcessingLevel(foods []*models.Food) ProcessingLevel {
	if len(foods) == 0 {
		return MinimallyProcessed
	}

	var sum float64
	for _, food := range foods {
		sum += foodProcessingScore(food.FoodName)
	}
	avg := sum / float64(len(foods))

	switch {
	case avg <= 1.3:
		return MinimallyProcessed
	case avg <= 2.3:
		return Processed
	default:
		return UltraProcessed
	}
}

// liquidPercentage is the serving-weighted fraction of the meal in liquid
// form. Soups count at 0.7 weight.
func liquidPercentage(foods []*models.Food) float64 {
	var totalWeight, liquidWeight float64
	for _, food := range foods {
		if food.ServingSize <= 0 {
			continue
		}
		totalWeight += food.ServingSize

		name := strings.ToLower(food.FoodName)
		switch {
		case food.Category.IsLiquid() || containsAny(name, liquidIndicator...):
			liquidWeight += food.ServingSize
		case strings.Contains(name, "soup"):
			liquidWeight += food.ServingSize * 0.7
		}
	}

	if totalWeight == 0 {
		return 0
	}
	return liquidWeight / totalWeight
}

// proteinQualityScore rewards protein mass from high-quality sources with
// up to a 20% bonus.
func proteinQualityScore(foods []*models.Food) float64 {
	var totalProtein, highQualityProtein float64
	for _, food := range foods {
		if food.ServingSize <= 0 {
			continue
		}
		mass := food.Nutrient(models.NutrientProtein) * food.ServingSize / 100
		totalProtein += mass
		if highQualityProteinGroups[food.FoodGroupID] {
			highQualityProtein += mass
		}
	}

	if totalProtein == 0 {
		return 1.0
	}
	return 1.0 + (highQualityProtein/totalProtein)*0.2
}

// fvnlNaturalness is the fraction of FVNL-group foods that are minimally
// processed; 1.0 when the meal has no FVNL foods.
func fvnlNaturalness(foods []*models.Food) float64 {
	var fvnlFoods, wholeFoods int
	for _, food := range foods {
		if !utils.FVNLGroups[food.FoodGroupID] {
			continue
		}
		fvnlFoods++
		if foodProcessingScore(food.FoodName) == 1 {
			wholeFoods++
		}
	}

	if fvnlFoods == 0 {
		return 1.0
	}
	return float64(wholeFoods) / float64(fvnlFoods)
}

func countGroups(foods []*models.Food, groups map[int]bool) int {
	n := 0
	for _, food := range foods {
		if groups[food.FoodGroupID] {
			n++
		}
	}
	return n
}

func anyFoodNamed(foods []*models.Food, terms []string) bool {
	for _, food := range foods {
		if containsAny(strings.ToLower(food.FoodName), terms...) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

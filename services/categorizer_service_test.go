package services

import (
	"testing"

	"github.com/Amankrah/ecodish365/models"
)

func classifiedFood(id int, name string, serving float64, group int, category models.Category, nutrients map[string]float64, fvnl float64) *models.Food {
	return models.NewFood(id, name, serving, nutrients, fvnl, group, models.Classification{
		Category:   category,
		Confidence: 0.9,
		Source:     models.CategorySourceAuto,
	})
}

func TestCategorizeEmpty(t *testing.T) {
	decision := NewMealCategorizer().Categorize(nil)

	if decision.Category != models.CategoryFood {
		t.Errorf("category = %v, want %v", decision.Category, models.CategoryFood)
	}
	if decision.Confidence != 0.3 {
		t.Errorf("confidence = %v, want 0.3", decision.Confidence)
	}
}

func TestCategorizeSingleFoodPassthrough(t *testing.T) {
	food := classifiedFood(1, "Cheese, cheddar", 50, 1, models.CategoryCheese, map[string]float64{
		models.NutrientEnergyKcal: 400,
		models.NutrientProtein:    25,
	}, 0)

	decision := NewMealCategorizer().Categorize([]*models.Food{food})

	if decision.Category != models.CategoryCheese {
		t.Errorf("category = %v, want %v", decision.Category, models.CategoryCheese)
	}
	if decision.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", decision.Confidence)
	}
}

func TestCategorizeLiquidMeal(t *testing.T) {
	foods := []*models.Food{
		classifiedFood(1, "Apple juice", 250, 9, models.CategoryBeverage, map[string]float64{
			models.NutrientEnergyKcal: 46,
			models.NutrientSugars:     10,
		}, 67),
		classifiedFood(2, "Orange juice", 250, 9, models.CategoryBeverage, map[string]float64{
			models.NutrientEnergyKcal: 45,
			models.NutrientSugars:     9,
		}, 67),
	}

	decision := NewMealCategorizer().Categorize(foods)

	if decision.Category != models.CategoryBeverage {
		t.Errorf("category = %v, want %v", decision.Category, models.CategoryBeverage)
	}
	if decision.Confidence < 0.8 {
		t.Errorf("confidence = %v, want >= 0.8", decision.Confidence)
	}
	if len(decision.Reasoning) == 0 {
		t.Error("expected fitness reasoning entries")
	}
}

func TestCategorizeSolidMeal(t *testing.T) {
	foods := []*models.Food{
		classifiedFood(1, "Chicken breast, roasted", 150, 5, models.CategoryFood, map[string]float64{
			models.NutrientEnergyKcal: 165,
			models.NutrientProtein:    31,
			models.NutrientFatTotal:   3.6,
		}, 0),
		classifiedFood(2, "Rice, cooked", 150, 20, models.CategoryFood, map[string]float64{
			models.NutrientEnergyKcal:   130,
			models.NutrientProtein:      2.7,
			models.NutrientCarbohydrate: 28,
		}, 0),
	}

	decision := NewMealCategorizer().Categorize(foods)

	if decision.Category != models.CategoryFood {
		t.Errorf("category = %v, want %v", decision.Category, models.CategoryFood)
	}
}

func TestFitnessPerfectMatchReachesOne(t *testing.T) {
	// A meal squarely inside the FOOD envelope must score a full 1.0 even
	// though FOOD has no bonus clause; the bonus weight only enters the
	// denominator when it is earned.
	signals := mealSignals{energy: 200, protein: 10, fat: 10, liquidPct: 0, processing: Processed}
	fits := scoreProfiles(signals)

	if got := fitFor(fits, models.CategoryFood); got != 1.0 {
		t.Errorf("FOOD fitness = %v, want 1.0", got)
	}

	// A bonus-earning category can also reach 1.0 on a perfect match.
	cheese := mealSignals{energy: 350, protein: 25, fat: 30, liquidPct: 0, processing: Processed}
	if got := categoryProfiles[models.CategoryCheese].fitness(models.CategoryCheese, cheese); got != 1.0 {
		t.Errorf("CHEESE fitness = %v, want 1.0", got)
	}
}

func TestResolveConflictOrder(t *testing.T) {
	tests := []struct {
		name      string
		signals   mealSignals
		conflicts []categoryFit
		want      models.Category
		wantRule  string
	}{
		{
			name:    "liquid dominant picks liquid category",
			signals: mealSignals{liquidPct: 0.9},
			conflicts: []categoryFit{
				{models.CategoryFood, 0.8},
				{models.CategoryBeverage, 0.75},
			},
			want:     models.CategoryBeverage,
			wantRule: "liquid_dominant",
		},
		{
			name:    "protein and fat rich picks cheese",
			signals: mealSignals{protein: 20, fat: 20},
			conflicts: []categoryFit{
				{models.CategoryFood, 0.8},
				{models.CategoryCheese, 0.72},
			},
			want:     models.CategoryCheese,
			wantRule: "protein_fat_rich",
		},
		{
			name:    "energy and fat dense picks oils",
			signals: mealSignals{energy: 600, fat: 45, protein: 2},
			conflicts: []categoryFit{
				{models.CategoryDairyFood, 0.8},
				{models.CategoryOilsAndSpreads, 0.74},
			},
			want:     models.CategoryOilsAndSpreads,
			wantRule: "energy_fat_dense",
		},
		{
			name:    "general food as default",
			signals: mealSignals{energy: 250},
			conflicts: []categoryFit{
				{models.CategoryDairyFood, 0.8},
				{models.CategoryFood, 0.76},
			},
			want:     models.CategoryFood,
			wantRule: "general_food_default",
		},
		{
			name:    "falls back to top score",
			signals: mealSignals{energy: 250},
			conflicts: []categoryFit{
				{models.CategoryDairyFood, 0.8},
				{models.CategoryCheese, 0.76},
			},
			want:     models.CategoryDairyFood,
			wantRule: "highest_score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := resolveConflict(tt.signals, tt.conflicts)
			if got != tt.want {
				t.Errorf("category = %v, want %v", got, tt.want)
			}
			if rule != tt.wantRule {
				t.Errorf("rule = %q, want %q", rule, tt.wantRule)
			}
		})
	}
}

func TestCategoryConfidenceClamped(t *testing.T) {
	signals := mealSignals{energy: 5000, protein: 0, fiber: 0, liquidPct: 0.5}
	got := categoryConfidence(models.CategoryCheese, signals, 0)
	if got < 0.1 || got > 1.0 {
		t.Errorf("confidence = %v, want within [0.1, 1.0]", got)
	}
	if got != 0.1 {
		t.Errorf("confidence = %v, want clamped to 0.1", got)
	}
}

func TestCategorizerFuncRecovers(t *testing.T) {
	fn := NewMealCategorizer().CategorizerFunc()

	// A nil food would panic inside aggregation; the adapter must degrade.
	decision := fn([]*models.Food{nil, nil})

	if decision.Category != models.CategoryFood {
		t.Errorf("category = %v, want fallback %v", decision.Category, models.CategoryFood)
	}
	if decision.Confidence != 0.0 {
		t.Errorf("confidence = %v, want 0", decision.Confidence)
	}
	if len(decision.Warnings) == 0 {
		t.Error("expected a failure warning")
	}
}

package services

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/Amankrah/ecodish365/config"
	"github.com/Amankrah/ecodish365/models"
)

// Scores within this distance of the best fit are treated as conflicting
// candidates and resolved by the tie-break strategies.
const conflictMargin = 0.15

// processingTolerance is how much processing a category profile accepts.
type processingTolerance string

const (
	toleranceAny       processingTolerance = "any"
	toleranceProcessed processingTolerance = "processed"
	toleranceMinimal   processingTolerance = "minimally_processed"
)

// categoryProfile describes the typical nutritional envelope of one HSR
// category. Liquid bounds are exclusive: a profile has either a minimum
// (drinks) or a maximum (solids), never both.
type categoryProfile struct {
	energyMin, energyMax   float64 // kcal/100g
	proteinMin, proteinMax float64 // g/100g
	fatMin, fatMax         float64 // g/100g
	liquidMin              float64 // -1 when unused
	liquidMax              float64 // -1 when unused
	tolerance              processingTolerance
}

var categoryProfiles = map[models.Category]categoryProfile{
	models.CategoryBeverage: {
		energyMin: 0, energyMax: 200,
		proteinMin: 0, proteinMax: 3,
		fatMin: 0, fatMax: 1,
		liquidMin: 0.8, liquidMax: -1,
		tolerance: toleranceProcessed,
	},
	models.CategoryDairyBeverage: {
		energyMin: 30, energyMax: 150,
		proteinMin: 2, proteinMax: 8,
		fatMin: 0, fatMax: 6,
		liquidMin: 0.7, liquidMax: -1,
		tolerance: toleranceProcessed,
	},
	models.CategoryFood: {
		energyMin: 50, energyMax: 800,
		proteinMin: 0, proteinMax: 50,
		fatMin: 0, fatMax: 50,
		liquidMin: -1, liquidMax: 0.3,
		tolerance: toleranceAny,
	},
	models.CategoryDairyFood: {
		energyMin: 50, energyMax: 400,
		proteinMin: 3, proteinMax: 30,
		fatMin: 0, fatMax: 25,
		liquidMin: -1, liquidMax: 0.2,
		tolerance: toleranceProcessed,
	},
	models.CategoryCheese: {
		energyMin: 200, energyMax: 450,
		proteinMin: 10, proteinMax: 35,
		fatMin: 15, fatMax: 35,
		liquidMin: -1, liquidMax: 0.1,
		tolerance: toleranceProcessed,
	},
	models.CategoryOilsAndSpreads: {
		energyMin: 300, energyMax: 900,
		proteinMin: 0, proteinMax: 5,
		fatMin: 30, fatMax: 100,
		liquidMin: -1, liquidMax: 0.2,
		tolerance: toleranceAny,
	},
}

// mealSignals are the aggregate inputs to fitness scoring.
type mealSignals struct {
	energy     float64
	protein    float64
	fat        float64
	fiber      float64
	liquidPct  float64
	processing ProcessingLevel
}

// categoryFit is one scored candidate.
type categoryFit struct {
	category models.Category
	score    float64 // normalized 0-1
}

// tieBreakRule resolves a set of conflicting candidates. Rules run in
// declaration order; the first rule that returns ok wins.
type tieBreakRule struct {
	name    string
	resolve func(signals mealSignals, conflicts []categoryFit) (models.Category, bool)
}

var tieBreakRules = []tieBreakRule{
	{
		name: "liquid_dominant",
		resolve: func(s mealSignals, conflicts []categoryFit) (models.Category, bool) {
			if s.liquidPct <= 0.6 {
				return "", false
			}
			for _, fit := range conflicts {
				if fit.category.IsLiquid() {
					return fit.category, true
				}
			}
			return "", false
		},
	},
	{
		name: "protein_fat_rich",
		resolve: func(s mealSignals, conflicts []categoryFit) (models.Category, bool) {
			if s.protein < 15 || s.fat < 15 {
				return "", false
			}
			for _, fit := range conflicts {
				if fit.category == models.CategoryCheese || fit.category == models.CategoryDairyFood {
					return fit.category, true
				}
			}
			return "", false
		},
	},
	{
		name: "energy_fat_dense",
		resolve: func(s mealSignals, conflicts []categoryFit) (models.Category, bool) {
			if s.energy <= 500 || s.fat <= 40 {
				return "", false
			}
			for _, fit := range conflicts {
				if fit.category == models.CategoryOilsAndSpreads {
					return fit.category, true
				}
			}
			return "", false
		},
	},
	{
		name: "general_food_default",
		resolve: func(s mealSignals, conflicts []categoryFit) (models.Category, bool) {
			for _, fit := range conflicts {
				if fit.category == models.CategoryFood {
					return fit.category, true
				}
			}
			return "", false
		},
	},
}

// MealCategorizer resolves HSR categories for whole meals from nutritional
// fitness profiles.
type MealCategorizer struct{}

func NewMealCategorizer() *MealCategorizer {
	return &MealCategorizer{}
}

// CategorizerFunc adapts the categorizer for meal construction. Panics
// degrade to the FOOD fallback with a warning instead of propagating.
func (c *MealCategorizer) CategorizerFunc() models.CategorizerFunc {
	return func(foods []*models.Food) (decision models.CategoryDecision) {
		defer func() {
			if r := recover(); r != nil {
				config.Logger.Error("meal categorization panicked",
					zap.Any("panic", r))
				decision = models.CategoryDecision{
					Category:   models.CategoryFood,
					Confidence: 0.0,
					Reason:     models.CategorySourceErrorFallback,
					Warnings:   []string{fmt.Sprintf("Categorization failed: %v", r)},
				}
			}
		}()
		return c.Categorize(foods)
	}
}

// Categorize scores every category profile against the meal's aggregate
// signals and picks the best fit, applying tie-break rules when candidates
// are too close to call.
func (c *MealCategorizer) Categorize(foods []*models.Food) models.CategoryDecision {
	if len(foods) == 0 {
		return models.CategoryDecision{
			Category:   models.CategoryFood,
			Confidence: 0.3,
			Reason:     "no_foods",
			Rationale:  "No foods to categorize; defaulting to general food",
		}
	}

	if len(foods) == 1 {
		return models.CategoryDecision{
			Category:   foods[0].Category,
			Confidence: 1.0,
			Reason:     "single_food",
			Rationale:  fmt.Sprintf("Single food retains its own category %s", foods[0].Category.Name()),
		}
	}

	signals := gatherSignals(foods)
	fits := scoreProfiles(signals)

	sort.SliceStable(fits, func(i, j int) bool { return fits[i].score > fits[j].score })
	top := fits[0]

	var reasoning []string
	for _, fit := range fits {
		reasoning = append(reasoning, fmt.Sprintf("%s fitness %.2f", fit.category.Name(), fit.score))
	}

	conflicts := []categoryFit{top}
	for _, fit := range fits[1:] {
		if math.Abs(fit.score-top.score) < conflictMargin {
			conflicts = append(conflicts, fit)
		}
	}

	chosen := top.category
	reason := "best_fitness"
	if len(conflicts) > 1 {
		chosen, reason = resolveConflict(signals, conflicts)
		reasoning = append(reasoning, fmt.Sprintf("tie-break %s selected %s", reason, chosen.Name()))
	}

	confidence := categoryConfidence(chosen, signals, fitFor(fits, chosen))

	config.Logger.Debug("meal categorized",
		zap.String("category", string(chosen)),
		zap.Float64("confidence", confidence),
		zap.String("reason", reason))

	return models.CategoryDecision{
		Category:   chosen,
		Confidence: confidence,
		Reason:     reason,
		Reasoning:  reasoning,
		Rationale:  fmt.Sprintf("Meal profile best matches %s", chosen.Name()),
	}
}

func gatherSignals(foods []*models.Food) mealSignals {
	totals, _ := models.AggregateNutrients(foods)
	return mealSignals{
		energy:     totals.EnergyKcal,
		protein:    totals.Protein,
		fat:        totals.FatTotal,
		fiber:      totals.Fiber,
		liquidPct:  liquidPercentage(foods),
		processing: overallProcessingLevel(foods),
	}
}

func scoreProfiles(signals mealSignals) []categoryFit {
	fits := make([]categoryFit, 0, len(categoryProfiles))
	for _, category := range models.AllCategories {
		profile := categoryProfiles[category]
		fits = append(fits, categoryFit{
			category: category,
			score:    profile.fitness(category, signals),
		})
	}
	return fits
}

// fitness scores the meal against the profile, normalized to 0-1.
func (p categoryProfile) fitness(category models.Category, s mealSignals) float64 {
	var score, maxScore float64

	// Energy envelope, worth 20.
	maxScore += 20
	switch {
	case s.energy >= p.energyMin && s.energy <= p.energyMax:
		score += 20
	case s.energy < p.energyMin:
		score += math.Max(0, 20-(p.energyMin-s.energy)/10)
	default:
		score += math.Max(0, 20-(s.energy-p.energyMax)/20)
	}

	// Protein envelope, worth 15.
	maxScore += 15
	switch {
	case s.protein >= p.proteinMin && s.protein <= p.proteinMax:
		score += 15
	case s.protein < p.proteinMin:
		score += math.Max(0, 15-(p.proteinMin-s.protein)*2)
	default:
		score += math.Max(0, 15-(s.protein-p.proteinMax)/2)
	}

	// Fat envelope, worth 15.
	maxScore += 15
	switch {
	case s.fat >= p.fatMin && s.fat <= p.fatMax:
		score += 15
	case s.fat < p.fatMin:
		score += math.Max(0, 15-(p.fatMin-s.fat)*2)
	default:
		score += math.Max(0, 15-(s.fat-p.fatMax)/3)
	}

	// Liquid form, worth 25.
	maxScore += 25
	switch {
	case p.liquidMin >= 0:
		if s.liquidPct >= p.liquidMin {
			score += 25
		} else if p.liquidMin > 0 {
			score += s.liquidPct / p.liquidMin * 25
		}
	case p.liquidMax >= 0:
		if s.liquidPct <= p.liquidMax {
			score += 25
		} else {
			score += math.Max(0, 25-(s.liquidPct-p.liquidMax)*50)
		}
	}

	// Processing tolerance, worth 15.
	maxScore += 15
	switch p.tolerance {
	case toleranceAny:
		score += 15
	case toleranceProcessed:
		if s.processing != UltraProcessed {
			score += 15
		} else {
			score += 10
		}
	case toleranceMinimal:
		if s.processing == MinimallyProcessed {
			score += 15
		}
	}

	// Category-specific bonus signals, worth 10 only when earned so that
	// categories without a bonus clause can still reach a perfect fit.
	switch category {
	case models.CategoryCheese:
		if s.protein >= 15 && s.fat >= 15 {
			score += 10
			maxScore += 10
		}
	case models.CategoryBeverage, models.CategoryDairyBeverage:
		if s.liquidPct > 0.8 {
			score += 10
			maxScore += 10
		}
	case models.CategoryOilsAndSpreads:
		if s.fat > 50 {
			score += 10
			maxScore += 10
		}
	}

	return score / maxScore
}

func resolveConflict(signals mealSignals, conflicts []categoryFit) (models.Category, string) {
	for _, rule := range tieBreakRules {
		if category, ok := rule.resolve(signals, conflicts); ok {
			return category, rule.name
		}
	}
	return conflicts[0].category, "highest_score"
}

func fitFor(fits []categoryFit, category models.Category) float64 {
	for _, fit := range fits {
		if fit.category == category {
			return fit.score
		}
	}
	return 0
}

// categoryConfidence grades how sure the decision is, from the chosen
// category's fitness plus agreement signals, clamped to [0.1, 1.0].
func categoryConfidence(category models.Category, s mealSignals, fitness float64) float64 {
	profile := categoryProfiles[category]
	confidence := fitness

	if s.energy >= profile.energyMin && s.energy <= profile.energyMax {
		confidence += 0.1
	}
	liquidMatches := (profile.liquidMin >= 0 && s.liquidPct >= profile.liquidMin) ||
		(profile.liquidMax >= 0 && s.liquidPct <= profile.liquidMax)
	if liquidMatches {
		confidence += 0.1
	}
	if profile.tolerance == toleranceAny {
		confidence += 0.05
	}
	if s.protein == 0 {
		confidence -= 0.05
	}
	if s.fiber == 0 {
		confidence -= 0.03
	}

	return clamp(confidence, 0.1, 1.0)
}

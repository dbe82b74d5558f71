package services

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/Amankrah/ecodish365/config"
	"github.com/Amankrah/ecodish365/models"
)

// HSRThresholds holds the ordered ascending point scales for one
// calculation. Produced fresh per calculation; read-only afterwards.
type HSRThresholds struct {
	EnergyDensity []float64 // kcal/100g
	SugarNatural  []float64 // g/100g
	SugarAdded    []float64 // g/100g
	SaturatedFat  []float64 // g/100g
	Sodium        []float64 // mg/100g
	FVNL          []float64 // %
	Protein       []float64 // g/100g
	Fiber         []float64 // g/100g
	StarRating    []float64 // score scale for reporting
}

// Base 11-point scales, shared by every category before adjustment.
var (
	baseEnergyDensity = []float64{0, 50, 100, 150, 200, 250, 300, 400, 500, 600, 700}
	baseSugarNatural  = []float64{0, 5, 8, 12, 15, 18, 22, 25, 28, 32, 35}
	baseSugarAdded    = []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 12, 15}
	baseSaturatedFat  = []float64{0, 1, 2, 3, 4, 5, 7, 9, 12, 15, 20}
	baseSodium        = []float64{0, 100, 200, 300, 400, 500, 600, 800, 1000, 1200, 1500}
	baseFVNL          = []float64{0, 25, 40, 50, 60, 67, 75, 80, 90, 95, 100}
	baseProtein       = []float64{0, 3, 6, 10, 15, 20, 25, 30, 35, 40, 50}
	baseFiber         = []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 12, 15}
	baseStarRating    = []float64{-10, -5, 0, 5, 10, 15, 20, 25, 30, 35, 40}
)

// ThresholdsFor builds the threshold set for a category and context.
// Contextual adjustments apply first, category adjustments second.
func ThresholdsFor(category models.Category, ctx NutritionalContext) *HSRThresholds {
	t := &HSRThresholds{
		EnergyDensity: cloneScale(baseEnergyDensity),
		SugarNatural:  cloneScale(baseSugarNatural),
		SugarAdded:    cloneScale(baseSugarAdded),
		SaturatedFat:  cloneScale(baseSaturatedFat),
		Sodium:        cloneScale(baseSodium),
		FVNL:          cloneScale(baseFVNL),
		Protein:       cloneScale(baseProtein),
		Fiber:         cloneScale(baseFiber),
		StarRating:    cloneScale(baseStarRating),
	}

	t.applyContextAdjustments(ctx)
	t.applyCategoryAdjustments(category)

	return t
}

func (t *HSRThresholds) applyContextAdjustments(ctx NutritionalContext) {
	log := config.Logger

	// Higher satiety earns more lenient energy thresholds.
	if ctx.SatietyIndex != 1.0 {
		scaleInPlace(t.EnergyDensity, ctx.SatietyIndex)
		log.Debug("applied satiety adjustment to energy thresholds",
			zap.Float64("factor", ctx.SatietyIndex))
	}

	// Ultra-processed meals get stricter added-sugar thresholds.
	if ctx.ProcessingLevel == UltraProcessed {
		scaleInPlace(t.SugarAdded, 0.8)
		log.Debug("applied ultra-processed penalty to added-sugar thresholds")
	}

	// Liquid calories are less satiating; tighten energy and natural
	// sugar by up to 30%.
	if ctx.LiquidPercentage > 0.3 {
		liquidFactor := 1.0 - ctx.LiquidPercentage*0.3
		scaleInPlace(t.EnergyDensity, liquidFactor)
		scaleInPlace(t.SugarNatural, liquidFactor)
		log.Debug("applied liquid adjustment",
			zap.Float64("factor", liquidFactor))
	}

	// High-quality protein reaches each point tier sooner.
	if ctx.ProteinQualityScore > 1.0 {
		scaleInPlace(t.Protein, 1.0/ctx.ProteinQualityScore)
		log.Debug("applied protein quality boost",
			zap.Float64("factor", ctx.ProteinQualityScore))
	}
}

func (t *HSRThresholds) applyCategoryAdjustments(category models.Category) {
	log := config.Logger

	switch category {
	case models.CategoryCheese:
		// Cheese expects higher protein; shift the scale down.
		for i, v := range t.Protein {
			t.Protein[i] = math.Max(0, v-2)
		}
		log.Debug("applied cheese protein adjustment")

	case models.CategoryBeverage, models.CategoryDairyBeverage:
		// Beverages contribute no dietary fiber.
		for i := range t.Fiber {
			t.Fiber[i] = math.Inf(1)
		}
		log.Debug("disabled fiber scoring for beverage category")

	case models.CategoryOilsAndSpreads:
		// Oils are energy-dense by nature.
		for i := range t.EnergyDensity {
			t.EnergyDensity[i] += 50
		}
		log.Debug("applied oils/spreads energy adjustment")
	}
}

// PointsForValue counts reached thresholds via binary search. Equal values
// count as reached; the result is capped at the highest index. Empty or
// disabled (leading +Inf) scales score zero.
func PointsForValue(value float64, thresholds []float64) int {
	if len(thresholds) == 0 || math.IsInf(thresholds[0], 1) {
		return 0
	}
	idx := sort.SearchFloat64s(thresholds, value)
	if idx > len(thresholds)-1 {
		return len(thresholds) - 1
	}
	return idx
}

func cloneScale(scale []float64) []float64 {
	out := make([]float64, len(scale))
	copy(out, scale)
	return out
}

// scaleInPlace multiplies each threshold and truncates toward zero,
// keeping the scale integral like the base tables.
func scaleInPlace(scale []float64, factor float64) {
	for i, v := range scale {
		scale[i] = math.Trunc(v * factor)
	}
}

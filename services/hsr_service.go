package services

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/Amankrah/ecodish365/config"
	"github.com/Amankrah/ecodish365/models"
)

// SugarAnalysis splits a meal's sugars into natural and added fractions,
// per 100g of the combined meal.
type SugarAnalysis struct {
	TotalSugars       float64  `json:"total_sugars"`
	NaturalSugars     float64  `json:"natural_sugars"`
	AddedSugars       float64  `json:"added_sugars"`
	NaturalPercentage float64  `json:"natural_percentage"`
	Sources           []string `json:"sources"`
}

// HSRCalculator scores one meal. All derived inputs (context, thresholds,
// sugar split) are computed at construction, so Calculate is deterministic
// and repeatable.
type HSRCalculator struct {
	meal          *models.Meal
	context       NutritionalContext
	thresholds    *HSRThresholds
	sugarAnalysis SugarAnalysis
}

func NewHSRCalculator(meal *models.Meal) *HSRCalculator {
	ctx := AnalyzeContext(meal)
	return &HSRCalculator{
		meal:          meal,
		context:       ctx,
		thresholds:    ThresholdsFor(meal.Category, ctx),
		sugarAnalysis: analyzeSugarSources(meal),
	}
}

// SugarSources exposes the meal's natural/added sugar split.
func (c *HSRCalculator) SugarSources() SugarAnalysis {
	return c.sugarAnalysis
}

// Context exposes the nutritional context the meal was scored under.
func (c *HSRCalculator) Context() NutritionalContext {
	return c.context
}

// Calculate runs the full scoring pipeline and assembles the result.
func (c *HSRCalculator) Calculate() *models.MealHSRResult {
	score := c.componentScore()

	result := &models.MealHSRResult{
		StarRating:      score.StarRating,
		Level:           models.LevelForStars(score.StarRating),
		Category:        c.meal.Category,
		ComponentScore:  score,
		TotalWeight:     c.meal.TotalWeight,
		TotalEnergyKJ:   c.meal.EnergyKJ,
		TotalEnergyKcal: c.meal.EnergyKcal,
		ConfidenceScore: c.confidence(),
		Warnings:        c.meal.CategoryWarnings,
	}

	result.NutrientAnalyses = c.nutrientAnalyses(score)
	result.Strengths, result.Concerns = c.insights()
	result.Recommendations = c.recommendations()

	config.Logger.Info("meal scored",
		zap.Float64("star_rating", result.StarRating),
		zap.String("category", string(result.Category)),
		zap.Int("final_score", score.FinalScore),
		zap.Float64("confidence", result.ConfidenceScore))

	return result
}

// componentScore computes the baseline/modifying point split plus the
// adjustments layered on top.
func (c *HSRCalculator) componentScore() models.HSRComponentScore {
	energyPoints := c.energyPoints()
	saturatedFatPoints := PointsForValue(c.meal.SaturatedFat, c.thresholds.SaturatedFat)

	sugarNaturalPoints := PointsForValue(c.sugarAnalysis.NaturalSugars, c.thresholds.SugarNatural)
	sugarAddedPoints := PointsForValue(c.sugarAnalysis.AddedSugars, c.thresholds.SugarAdded)

	// Added sugars weigh heavier than natural ones.
	sugarPoints := int(float64(sugarNaturalPoints)*0.7 + float64(sugarAddedPoints)*1.3)

	sodiumPoints := PointsForValue(c.meal.Sodium, c.thresholds.Sodium)
	baselinePoints := energyPoints + saturatedFatPoints + sugarPoints + sodiumPoints

	proteinPoints := c.proteinPoints()
	fiberPoints := c.fiberPoints()
	fvnlPoints := c.fvnlPoints()
	modifyingPoints := proteinPoints + fiberPoints + fvnlPoints

	satietyAdjustment := c.satietyAdjustment()
	processingPenalty := c.processingPenalty()
	naturalnessBonus := c.naturalnessBonus()

	baseScore := math.Max(0, float64(baselinePoints-modifyingPoints))
	adjusted := baseScore + satietyAdjustment + processingPenalty + naturalnessBonus
	finalScore := int(math.Max(0, math.Trunc(adjusted)))

	return models.HSRComponentScore{
		BaselinePoints:     baselinePoints,
		EnergyPoints:       energyPoints,
		SaturatedFatPoints: saturatedFatPoints,
		SugarPoints:        sugarPoints,
		SodiumPoints:       sodiumPoints,
		ModifyingPoints:    modifyingPoints,
		ProteinPoints:      proteinPoints,
		FiberPoints:        fiberPoints,
		FVNLPoints:         fvnlPoints,
		FinalScore:         finalScore,
		StarRating:         StarsForScore(finalScore),
		SugarNaturalPoints: sugarNaturalPoints,
		SugarAddedPoints:   sugarAddedPoints,
		SatietyAdjustment:  satietyAdjustment,
		ProcessingPenalty:  processingPenalty,
		NaturalnessBonus:   naturalnessBonus,
	}
}

func (c *HSRCalculator) energyPoints() int {
	// More satiating meals are judged at a lower effective energy density.
	adjusted := c.meal.EnergyKcal / c.context.SatietyIndex
	return PointsForValue(adjusted, c.thresholds.EnergyDensity)
}

func (c *HSRCalculator) proteinPoints() int {
	adjusted := c.meal.Protein * c.context.ProteinQualityScore
	return PointsForValue(adjusted, c.thresholds.Protein)
}

func (c *HSRCalculator) fiberPoints() int {
	if c.meal.Category.IsLiquid() {
		return 0
	}
	return PointsForValue(c.meal.Fiber, c.thresholds.Fiber)
}

func (c *HSRCalculator) fvnlPoints() int {
	adjusted := c.meal.FVNLPercent * c.context.FVNLNaturalness
	return PointsForValue(adjusted, c.thresholds.FVNL)
}

// satietyAdjustment turns the satiety index into a score delta in [-3, 3].
// Negative deltas improve the rating.
func (c *HSRCalculator) satietyAdjustment() float64 {
	bonus := (c.context.SatietyIndex - 1.0) * 2.0
	return clamp(bonus, -3.0, 3.0)
}

func (c *HSRCalculator) processingPenalty() float64 {
	switch c.context.ProcessingLevel {
	case Processed:
		return 1.0
	case UltraProcessed:
		return 2.5
	default:
		return 0.0
	}
}

// naturalnessBonus rewards whole FVNL foods and natural sugars. Returned
// negative: lower scores mean better ratings.
func (c *HSRCalculator) naturalnessBonus() float64 {
	var bonus float64
	if c.context.FVNLNaturalness > 0.8 {
		bonus += 1.0
	} else if c.context.FVNLNaturalness > 0.6 {
		bonus += 0.5
	}
	if c.sugarAnalysis.NaturalPercentage > 80 {
		bonus += 0.5
	}
	return -bonus
}

// confidence grades data completeness and meal complexity, floored at 0.5.
func (c *HSRCalculator) confidence() float64 {
	confidence := 1.0

	if c.meal.Protein == 0 {
		confidence -= 0.1
	}
	if c.meal.Fiber == 0 {
		confidence -= 0.1
	}
	if c.meal.Sodium == 0 {
		confidence -= 0.05
	}

	if c.context.ProcessingLevel == UltraProcessed && c.context.LiquidPercentage > 0.5 {
		confidence -= 0.1
	}

	if c.meal.Category == models.CategoryBeverage && c.meal.Protein > 10 {
		confidence -= 0.15
	}

	return math.Max(0.5, confidence)
}

// StarsForScore converts a final score to the half-star scale.
func StarsForScore(score int) float64 {
	switch {
	case score <= 0:
		return 5.0
	case score <= 5:
		return 4.5
	case score <= 10:
		return 4.0
	case score <= 15:
		return 3.5
	case score <= 20:
		return 3.0
	case score <= 25:
		return 2.5
	case score <= 30:
		return 2.0
	case score <= 35:
		return 1.5
	default:
		return 1.0
	}
}

// analyzeSugarSources splits the meal's sugars into natural and added
// fractions per 100g using food group and name heuristics.
func analyzeSugarSources(meal *models.Meal) SugarAnalysis {
	var naturalSugars, addedSugars float64
	var sources []string

	for _, food := range meal.Foods {
		foodSugars := food.Nutrient(models.NutrientSugars) * food.ServingSize / 100

		if isNaturalSugarSource(food) {
			naturalSugars += foodSugars
			sources = append(sources, fmt.Sprintf("%s (natural)", food.FoodName))
			continue
		}

		naturalRatio := naturalSugarRatio(food)
		naturalSugars += foodSugars * naturalRatio
		addedSugars += foodSugars * (1 - naturalRatio)

		if naturalRatio > 0.5 {
			sources = append(sources, fmt.Sprintf("%s (mostly natural)", food.FoodName))
		} else {
			sources = append(sources, fmt.Sprintf("%s (mostly added)", food.FoodName))
		}
	}

	weightFactor := 1.0
	if meal.TotalWeight > 0 {
		weightFactor = meal.TotalWeight / 100
	}

	var naturalPct float64
	if naturalSugars+addedSugars > 0 {
		naturalPct = naturalSugars / (naturalSugars + addedSugars) * 100
	}

	return SugarAnalysis{
		TotalSugars:       meal.Sugars,
		NaturalSugars:     naturalSugars / weightFactor,
		AddedSugars:       addedSugars / weightFactor,
		NaturalPercentage: naturalPct,
		Sources:           sources,
	}
}

// isNaturalSugarSource reports whether a food's sugars are entirely natural,
// like whole fruits and vegetables.
func isNaturalSugarSource(food *models.Food) bool {
	if naturalSugarGroups[food.FoodGroupID] {
		return true
	}
	name := strings.ToLower(food.FoodName)
	fruits := []string{"apple", "banana", "orange", "grape", "berry", "peach", "pear"}
	return containsAny(name, fruits...) && !strings.Contains(name, "juice")
}

// naturalSugarRatio estimates the natural share of a mixed food's sugars.
func naturalSugarRatio(food *models.Food) float64 {
	name := strings.ToLower(food.FoodName)

	switch {
	case naturalSugarGroups[food.FoodGroupID]:
		return 0.9
	case strings.Contains(name, "fruit") && !strings.Contains(name, "juice"):
		return 0.8
	case food.FoodGroupID == 1: // dairy: lactose is natural
		return 0.7
	case containsAny(name, "whole", "raw"):
		return 0.8
	case containsAny(name, "candy", "dessert", "cake", "cookie"):
		return 0.1
	case strings.Contains(name, "sweetened"):
		return 0.3
	default:
		return 0.5
	}
}

// nutrientAnalyses explains each nutrient's contribution to the score.
func (c *HSRCalculator) nutrientAnalyses(score models.HSRComponentScore) []models.NutrientAnalysis {
	analyses := []models.NutrientAnalysis{{
		NutrientName:      "Sugars (Total)",
		Value:             c.meal.Sugars,
		Unit:              "g",
		Points:            score.SugarPoints,
		Impact:            c.sugarImpact(),
		ThresholdPosition: fmt.Sprintf("Natural: %.1f%%", c.sugarAnalysis.NaturalPercentage),
		Recommendation:    c.sugarRecommendation(),
	}}

	for _, entry := range []struct {
		name       string
		value      float64
		unit       string
		thresholds []float64
	}{
		{"Energy Density", c.meal.EnergyKcal, "kcal/100g", c.thresholds.EnergyDensity},
		{"Saturated Fat", c.meal.SaturatedFat, "g", c.thresholds.SaturatedFat},
		{"Sodium", c.meal.Sodium, "mg", c.thresholds.Sodium},
		{"Protein", c.meal.Protein, "g", c.thresholds.Protein},
		{"Fiber", c.meal.Fiber, "g", c.thresholds.Fiber},
		{"FVNL", c.meal.FVNLPercent, "%", c.thresholds.FVNL},
	} {
		points := PointsForValue(entry.value, entry.thresholds)
		analyses = append(analyses, models.NutrientAnalysis{
			NutrientName:      entry.name,
			Value:             entry.value,
			Unit:              entry.unit,
			Points:            points,
			Impact:            nutrientImpact(entry.name, points),
			ThresholdPosition: thresholdPosition(points, entry.thresholds),
			Recommendation:    nutrientRecommendation(entry.name, entry.value),
		})
	}

	return analyses
}

func (c *HSRCalculator) sugarImpact() models.NutrientImpact {
	switch {
	case c.sugarAnalysis.AddedSugars > 10:
		return models.ImpactNegativeHigh
	case c.sugarAnalysis.AddedSugars > 5:
		return models.ImpactNegativeMedium
	case c.sugarAnalysis.NaturalPercentage > 70:
		return models.ImpactNeutral
	default:
		return models.ImpactNegativeLow
	}
}

func (c *HSRCalculator) sugarRecommendation() string {
	switch {
	case c.sugarAnalysis.AddedSugars > 10:
		return "Significantly reduce added sugar intake"
	case c.sugarAnalysis.AddedSugars > 5:
		return "Consider reducing added sugars"
	case c.sugarAnalysis.NaturalPercentage > 80:
		return "Good choice - mostly natural sugars"
	default:
		return "Balance natural and added sugar sources"
	}
}

var riskNutrients = map[string]bool{
	"Energy Density": true,
	"Saturated Fat":  true,
	"Sodium":         true,
}

func nutrientImpact(nutrient string, points int) models.NutrientImpact {
	if riskNutrients[nutrient] {
		switch {
		case points >= 8:
			return models.ImpactNegativeHigh
		case points >= 5:
			return models.ImpactNegativeMedium
		case points >= 2:
			return models.ImpactNegativeLow
		default:
			return models.ImpactNeutral
		}
	}
	switch {
	case points >= 6:
		return models.ImpactPositiveHigh
	case points >= 4:
		return models.ImpactPositiveMedium
	case points >= 2:
		return models.ImpactPositiveLow
	default:
		return models.ImpactNeutral
	}
}

func thresholdPosition(points int, thresholds []float64) string {
	if len(thresholds) == 0 {
		return "No thresholds available"
	}
	percentile := float64(points) / float64(len(thresholds)) * 100
	return fmt.Sprintf("%.0fth percentile", percentile)
}

var nutrientRecommendations = map[string]map[string]string{
	"Energy Density": {
		"high":   "Consider portion control and pairing with low-energy foods",
		"medium": "Moderate energy content - suitable as part of balanced diet",
		"low":    "Excellent for weight management and satiety",
	},
	"Protein": {
		"high":   "Excellent protein source for muscle health",
		"medium": "Good protein contribution",
		"low":    "Consider adding protein sources",
	},
	"Fiber": {
		"high":   "Excellent for digestive health and satiety",
		"medium": "Good fiber contribution",
		"low":    "Add fruits, vegetables, or whole grains",
	},
}

func nutrientRecommendation(nutrient string, value float64) string {
	level := "low"
	if value > 15 {
		level = "high"
	} else if value > 5 {
		level = "medium"
	}
	if rec, ok := nutrientRecommendations[nutrient][level]; ok {
		return rec
	}
	return "Standard nutritional guidelines apply"
}

// insights derives the meal's strengths and concerns.
func (c *HSRCalculator) insights() (strengths, concerns []models.HealthInsight) {
	if c.sugarAnalysis.NaturalPercentage > 70 {
		strengths = append(strengths, models.HealthInsight{
			Category:    "strength",
			Title:       "Predominantly Natural Sugars",
			Description: fmt.Sprintf("%.1f%% of sugars are from natural sources like fruits", c.sugarAnalysis.NaturalPercentage),
			Priority:    "medium",
		})
	}

	if c.context.SatietyIndex > 1.1 {
		strengths = append(strengths, models.HealthInsight{
			Category:    "strength",
			Title:       "High Satiety Potential",
			Description: "This food combination is likely to be more filling and satisfying",
			Priority:    "high",
		})
	}

	switch c.context.ProcessingLevel {
	case MinimallyProcessed:
		strengths = append(strengths, models.HealthInsight{
			Category:    "strength",
			Title:       "Minimally Processed",
			Description: "Foods are in their natural or lightly processed state",
			Priority:    "medium",
		})
	case UltraProcessed:
		concerns = append(concerns, models.HealthInsight{
			Category:    "concern",
			Title:       "Ultra-Processed Foods",
			Description: "Contains highly processed foods which may be less nutritious",
			Priority:    "high",
		})
	}

	return strengths, concerns
}

func (c *HSRCalculator) recommendations() []models.HealthInsight {
	var recommendations []models.HealthInsight

	if c.sugarAnalysis.AddedSugars > 5 {
		recommendations = append(recommendations, models.HealthInsight{
			Category:    "recommendation",
			Title:       "Reduce Added Sugars",
			Description: "Consider alternatives with less added sugar",
			Priority:    "high",
			Actionable:  true,
			ActionText:  "Look for unsweetened versions or add natural sweetness with fruits",
		})
	}

	if c.context.SatietyIndex < 0.9 {
		recommendations = append(recommendations, models.HealthInsight{
			Category:    "recommendation",
			Title:       "Improve Satiety",
			Description: "Add protein or fiber to make this meal more filling",
			Priority:    "medium",
			Actionable:  true,
			ActionText:  "Consider adding nuts, seeds, or high-fiber vegetables",
		})
	}

	if c.context.ProcessingLevel == UltraProcessed {
		recommendations = append(recommendations, models.HealthInsight{
			Category:    "recommendation",
			Title:       "Choose Less Processed Options",
			Description: "Opt for minimally processed alternatives when possible",
			Priority:    "medium",
			Actionable:  true,
			ActionText:  "Look for whole food alternatives or prepare from scratch",
		})
	}

	return recommendations
}

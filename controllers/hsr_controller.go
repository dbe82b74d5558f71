package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amankrah/ecodish365/config"
	"github.com/Amankrah/ecodish365/models"
	"github.com/Amankrah/ecodish365/services"
	"github.com/Amankrah/ecodish365/utils"
)

const (
	maxFoodsPerRequest = 20
	maxServingSizeG    = 2000
)

type calculateRequest struct {
	FoodIDs      []int     `json:"food_ids" binding:"required"`
	ServingSizes []float64 `json:"serving_sizes" binding:"required"`
	Category     string    `json:"category"`
}

type compareRequest struct {
	FoodIDs     []int   `json:"food_ids" binding:"required"`
	ServingSize float64 `json:"serving_size"`
}

func validateMealInput(foodIDs []int, servingSizes []float64) error {
	if len(foodIDs) == 0 || len(servingSizes) == 0 {
		return errors.New("both food_ids and serving_sizes are required")
	}
	if len(foodIDs) != len(servingSizes) {
		return errors.New("number of food IDs must match number of serving sizes")
	}
	if len(foodIDs) > maxFoodsPerRequest {
		return fmt.Errorf("maximum %d foods can be analyzed at once", maxFoodsPerRequest)
	}
	for i, size := range servingSizes {
		if size <= 0 {
			return fmt.Errorf("serving size %d must be a positive number", i+1)
		}
		if size > maxServingSizeG {
			return fmt.Errorf("serving size %d is too large (max %dg)", i+1, maxServingSizeG)
		}
	}
	return nil
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

func respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrFoodNotFound) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	config.Logger.Error("food lookup failed", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "failed to load food data")
}

// POST /api/hsr/calculate
func CalculateHSR(lookup *services.FoodLookupService, categorizer *services.MealCategorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req calculateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validateMealInput(req.FoodIDs, req.ServingSizes); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		foods, err := lookup.LookupAll(c.Request.Context(), req.FoodIDs, req.ServingSizes)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		var meal *models.Meal
		if req.Category != "" {
			category := models.Category(req.Category)
			if !category.Valid() {
				respondError(c, http.StatusBadRequest, fmt.Sprintf("unknown category %q", req.Category))
				return
			}
			meal = models.NewMealWithCategory(foods, category, categorizer.CategorizerFunc())
		} else {
			meal = models.NewMeal(foods, categorizer.CategorizerFunc())
		}

		calculator := services.NewHSRCalculator(meal)
		result := calculator.Calculate()

		c.JSON(http.StatusOK, gin.H{
			"success":               true,
			"hsr_result":            result,
			"food_details":          foodDetails(foods),
			"meal_categorization":   meal.CategoryAnalysis,
			"sugar_source_analysis": calculator.SugarSources(),
			"satiety_analysis":      calculator.Context(),
		})
	}
}

type foodComparison struct {
	FoodID       int                `json:"food_id"`
	FoodName     string             `json:"food_name"`
	ServingSize  float64            `json:"serving_size"`
	FoodGroup    string             `json:"food_group"`
	HSRRating    float64            `json:"hsr_rating"`
	HSRLevel     models.HSRLevel    `json:"hsr_level"`
	Category     string             `json:"category"`
	EnergyKJ     float64            `json:"energy_kj"`
	KeyNutrients map[string]float64 `json:"key_nutrients"`
	TopStrength  string             `json:"top_strength,omitempty"`
	TopConcern   string             `json:"top_concern,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// POST /api/hsr/compare
func CompareFoods(lookup *services.FoodLookupService, categorizer *services.MealCategorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req compareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.FoodIDs) == 0 {
			respondError(c, http.StatusBadRequest, "food_ids is required")
			return
		}
		if len(req.FoodIDs) > maxFoodsPerRequest {
			respondError(c, http.StatusBadRequest,
				fmt.Sprintf("maximum %d foods can be compared at once", maxFoodsPerRequest))
			return
		}
		if req.ServingSize == 0 {
			req.ServingSize = 100
		}
		if req.ServingSize < 0 || req.ServingSize > maxServingSizeG {
			respondError(c, http.StatusBadRequest, "serving_size must be a positive number up to 2000")
			return
		}

		comparisons := make([]foodComparison, 0, len(req.FoodIDs))
		for _, id := range req.FoodIDs {
			food, err := lookup.Lookup(c.Request.Context(), id, req.ServingSize)
			if err != nil {
				config.Logger.Warn("comparison food skipped",
					zap.Int("food_id", id), zap.Error(err))
				comparisons = append(comparisons, foodComparison{FoodID: id, Error: err.Error()})
				continue
			}

			meal := models.NewMeal([]*models.Food{food}, categorizer.CategorizerFunc())
			result := services.NewHSRCalculator(meal).Calculate()
			comparisons = append(comparisons, compareFood(food, result))
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"comparison": comparisonPayload(req.ServingSize, comparisons),
		})
	}
}

// comparisonPayload assembles the comparison body. Entries that failed to
// load stay visible in a failed list; summary and recommendations only
// consider the analyzed ones.
func comparisonPayload(servingSize float64, comparisons []foodComparison) gin.H {
	valid := make([]foodComparison, 0, len(comparisons))
	failed := make([]foodComparison, 0)
	for _, cmp := range comparisons {
		if cmp.Error == "" {
			valid = append(valid, cmp)
		} else {
			failed = append(failed, cmp)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].HSRRating > valid[j].HSRRating })

	return gin.H{
		"serving_size":          servingSize,
		"total_foods":           len(comparisons),
		"successfully_analyzed": len(valid),
		"foods":                 valid,
		"failed":                failed,
		"summary":               comparisonSummary(valid),
		"recommendations":       comparisonRecommendations(valid),
	}
}

// GET /api/hsr/food/:id
func GetFoodHSRProfile(lookup *services.FoodLookupService, categorizer *services.MealCategorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		foodID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "food id must be an integer")
			return
		}

		servingSize := 100.0
		if raw := c.Query("serving_size"); raw != "" {
			servingSize, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				respondError(c, http.StatusBadRequest, "serving_size must be a number")
				return
			}
		}
		if servingSize <= 0 || servingSize > maxServingSizeG {
			respondError(c, http.StatusBadRequest, "serving_size must be between 0 and 2000 grams")
			return
		}

		food, err := lookup.Lookup(c.Request.Context(), foodID, servingSize)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		meal := models.NewMeal([]*models.Food{food}, categorizer.CategorizerFunc())
		result := services.NewHSRCalculator(meal).Calculate()

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"food_profile": gin.H{
				"basic_info": gin.H{
					"food_id":      food.FoodID,
					"food_name":    food.FoodName,
					"serving_size": food.ServingSize,
					"food_group":   utils.FoodGroupNames[food.FoodGroupID],
					"hsr_category": food.Category.Name(),
					"fvnl_percent": food.FVNLPercent,
				},
				"hsr_analysis":           result,
				"nutritional_highlights": nutritionalHighlights(food),
				"usage_recommendations":  usageRecommendations(food, result),
			},
		})
	}
}

// POST /api/hsr/meal-insights
func GetMealInsights(lookup *services.FoodLookupService, categorizer *services.MealCategorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req calculateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validateMealInput(req.FoodIDs, req.ServingSizes); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		foods, err := lookup.LookupAll(c.Request.Context(), req.FoodIDs, req.ServingSizes)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		meal := models.NewMeal(foods, categorizer.CategorizerFunc())
		calculator := services.NewHSRCalculator(meal)
		result := calculator.Calculate()

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"meal_insights": gin.H{
				"meal_composition":          mealComposition(foods),
				"nutritional_balance":       nutritionalBalance(meal),
				"hsr_breakdown":             result.ComponentScore,
				"improvement_opportunities": improvementOpportunities(meal),
				"sugar_source_analysis":     calculator.SugarSources(),
				"satiety_analysis":          calculator.Context(),
			},
			"food_details":        foodDetails(foods),
			"meal_categorization": meal.CategoryAnalysis,
		})
	}
}

func compareFood(food *models.Food, result *models.MealHSRResult) foodComparison {
	cmp := foodComparison{
		FoodID:      food.FoodID,
		FoodName:    food.FoodName,
		ServingSize: food.ServingSize,
		FoodGroup:   utils.FoodGroupNames[food.FoodGroupID],
		HSRRating:   result.StarRating,
		HSRLevel:    result.Level,
		Category:    result.Category.Name(),
		EnergyKJ:    result.TotalEnergyKJ,
		KeyNutrients: map[string]float64{
			"protein":       food.Nutrient(models.NutrientProtein),
			"saturated_fat": food.Nutrient(models.NutrientSaturatedFat),
			"sugar":         food.Nutrient(models.NutrientSugars),
			"sodium":        food.Nutrient(models.NutrientSodium),
			"fiber":         food.Nutrient(models.NutrientFiber),
			"fvnl_percent":  food.FVNLPercent,
		},
	}
	if len(result.Strengths) > 0 {
		cmp.TopStrength = result.Strengths[0].Title
	}
	if len(result.Concerns) > 0 {
		cmp.TopConcern = result.Concerns[0].Title
	}
	return cmp
}

func comparisonSummary(comparisons []foodComparison) gin.H {
	if len(comparisons) == 0 {
		return gin.H{}
	}

	var sum float64
	distribution := map[string]int{}
	for _, cmp := range comparisons {
		sum += cmp.HSRRating
		distribution[string(models.LevelForStars(cmp.HSRRating))]++
	}

	return gin.H{
		"highest_rated":       comparisons[0],
		"lowest_rated":        comparisons[len(comparisons)-1],
		"average_rating":      sum / float64(len(comparisons)),
		"rating_distribution": distribution,
	}
}

func comparisonRecommendations(comparisons []foodComparison) []string {
	if len(comparisons) == 0 {
		return nil
	}

	var recommendations []string
	best := comparisons[0]
	worst := comparisons[len(comparisons)-1]
	if best.HSRRating > worst.HSRRating {
		recommendations = append(recommendations,
			fmt.Sprintf("Consider choosing %s over %s for better nutritional value", best.FoodName, worst.FoodName))
	}

	var excellent []string
	for _, cmp := range comparisons {
		if cmp.HSRRating >= 4.5 && len(excellent) < 3 {
			excellent = append(excellent, cmp.FoodName)
		}
	}
	if len(excellent) > 0 {
		names := excellent[0]
		for _, name := range excellent[1:] {
			names += ", " + name
		}
		recommendations = append(recommendations, "Excellent choices: "+names)
	}

	return recommendations
}

func foodDetails(foods []*models.Food) []gin.H {
	details := make([]gin.H, 0, len(foods))
	for _, food := range foods {
		details = append(details, gin.H{
			"food_id":             food.FoodID,
			"food_name":           food.FoodName,
			"serving_size":        food.ServingSize,
			"category":            food.Category.Name(),
			"fvnl_percent":        food.FVNLPercent,
			"food_group_id":       food.FoodGroupID,
			"category_confidence": food.CategoryConfidence,
			"category_source":     food.CategorySource,
		})
	}
	return details
}

func nutritionalHighlights(food *models.Food) gin.H {
	highlights := gin.H{}
	var highIn, goodSourceOf []string

	protein := food.Nutrient(models.NutrientProtein)
	if protein > 15 {
		goodSourceOf = append(goodSourceOf, "protein")
	} else if protein > 10 {
		highIn = append(highIn, "protein")
	}

	fiber := food.Nutrient(models.NutrientFiber)
	if fiber > 8 {
		goodSourceOf = append(goodSourceOf, "fiber")
	} else if fiber > 5 {
		highIn = append(highIn, "fiber")
	}

	if food.FVNLPercent > 67 {
		switch food.FoodGroupID {
		case 9:
			goodSourceOf = append(goodSourceOf, "vitamin C and natural fruit nutrients")
		case 11:
			goodSourceOf = append(goodSourceOf, "vitamins, minerals, and fiber")
		case 12:
			goodSourceOf = append(goodSourceOf, "healthy fats and protein")
		case 16:
			goodSourceOf = append(goodSourceOf, "plant protein and fiber")
		default:
			goodSourceOf = append(goodSourceOf, "nutrients from plant foods")
		}
	}

	if food.Nutrient(models.NutrientSaturatedFat) > 5 {
		highIn = append(highIn, "saturated fat")
	}
	if food.Nutrient(models.NutrientSugars) > 15 {
		highIn = append(highIn, "sugar")
	}
	if food.Nutrient(models.NutrientSodium) > 600 {
		highIn = append(highIn, "sodium")
	}

	highlights["high_in"] = highIn
	highlights["good_source_of"] = goodSourceOf
	return highlights
}

func usageRecommendations(food *models.Food, result *models.MealHSRResult) []string {
	var recommendations []string

	switch {
	case result.StarRating >= 4.0:
		recommendations = append(recommendations, "Great choice for regular consumption")
	case result.StarRating >= 3.0:
		recommendations = append(recommendations, "Good as part of a balanced diet")
	default:
		recommendations = append(recommendations, "Enjoy in moderation")
	}

	if food.Nutrient(models.NutrientSodium) > 600 {
		recommendations = append(recommendations, "Consider pairing with low-sodium foods")
	}
	if food.Nutrient(models.NutrientFiber) > 5 {
		recommendations = append(recommendations, "Great for digestive health")
	}

	return recommendations
}

func mealComposition(foods []*models.Food) gin.H {
	var totalWeight float64
	groupWeights := map[string]float64{}
	for _, food := range foods {
		totalWeight += food.ServingSize
		name := utils.FoodGroupNames[food.FoodGroupID]
		if name == "" {
			name = "Unknown"
		}
		groupWeights[name] += food.ServingSize
	}

	groupPercentages := map[string]float64{}
	if totalWeight > 0 {
		for name, weight := range groupWeights {
			groupPercentages[name] = weight / totalWeight * 100
		}
	}

	return gin.H{
		"total_foods":             len(foods),
		"total_weight":            totalWeight,
		"food_group_distribution": groupPercentages,
	}
}

func nutritionalBalance(meal *models.Meal) gin.H {
	macros := gin.H{}
	if meal.EnergyKcal > 0 {
		macros = gin.H{
			"protein_percent":      meal.Protein * 4 / meal.EnergyKcal * 100,
			"carbohydrate_percent": meal.Carbohydrate * 4 / meal.EnergyKcal * 100,
			"fat_percent":          meal.FatTotal * 9 / meal.EnergyKcal * 100,
		}
	}

	return gin.H{
		"macronutrient_distribution": macros,
		"nutrient_density": gin.H{
			"protein_per_100g": meal.Protein,
			"fiber_per_100g":   meal.Fiber,
			"sodium_per_100g":  meal.Sodium,
			"fvnl_percent":     meal.FVNLPercent,
		},
		"nutritional_quality": gin.H{
			"high_protein": meal.Protein >= 15,
			"high_fiber":   meal.Fiber >= 5,
			"high_fvnl":    meal.FVNLPercent >= 67,
			"low_sodium":   meal.Sodium <= 400,
			"low_sugar":    meal.Sugars <= 10,
		},
	}
}

func improvementOpportunities(meal *models.Meal) []gin.H {
	var opportunities []gin.H

	if meal.Fiber < 5 {
		opportunities = append(opportunities, gin.H{
			"area":       "fiber",
			"current":    meal.Fiber,
			"target":     5,
			"suggestion": "Add fruits, vegetables, or whole grains",
		})
	}
	if meal.Sodium > 600 {
		opportunities = append(opportunities, gin.H{
			"area":       "sodium",
			"current":    meal.Sodium,
			"target":     400,
			"suggestion": "Choose lower-sodium alternatives",
		})
	}
	if meal.FVNLPercent < 40 {
		opportunities = append(opportunities, gin.H{
			"area":       "fvnl",
			"current":    meal.FVNLPercent,
			"target":     67,
			"suggestion": "Add more fruits, vegetables, nuts, or legumes",
		})
	}

	return opportunities
}

package models

// HSRLevel buckets a star rating into a descriptive band.
type HSRLevel string

const (
	LevelPoor         HSRLevel = "poor"          // 0.5-1.0 stars
	LevelBelowAverage HSRLevel = "below_average" // 1.5-2.0 stars
	LevelAverage      HSRLevel = "average"       // 2.5-3.0 stars
	LevelGood         HSRLevel = "good"          // 3.5-4.0 stars
	LevelExcellent    HSRLevel = "excellent"     // 4.5-5.0 stars
)

// LevelForStars maps a star rating to its level band.
func LevelForStars(stars float64) HSRLevel {
	switch {
	case stars >= 4.5:
		return LevelExcellent
	case stars >= 3.5:
		return LevelGood
	case stars >= 2.5:
		return LevelAverage
	case stars >= 1.5:
		return LevelBelowAverage
	default:
		return LevelPoor
	}
}

// NutrientImpact classifies how a nutrient moved the score.
type NutrientImpact string

const (
	ImpactNegativeHigh   NutrientImpact = "negative_high"
	ImpactNegativeMedium NutrientImpact = "negative_medium"
	ImpactNegativeLow    NutrientImpact = "negative_low"
	ImpactNeutral        NutrientImpact = "neutral"
	ImpactPositiveLow    NutrientImpact = "positive_low"
	ImpactPositiveMedium NutrientImpact = "positive_medium"
	ImpactPositiveHigh   NutrientImpact = "positive_high"
)

// NutrientAnalysis explains one nutrient's contribution to the score.
type NutrientAnalysis struct {
	NutrientName      string         `json:"nutrient_name"`
	Value             float64        `json:"value"`
	Unit              string         `json:"unit"`
	Points            int            `json:"points"`
	Impact            NutrientImpact `json:"impact"`
	ThresholdPosition string         `json:"threshold_position"`
	Recommendation    string         `json:"recommendation,omitempty"`
}

// HealthInsight is a structured strength, concern or recommendation.
type HealthInsight struct {
	Category    string `json:"category"` // strength | concern | recommendation
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // high | medium | low
	Actionable  bool   `json:"actionable,omitempty"`
	ActionText  string `json:"action_text,omitempty"`
}

// HSRComponentScore is the full point breakdown, including the
// scientific adjustments applied on top of the baseline/modifying split.
type HSRComponentScore struct {
	BaselinePoints     int     `json:"baseline_points"`
	EnergyPoints       int     `json:"energy_points"`
	SaturatedFatPoints int     `json:"saturated_fat_points"`
	SugarPoints        int     `json:"sugar_points"`
	SodiumPoints       int     `json:"sodium_points"`
	ModifyingPoints    int     `json:"modifying_points"`
	ProteinPoints      int     `json:"protein_points"`
	FiberPoints        int     `json:"fiber_points"`
	FVNLPoints         int     `json:"fvnl_points"`
	FinalScore         int     `json:"final_score"`
	StarRating         float64 `json:"star_rating"`

	SugarNaturalPoints int     `json:"sugar_natural_points"`
	SugarAddedPoints   int     `json:"sugar_added_points"`
	SatietyAdjustment  float64 `json:"satiety_adjustment"`
	ProcessingPenalty  float64 `json:"processing_penalty"`
	NaturalnessBonus   float64 `json:"naturalness_bonus"`
}

// MealHSRResult is the assembled calculation output. Value object; never
// mutated after the result assembler returns it.
type MealHSRResult struct {
	StarRating float64  `json:"star_rating"`
	Level      HSRLevel `json:"level"`
	Category   Category `json:"category"`

	ComponentScore HSRComponentScore `json:"component_score"`

	NutrientAnalyses []NutrientAnalysis `json:"nutrient_analyses"`

	Strengths       []HealthInsight `json:"strengths"`
	Concerns        []HealthInsight `json:"concerns"`
	Recommendations []HealthInsight `json:"recommendations"`

	TotalWeight     float64 `json:"total_weight"`
	TotalEnergyKJ   float64 `json:"total_energy_kj"`
	TotalEnergyKcal float64 `json:"total_energy_kcal"`

	ConfidenceScore float64  `json:"confidence_score"`
	Warnings        []string `json:"warnings,omitempty"`
}

var levelDescriptions = map[HSRLevel]string{
	LevelPoor:         "This food has a low nutritional quality. Consider choosing healthier alternatives.",
	LevelBelowAverage: "This food has below-average nutritional quality. There are healthier options available.",
	LevelAverage:      "This food has average nutritional quality. Good as part of a balanced diet.",
	LevelGood:         "This food has good nutritional quality. A healthy choice for regular consumption.",
	LevelExcellent:    "This food has excellent nutritional quality. An ideal choice for healthy eating.",
}

// RatingDescription returns user-facing copy for the rating band.
func (r *MealHSRResult) RatingDescription() string {
	if desc, ok := levelDescriptions[r.Level]; ok {
		return desc
	}
	return "Rating level unknown"
}

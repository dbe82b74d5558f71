package models

// Nutrient map keys as they appear in the CNF nutrient name table.
const (
	NutrientEnergyKcal   = "ENERGY (KILOCALORIES)"
	NutrientEnergyKJ     = "ENERGY (KILOJOULES)"
	NutrientProtein      = "PROTEIN"
	NutrientCarbohydrate = "CARBOHYDRATE, TOTAL"
	NutrientFiber        = "FIBRE, TOTAL DIETARY"
	NutrientSugars       = "SUGARS, TOTAL"
	NutrientFatTotal     = "FAT, TOTAL"
	NutrientSaturatedFat = "FATTY ACIDS, SATURATED, TOTAL"
	NutrientSodium       = "SODIUM"
	NutrientCalcium      = "CALCIUM"
)

// Classification carries a category decision plus its provenance.
type Classification struct {
	Category   Category
	Confidence float64
	Source     string
}

// FallbackClassification is used when a food cannot be classified
// (no food group, or the classifier itself failed).
func FallbackClassification(source string) Classification {
	return Classification{Category: CategoryFood, Confidence: 0.3, Source: source}
}

// Food is a single food item with nutrient amounts per 100 g.
// It is immutable after construction; reclassification produces a copy.
type Food struct {
	FoodID      int                `json:"food_id"`
	FoodName    string             `json:"food_name"`
	ServingSize float64            `json:"serving_size"` // grams
	Nutrients   map[string]float64 `json:"nutrients"`    // per 100 g
	FVNLPercent float64            `json:"fvnl_percent"` // 0-100
	FoodGroupID int                `json:"food_group_id"`

	Category           Category `json:"category"`
	CategoryConfidence float64  `json:"category_confidence"`
	CategorySource     string   `json:"category_source"`
}

// NewFood builds a Food from raw CNF data plus a classification decision.
// Classification happens before construction (see utils.ClassifyFood) so
// the finished value never mutates.
func NewFood(foodID int, foodName string, servingSize float64, nutrients map[string]float64, fvnlPercent float64, foodGroupID int, cls Classification) *Food {
	if nutrients == nil {
		nutrients = map[string]float64{}
	}
	return &Food{
		FoodID:             foodID,
		FoodName:           foodName,
		ServingSize:        servingSize,
		Nutrients:          nutrients,
		FVNLPercent:        fvnlPercent,
		FoodGroupID:        foodGroupID,
		Category:           cls.Category,
		CategoryConfidence: cls.Confidence,
		CategorySource:     cls.Source,
	}
}

// Nutrient returns the per-100g amount for a nutrient key, 0 if absent.
func (f *Food) Nutrient(key string) float64 {
	return f.Nutrients[key]
}

// WithCategory returns a copy of the food with a manually assigned category.
func (f *Food) WithCategory(category Category) *Food {
	clone := *f
	clone.Category = category
	clone.CategoryConfidence = 1.0
	clone.CategorySource = CategorySourceManual
	return &clone
}

package utils

import (
	"regexp"
	"strings"

	"github.com/Amankrah/ecodish365/models"
)

// FoodGroupNames maps CNF food group IDs to their descriptions.
var FoodGroupNames = map[int]string{
	1:  "Dairy and Egg Products",
	2:  "Spices and Herbs",
	3:  "Baby Foods",
	4:  "Fats and Oils",
	5:  "Poultry Products",
	6:  "Soups, Sauces and Gravies",
	7:  "Sausages and Luncheon Meats",
	8:  "Breakfast Cereals",
	9:  "Fruits and Fruit Juices",
	10: "Pork Products",
	11: "Vegetables and Vegetable Products",
	12: "Nuts and Seeds",
	13: "Beef Products",
	14: "Beverages",
	15: "Finfish and Shellfish Products",
	16: "Legumes and Legume Products",
	17: "Lamb, Veal and Game",
	18: "Baked Products",
	19: "Sweets",
	20: "Cereals, Grains and Pasta",
	21: "Fast Foods",
	22: "Mixed Dishes",
	25: "Snacks",
}

// FVNLGroups are the fruit/vegetable/nut/legume food groups.
var FVNLGroups = map[int]bool{9: true, 11: true, 12: true, 16: true}

// Default category per CNF food group. Unmapped groups fall through to FOOD.
var foodGroupCategories = map[int]models.Category{
	1:  models.CategoryDairyFood,
	2:  models.CategoryFood,
	3:  models.CategoryFood,
	4:  models.CategoryOilsAndSpreads,
	5:  models.CategoryFood,
	6:  models.CategoryFood,
	7:  models.CategoryFood,
	8:  models.CategoryFood,
	9:  models.CategoryFood,
	10: models.CategoryFood,
	11: models.CategoryFood,
	12: models.CategoryFood,
	13: models.CategoryFood,
	14: models.CategoryBeverage,
	15: models.CategoryFood,
	16: models.CategoryFood,
	17: models.CategoryFood,
	18: models.CategoryFood,
	19: models.CategoryFood,
	20: models.CategoryFood,
	21: models.CategoryFood,
	22: models.CategoryFood,
	25: models.CategoryFood,
}

// keywordSet matches whole words only, so "boiled" never matches "oil".
type keywordSet struct {
	pattern *regexp.Regexp
}

func newKeywordSet(keywords ...string) *keywordSet {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return &keywordSet{
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`),
	}
}

func (k *keywordSet) Matches(name string) bool {
	return k.pattern.MatchString(name)
}

var (
	cheeseKeywords = newKeywordSet(
		"cheese", "cheddar", "mozzarella", "parmesan", "brie", "camembert",
		"gouda", "swiss", "blue", "feta", "cottage cheese", "cream cheese",
		"ricotta", "provolone", "gruyere",
	)
	beverageKeywords = newKeywordSet(
		"juice", "drink", "beverage", "soda", "cola", "water", "tea", "coffee",
		"smoothie", "shake", "lemonade", "cocktail", "beer", "wine", "alcohol",
	)
	dairyBeverageKeywords = newKeywordSet(
		"milk", "yogurt drink", "kefir", "buttermilk", "chocolate milk",
		"flavoured milk", "milk shake", "dairy drink",
	)
	oilSpreadKeywords = newKeywordSet(
		"oil", "butter", "margarine", "spread", "shortening", "lard",
		"ghee", "cooking fat", "vegetable oil", "olive oil",
	)
)

// categoryOverride is one keyword rule. Rules are evaluated in declaration
// order; the first match wins.
type categoryOverride struct {
	appliesTo func(foodGroupID int) bool
	keywords  *keywordSet
	category  models.Category
}

func groupIs(id int) func(int) bool { return func(g int) bool { return g == id } }
func anyGroup() func(int) bool      { return func(int) bool { return true } }

// Override precedence: cheese and dairy beverages within the dairy group,
// fruit juices within the fruit group, dairy drinks within the beverage
// group, then oils/spreads anywhere (the unconditional rule).
var categoryOverrides = []categoryOverride{
	{appliesTo: groupIs(1), keywords: cheeseKeywords, category: models.CategoryCheese},
	{appliesTo: groupIs(1), keywords: dairyBeverageKeywords, category: models.CategoryDairyBeverage},
	{appliesTo: groupIs(9), keywords: beverageKeywords, category: models.CategoryBeverage},
	{appliesTo: groupIs(14), keywords: dairyBeverageKeywords, category: models.CategoryDairyBeverage},
	{appliesTo: anyGroup(), keywords: oilSpreadKeywords, category: models.CategoryOilsAndSpreads},
}

// CategoryForFoodGroup resolves a category from the food group table plus
// the keyword override rules.
func CategoryForFoodGroup(foodGroupID int, foodName string) models.Category {
	name := strings.ToLower(foodName)

	for _, rule := range categoryOverrides {
		if rule.appliesTo(foodGroupID) && rule.keywords.Matches(name) {
			return rule.category
		}
	}

	if category, ok := foodGroupCategories[foodGroupID]; ok {
		return category
	}
	return models.CategoryFood
}

// ClassifyFood produces the classification for a food given its group and
// name. A missing group (<= 0) yields the documented FOOD fallback.
func ClassifyFood(foodGroupID int, foodName string) models.Classification {
	if foodGroupID <= 0 {
		return models.FallbackClassification(models.CategorySourceFallback)
	}
	return models.Classification{
		Category:   CategoryForFoodGroup(foodGroupID, foodName),
		Confidence: 0.9,
		Source:     models.CategorySourceAuto,
	}
}

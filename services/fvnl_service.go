package services

import (
	"regexp"
	"strings"

	"github.com/Amankrah/ecodish365/utils"
)

// FVNL estimation from CNF naming conventions. FVNL-group foods start at a
// base percentage and lose a processing factor; mixed foods are estimated
// from ingredient patterns in the name.

// Processing factor patterns, checked in order of severity.
var (
	highProcessingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(battered|breaded|fried|deep.?fried)\b`),
		regexp.MustCompile(`\b(candied|sweetened.*syrup|extra heavy syrup)\b`),
		regexp.MustCompile(`\b(jam|jelly|preserve|marmalade)\b`),
	}
	mediumProcessingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bcanned.*(?:heavy syrup|light syrup|syrup pack)\b`),
		regexp.MustCompile(`\b(canned|preserved|pickled)\b`),
		regexp.MustCompile(`\b(dried|dehydrated|freeze.?dried)\b`),
		regexp.MustCompile(`\b(frozen.*sweetened|frozen.*heated)\b`),
	}
	lightProcessingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bcanned.*(?:water pack|juice pack|no.*sugar)\b`),
		regexp.MustCompile(`\b(frozen.*unsweetened|frozen.*unprepared)\b`),
		regexp.MustCompile(`\bunsweetened\b`),
		regexp.MustCompile(`\b(cooked|boiled|steamed|baked|roasted|grilled|drained)\b`),
	}
	minimalProcessingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(raw|fresh)\b`),
		regexp.MustCompile(`\bwith skin\b`),
		regexp.MustCompile(`\bunprepared\b`),
	}
)

type fvnlPattern struct {
	pattern *regexp.Regexp
	value   float64
}

// Ingredient patterns for mixed foods, with estimated FVNL percentages.
var mixedFoodPatterns = []fvnlPattern{
	{regexp.MustCompile(`\b(apple|apricot|banana|berry|blueberry|blackberry|cherry|cranberry|grape|grapefruit|lemon|lime|orange|peach|pear|pineapple|plum|strawberry|watermelon|melon)\b`), 45},
	{regexp.MustCompile(`\bfruit\b`), 35},
	{regexp.MustCompile(`\b(tomato|carrot|broccoli|spinach|lettuce|onion|pepper|potato|sweet potato|corn|peas|beans|bean|celery|mushroom|cabbage|cucumber|asparagus)\b`), 40},
	{regexp.MustCompile(`\bvegetable\b`), 35},
	{regexp.MustCompile(`\b(almond|walnut|peanut|cashew|pecan|hazelnut|pine nut|coconut|sesame|sunflower)\b`), 25},
	{regexp.MustCompile(`\bnut\b`), 20},
	{regexp.MustCompile(`\b(lentil|chickpea|kidney bean|lima bean|navy bean|black bean|soy|tofu)\b`), 30},
	{regexp.MustCompile(`\bsalad\b`), 70},
	{regexp.MustCompile(`\bsoup.*(?:vegetable|tomato|pea|bean|lentil)\b`), 45},
	{regexp.MustCompile(`\bstir.?fry\b`), 35},
	{regexp.MustCompile(`\bchow mein\b`), 25},
	{regexp.MustCompile(`\bpot roast.*(?:potato|peas|corn)\b`), 30},
	{regexp.MustCompile(`\bsauce.*(?:tomato|onion|pepper|mushroom)\b`), 40},
}

// Dishes explicitly served "with" or "and" vegetables carry at least 25%.
var withVegetablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwith.*(?:potato|peas|corn|carrot|onion|pepper|tomato|mushroom|vegetable)\b`),
	regexp.MustCompile(`\band.*(?:potato|peas|corn|carrot|onion|pepper|tomato|mushroom|vegetable)\b`),
}

// EstimateFVNLContent estimates the fruit/vegetable/nut/legume percentage
// of a food from its CNF description and food group.
func EstimateFVNLContent(foodName string, foodGroupID int) float64 {
	name := strings.ToLower(foodName)

	if utils.FVNLGroups[foodGroupID] {
		return baseFVNLForGroup(foodGroupID, name) * processingFactor(name)
	}
	return mixedFoodFVNL(name, foodGroupID)
}

func baseFVNLForGroup(foodGroupID int, name string) float64 {
	switch foodGroupID {
	case 9:
		// Juices lose whole-fruit credit; dried fruit keeps most of it.
		if containsAny(name, "juice", "nectar", "drink", "cocktail") {
			if strings.Contains(name, "concentrate") {
				return 50
			}
			return 67
		}
		if containsAny(name, "dried", "dehydrated") {
			return 90
		}
		return 100
	case 11, 12, 16:
		return 100
	default:
		return 0
	}
}

// processingFactor scales base FVNL down by processing severity.
func processingFactor(name string) float64 {
	for _, p := range highProcessingPatterns {
		if p.MatchString(name) {
			return 0.5
		}
	}
	for _, p := range mediumProcessingPatterns {
		if p.MatchString(name) {
			return 0.75
		}
	}
	for _, p := range lightProcessingPatterns {
		if p.MatchString(name) {
			return 0.95
		}
	}
	for _, p := range minimalProcessingPatterns {
		if p.MatchString(name) {
			return 1.0
		}
	}
	return 0.9
}

func mixedFoodFVNL(name string, foodGroupID int) float64 {
	var estimate float64
	for _, p := range mixedFoodPatterns {
		if p.pattern.MatchString(name) && p.value > estimate {
			estimate = p.value
		}
	}
	for _, p := range withVegetablePatterns {
		if p.MatchString(name) && estimate < 25 {
			estimate = 25
		}
	}

	switch foodGroupID {
	case 22: // mixed dishes
		if estimate == 0 {
			return 5
		}
		return minFloat(estimate*1.2, 80)
	case 6: // soups, sauces and gravies
		if containsAny(name, "vegetable", "tomato", "onion", "mushroom", "celery") {
			return maxFloat(estimate, 35)
		}
		if strings.Contains(name, "soup") && estimate == 0 {
			return 10
		}
	case 18: // baked products
		if estimate > 0 {
			return minFloat(estimate*0.7, 60)
		}
	case 21: // fast foods
		if estimate > 0 {
			return minFloat(estimate*0.8, 50)
		}
	}

	return estimate
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

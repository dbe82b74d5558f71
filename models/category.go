package models

// HSR category codes follow the Health Star Rating system guide:
// plain codes for general foods/beverages, "D" suffix for dairy variants.
type Category string

const (
	CategoryBeverage       Category = "1"
	CategoryDairyBeverage  Category = "1D"
	CategoryFood           Category = "2"
	CategoryDairyFood      Category = "2D"
	CategoryOilsAndSpreads Category = "3"
	CategoryCheese         Category = "3D"
)

// AllCategories lists every valid category in a stable order.
var AllCategories = []Category{
	CategoryBeverage,
	CategoryDairyBeverage,
	CategoryFood,
	CategoryDairyFood,
	CategoryOilsAndSpreads,
	CategoryCheese,
}

var categoryNames = map[Category]string{
	CategoryBeverage:       "Beverage",
	CategoryDairyBeverage:  "Dairy Beverage",
	CategoryFood:           "Food",
	CategoryDairyFood:      "Dairy Food",
	CategoryOilsAndSpreads: "Oils and Spreads",
	CategoryCheese:         "Cheese",
}

func (c Category) Name() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// IsLiquid reports whether the category represents a drinkable product.
func (c Category) IsLiquid() bool {
	return c == CategoryBeverage || c == CategoryDairyBeverage
}

func (c Category) IsDairy() bool {
	return c == CategoryDairyBeverage || c == CategoryDairyFood || c == CategoryCheese
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// Provenance of a category assignment.
const (
	CategorySourceAuto          = "auto_assigned"
	CategorySourceManual        = "manual"
	CategorySourceFallback      = "fallback"
	CategorySourceErrorFallback = "error_fallback"
)

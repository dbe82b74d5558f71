package models

// Rows from the Canadian Nutrient File tables, loaded into postgres by the
// CNF ingestion pipeline (external to this service).

type CNFFood struct {
	FoodID          int    `gorm:"primaryKey;column:food_id"`
	FoodDescription string `gorm:"column:food_description;not null"`
	FoodGroupID     int    `gorm:"column:food_group_id;index"`
}

func (CNFFood) TableName() string { return "cnf_food_names" }

type CNFFoodGroup struct {
	FoodGroupID   int    `gorm:"primaryKey;column:food_group_id"`
	FoodGroupName string `gorm:"column:food_group_name"`
}

func (CNFFoodGroup) TableName() string { return "cnf_food_groups" }

type CNFNutrientName struct {
	NutrientID   int    `gorm:"primaryKey;column:nutrient_id"`
	NutrientName string `gorm:"column:nutrient_name;index"`
	NutrientUnit string `gorm:"column:nutrient_unit"`
}

func (CNFNutrientName) TableName() string { return "cnf_nutrient_names" }

// CNFNutrientAmount is the per-100g amount of one nutrient in one food.
type CNFNutrientAmount struct {
	FoodID        int     `gorm:"primaryKey;column:food_id"`
	NutrientID    int     `gorm:"primaryKey;column:nutrient_id"`
	NutrientValue float64 `gorm:"column:nutrient_value"`
}

func (CNFNutrientAmount) TableName() string { return "cnf_nutrient_amounts" }

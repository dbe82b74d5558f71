package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Amankrah/ecodish365/config"
	"github.com/Amankrah/ecodish365/models"
	"github.com/Amankrah/ecodish365/utils"
)

// ErrFoodNotFound is returned when a food id has no CNF record.
var ErrFoodNotFound = errors.New("food not found")

// FoodLookupService builds classified Food values from the CNF tables.
// Constructed foods are cached per (food id, serving size); the cache is
// injected so callers control its size and lifetime.
type FoodLookupService struct {
	db    *gorm.DB
	cache *FoodCache
}

func NewFoodLookupService(db *gorm.DB, cache *FoodCache) *FoodLookupService {
	return &FoodLookupService{db: db, cache: cache}
}

// Lookup loads a food and its nutrient amounts, estimates FVNL content and
// classifies it. Results come from the cache when present.
func (s *FoodLookupService) Lookup(ctx context.Context, foodID int, servingSize float64) (*models.Food, error) {
	if servingSize <= 0 {
		return nil, fmt.Errorf("invalid serving size %.1f for food %d", servingSize, foodID)
	}

	if food, ok := s.cache.Get(foodID, servingSize); ok {
		return food, nil
	}

	var cnfFood models.CNFFood
	if err := s.db.WithContext(ctx).First(&cnfFood, "food_id = ?", foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrFoodNotFound, foodID)
		}
		return nil, fmt.Errorf("load food %d: %w", foodID, err)
	}

	nutrients, err := s.loadNutrients(ctx, foodID)
	if err != nil {
		return nil, err
	}

	fvnl := EstimateFVNLContent(cnfFood.FoodDescription, cnfFood.FoodGroupID)
	cls := utils.ClassifyFood(cnfFood.FoodGroupID, cnfFood.FoodDescription)

	food := models.NewFood(foodID, cnfFood.FoodDescription, servingSize, nutrients, fvnl, cnfFood.FoodGroupID, cls)
	s.cache.Put(food)

	config.Logger.Debug("food loaded",
		zap.Int("food_id", foodID),
		zap.String("category", string(food.Category)),
		zap.Int("nutrients", len(nutrients)))

	return food, nil
}

// LookupAll resolves a batch of foods with matching serving sizes.
func (s *FoodLookupService) LookupAll(ctx context.Context, foodIDs []int, servingSizes []float64) ([]*models.Food, error) {
	if len(foodIDs) != len(servingSizes) {
		return nil, fmt.Errorf("got %d food ids but %d serving sizes", len(foodIDs), len(servingSizes))
	}

	foods := make([]*models.Food, 0, len(foodIDs))
	for i, id := range foodIDs {
		food, err := s.Lookup(ctx, id, servingSizes[i])
		if err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}
	return foods, nil
}

// loadNutrients returns the per-100g amounts keyed by CNF nutrient name.
func (s *FoodLookupService) loadNutrients(ctx context.Context, foodID int) (map[string]float64, error) {
	var rows []struct {
		NutrientName  string
		NutrientValue float64
	}
	err := s.db.WithContext(ctx).Table("cnf_nutrient_amounts").
		Select("cnf_nutrient_names.nutrient_name, cnf_nutrient_amounts.nutrient_value").
		Joins("JOIN cnf_nutrient_names ON cnf_nutrient_names.nutrient_id = cnf_nutrient_amounts.nutrient_id").
		Where("cnf_nutrient_amounts.food_id = ?", foodID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load nutrients for food %d: %w", foodID, err)
	}

	nutrients := make(map[string]float64, len(rows))
	for _, row := range rows {
		nutrients[row.NutrientName] = row.NutrientValue
	}
	return nutrients, nil
}

package services

import (
	"sync"

	"github.com/Amankrah/ecodish365/models"
)

type foodCacheKey struct {
	FoodID      int
	ServingSize float64
}

// FoodCache is a bounded cache of constructed foods keyed by id and serving
// size. When full, an arbitrary entry is evicted; entries are immutable so
// eviction never loses correctness, only a rebuild.
type FoodCache struct {
	mu      sync.RWMutex
	maxSize int
	entries map[foodCacheKey]*models.Food
}

func NewFoodCache(maxSize int) *FoodCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &FoodCache{
		maxSize: maxSize,
		entries: make(map[foodCacheKey]*models.Food),
	}
}

func (c *FoodCache) Get(foodID int, servingSize float64) (*models.Food, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	food, ok := c.entries[foodCacheKey{FoodID: foodID, ServingSize: servingSize}]
	return food, ok
}

func (c *FoodCache) Put(food *models.Food) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxSize {
		for key := range c.entries {
			delete(c.entries, key)
			break
		}
	}
	c.entries[foodCacheKey{FoodID: food.FoodID, ServingSize: food.ServingSize}] = food
}

func (c *FoodCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

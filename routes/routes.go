package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Amankrah/ecodish365/config"
	"github.com/Amankrah/ecodish365/controllers"
	"github.com/Amankrah/ecodish365/middlewares"
	"github.com/Amankrah/ecodish365/services"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())

	lookup := services.NewFoodLookupService(config.DB, services.NewFoodCache(1000))
	categorizer := services.NewMealCategorizer()

	hsr := r.Group("/api/hsr")
	{
		hsr.POST("/calculate", controllers.CalculateHSR(lookup, categorizer))
		hsr.POST("/compare", controllers.CompareFoods(lookup, categorizer))
		hsr.POST("/meal-insights", controllers.GetMealInsights(lookup, categorizer))
		hsr.GET("/food/:id", controllers.GetFoodHSRProfile(lookup, categorizer))
	}

	return r
}

package main

import (
	"os"

	"github.com/Amankrah/ecodish365/config"
	"github.com/Amankrah/ecodish365/routes"
)

func main() {
	config.InitLogger()
	config.InitDB()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	r.Run(":" + port)
}

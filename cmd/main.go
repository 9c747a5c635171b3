package main

import (
	"bootcamper/config"
	"bootcamper/database"
	"bootcamper/logger"
	"bootcamper/routes"

	"github.com/gin-gonic/gin"
)

func main() {

	config.LoadEnv()

	env := config.GetEnv("APP_ENV", "development")
	if err := logger.Init(env != "production"); err != nil {
		panic(err)
	}

	database.ConnectMongo()
	database.InitCollections()
	database.EnsureIndexes()

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r)

	port := config.GetEnv("PORT", "8080")
	logger.Infow("Server running", "env", env, "port", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tripchip/cmd/fx/account_fx"
	"tripchip/cmd/fx/db_fx"
	"tripchip/cmd/fx/planner_fx"
	"tripchip/cmd/fx/trip_fx"
	"tripchip/internal/api/controllers"
	"tripchip/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		planner_fx.Module,
		trip_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "5000"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	plannerController *controllers.PlannerController,
	tripsController *controllers.TripsController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, plannerController, tripsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	plannerController *controllers.PlannerController,
	tripsController *controllers.TripsController) {

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", accountController.Signup)
	authGroup.POST("/login", accountController.Login)

	planGroup := api.Group("/plan")
	planGroup.POST("", plannerController.GeneratePlan)
	planGroup.POST("/refine", plannerController.RefineDay)

	tripsGroup := api.Group("/trips")
	tripsGroup.Use(middleware.OptionalJWTAuthMiddleware())
	tripsGroup.POST("", tripsController.SaveTrip)
	tripsGroup.GET("", tripsController.ListTrips)
	tripsGroup.DELETE("/:id", tripsController.DeleteTrip)
}

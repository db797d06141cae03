package main

import (
	"log"
	"time"

	"lms/config"
	authControllers "lms/controllers/auth"
	"lms/database"
	"lms/middleware"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	instituteRoutes "lms/routers/instituteRoutes"
	"lms/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/robfig/cron/v3"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	storageClient, err := storage.NewClient(config.AppConfig)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	storage.Default = storageClient
	storage.DefaultProcessor = storage.NewProcessor(storageClient)

	// Rate limiter for login and OTP endpoints, swept periodically
	limiter := middleware.NewRateLimitStore(config.AppConfig.RateLimitMax, time.Duration(config.AppConfig.RateLimitWindow)*time.Second)
	authControllers.UseRateLimiter(limiter)

	scheduler := cron.New()
	limiter.StartSweeper(scheduler)
	scheduler.Start()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	instituteRoutes.SetupInstituteRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

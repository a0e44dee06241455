package config

import (
	"kitchenpal/internal/api/handlers"
	"kitchenpal/internal/api/routes"
	"kitchenpal/internal/middleware"
	"kitchenpal/internal/utils"
	"kitchenpal/internal/utils/storage"
	"kitchenpal/pkg/bundle"
	"kitchenpal/pkg/jwt"
	"kitchenpal/pkg/live"
	"kitchenpal/pkg/pantry"
	"kitchenpal/pkg/profile"
	"kitchenpal/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// live-subscription hub
	hub := live.NewHub()
	go hub.Run()

	// Repository
	userRepository := user.NewUserRepository(db)
	profileRepository := profile.NewProfileRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)
	bundleRepository := bundle.NewBundleRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	profileService := profile.NewProfileService(profileRepository)
	pantryService := pantry.NewPantryService(pantryRepository, bundleRepository, hub, s3)
	bundleService := bundle.NewBundleService(bundleRepository, pantryRepository, profileRepository, pantryService, hub)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	profileHandler := handlers.NewProfileHandler(profileService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)
	bundleHandler := handlers.NewBundleHandler(bundleService, validator)
	liveHandler := handlers.NewLiveHandler(hub, pantryService, bundleService)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		ProfileHandler: profileHandler,
		PantryHandler:  pantryHandler,
		BundleHandler:  bundleHandler,
		LiveHandler:    liveHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

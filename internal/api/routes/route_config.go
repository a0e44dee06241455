package routes

import (
	"kitchenpal/internal/api/handlers"
	"kitchenpal/internal/middleware"
	"kitchenpal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	ProfileHandler handlers.ProfileHandler
	PantryHandler  handlers.PantryHandler
	BundleHandler  handlers.BundleHandler
	LiveHandler    handlers.LiveHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Profile()
	c.PantryItems()
	c.Bundles()
	c.Live()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Profile() {
	profile := c.App.Group("/api/v1/profile", c.Middleware.AuthMiddleware(c.JWTService))
	profile.Get("", c.ProfileHandler.GetProfile)
	profile.Put("", c.ProfileHandler.SaveProfile)
}

func (c *Config) PantryItems() {
	pantryItems := c.App.Group("/api/v1/pantry-items", c.Middleware.AuthMiddleware(c.JWTService))
	pantryItems.Get("/dashboard", c.PantryHandler.GetDashboardStats)

	pantryItems.Post("", c.PantryHandler.AddPantryItem)
	pantryItems.Get("", c.PantryHandler.GetPantryItems)
	pantryItems.Delete("/:id", c.PantryHandler.DeletePantryItem)

	pantryItems.Post("/image", c.PantryHandler.UploadItemImage)
}

func (c *Config) Bundles() {
	bundles := c.App.Group("/api/v1/bundles", c.Middleware.AuthMiddleware(c.JWTService))
	bundles.Post("/share", c.BundleHandler.ShareBundle)
	bundles.Get("", c.BundleHandler.GetFeed)
	bundles.Delete("/:id", c.BundleHandler.DeleteBundle)
}

func (c *Config) Live() {
	c.App.Get("/ws",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.LiveHandler.Upgrade,
		c.LiveHandler.Serve(),
	)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

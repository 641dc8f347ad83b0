package routes

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	RecipeHandler       handlers.RecipeHandler
	TagHandler          handlers.TagHandler
	IngredientHandler   handlers.IngredientHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.GuestRoute()
	c.Recipes()
	c.Catalog()
	c.Users()
	c.Auth()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) optionalAuth() fiber.Handler {
	return c.Middleware.OptionalAuthMiddleware(c.JWTService)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": domain.MessageSuccessPing})
	})
}

// Recipes registers static segments before /:id so they are not shadowed.
func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	{
		recipes.Get("/download_shopping_cart", c.auth(), c.RecipeHandler.DownloadShoppingCart)
		recipes.Get("", c.optionalAuth(), c.RecipeHandler.GetRecipes)
		recipes.Post("", c.auth(), c.RecipeHandler.CreateRecipe)
		recipes.Get("/:id", c.optionalAuth(), c.RecipeHandler.GetRecipe)
		recipes.Patch("/:id", c.auth(), c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.auth(), c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/favorite", c.auth(), c.RecipeHandler.AddFavorite)
		recipes.Delete("/:id/favorite", c.auth(), c.RecipeHandler.RemoveFavorite)
		recipes.Post("/:id/shopping_cart", c.auth(), c.RecipeHandler.AddToShoppingCart)
		recipes.Delete("/:id/shopping_cart", c.auth(), c.RecipeHandler.RemoveFromShoppingCart)
	}
}

func (c *Config) Catalog() {
	tags := c.App.Group("/api/tags")
	tags.Get("", c.TagHandler.GetTags)
	tags.Get("/:id", c.TagHandler.GetTag)

	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
}

func (c *Config) Users() {
	users := c.App.Group("/api/users")
	{
		users.Post("", c.UserHandler.Register)
		users.Get("", c.optionalAuth(), c.UserHandler.GetUsers)
		users.Get("/me", c.auth(), c.UserHandler.Me)
		users.Get("/subscriptions", c.auth(), c.SubscriptionHandler.GetSubscriptions)
		users.Post("/set_password", c.auth(), c.UserHandler.SetPassword)
		users.Post("/reset_password", c.UserHandler.ResetPassword)
		users.Post("/reset_password_confirm", c.UserHandler.ResetPasswordConfirm)
		users.Get("/:id", c.optionalAuth(), c.UserHandler.GetUser)
		users.Post("/:id/subscribe", c.auth(), c.SubscriptionHandler.Subscribe)
		users.Delete("/:id/subscribe", c.auth(), c.SubscriptionHandler.Unsubscribe)
	}
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth/token")
	auth.Post("/login", c.UserHandler.Login)
	auth.Post("/logout", c.auth(), c.UserHandler.Logout)
}

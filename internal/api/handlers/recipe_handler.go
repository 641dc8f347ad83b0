package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	var tags []string
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		tags = append(tags, string(slug))
	}

	filter := domain.RecipeFilter{
		Page:             page,
		Limit:            limit,
		AuthorID:         c.Query("author"),
		TagSlugs:         tags,
		IsFavorited:      queryFlag(c, "is_favorited"),
		IsInShoppingCart: queryFlag(c, "is_in_shopping_cart"),
	}

	res, err := h.recipeService.GetRecipes(c.UserContext(), filter, middleware.UserID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipe(c.UserContext(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := bindBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), *req, middleware.UserID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	req := new(domain.UpdateRecipeRequest)
	if err := bindBody(c, h.validator, req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.UserContext(), c.Params("id"), *req, middleware.UserID(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteRecipe(c.UserContext(), c.Params("id"), middleware.UserID(c)); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) toggle(c *fiber.Ctx, set domain.MembershipSet, op domain.MembershipOp, failed, succeeded string) error {
	res, err := h.recipeService.ToggleMembership(c.UserContext(), set, op, c.Params("id"), middleware.UserID(c))
	if err != nil {
		return presenters.HandleError(c, failed, err)
	}
	if op == domain.MembershipRemove {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, succeeded)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	return h.toggle(c, domain.SetFavorites, domain.MembershipAdd, domain.MessageFailedFavorite, domain.MessageSuccessAddFavorite)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.toggle(c, domain.SetFavorites, domain.MembershipRemove, domain.MessageFailedFavorite, domain.MessageSuccessRemoveFavorite)
}

func (h *recipeHandler) AddToShoppingCart(c *fiber.Ctx) error {
	return h.toggle(c, domain.SetShoppingCart, domain.MembershipAdd, domain.MessageFailedShoppingCart, domain.MessageSuccessAddShoppingCart)
}

func (h *recipeHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	return h.toggle(c, domain.SetShoppingCart, domain.MembershipRemove, domain.MessageFailedShoppingCart, domain.MessageSuccessRemoveShoppingCart)
}

func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	format := domain.ShoppingListFormat(c.Query("format", string(domain.ShoppingListText)))

	file, err := h.recipeService.DownloadShoppingCart(c.UserContext(), middleware.UserID(c), format)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDownloadShoppingCart, err)
	}

	c.Attachment(file.FileName)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Status(fiber.StatusOK).Send(file.Content)
}

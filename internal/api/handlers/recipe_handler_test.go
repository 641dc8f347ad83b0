package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/internal/utils"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecipeService struct {
	created     *domain.CreateRecipeRequest
	filter      domain.RecipeFilter
	memberships map[string]bool
	shopping    domain.ShoppingListFile
	format      domain.ShoppingListFormat
}

func (s *stubRecipeService) CreateRecipe(_ context.Context, req domain.CreateRecipeRequest, userID string) (domain.Recipe, error) {
	s.created = &req
	return domain.Recipe{ID: "r1", Name: req.Name, Author: domain.User{ID: userID}}, nil
}

func (s *stubRecipeService) UpdateRecipe(_ context.Context, id string, _ domain.UpdateRecipeRequest, userID string) (domain.Recipe, error) {
	if userID != "author" {
		return domain.Recipe{}, domain.ErrUnauthorizedRecipeAccess
	}
	return domain.Recipe{ID: id}, nil
}

func (s *stubRecipeService) DeleteRecipe(_ context.Context, id string, _ string) error {
	if id != "r1" {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (s *stubRecipeService) GetRecipe(_ context.Context, id string, _ string) (domain.Recipe, error) {
	return domain.Recipe{ID: id}, nil
}

func (s *stubRecipeService) GetRecipes(_ context.Context, filter domain.RecipeFilter, _ string) (domain.PaginatedResponse[domain.Recipe], error) {
	s.filter = filter
	return domain.PaginatedResponse[domain.Recipe]{
		Results:    []domain.Recipe{},
		Pagination: domain.NewPagination(filter.Page, filter.Limit, 0),
	}, nil
}

func (s *stubRecipeService) ToggleMembership(_ context.Context, set domain.MembershipSet, op domain.MembershipOp, recipeID string, _ string) (*domain.RecipeShort, error) {
	key := set.String() + ":" + recipeID
	switch op {
	case domain.MembershipAdd:
		if s.memberships[key] {
			return nil, domain.ErrAlreadyFavorited
		}
		s.memberships[key] = true
		return &domain.RecipeShort{ID: recipeID}, nil
	default:
		if !s.memberships[key] {
			return nil, domain.ErrNotFavorited
		}
		delete(s.memberships, key)
		return nil, nil
	}
}

func (s *stubRecipeService) GetShoppingList(context.Context, string) ([]domain.ShoppingListItem, error) {
	return nil, nil
}

func (s *stubRecipeService) DownloadShoppingCart(_ context.Context, _ string, format domain.ShoppingListFormat) (domain.ShoppingListFile, error) {
	s.format = format
	return s.shopping, nil
}

func newRecipeApp(svc *stubRecipeService, userID string) *fiber.App {
	utils.InitValidator()
	h := NewRecipeHandler(svc, utils.Validate)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.LocalsUserID, userID)
		}
		return c.Next()
	})
	app.Get("/api/recipes/download_shopping_cart", h.DownloadShoppingCart)
	app.Get("/api/recipes", h.GetRecipes)
	app.Post("/api/recipes", h.CreateRecipe)
	app.Patch("/api/recipes/:id", h.UpdateRecipe)
	app.Delete("/api/recipes/:id", h.DeleteRecipe)
	app.Post("/api/recipes/:id/favorite", h.AddFavorite)
	app.Delete("/api/recipes/:id/favorite", h.RemoveFavorite)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, []byte, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	headers := map[string]string{
		"Content-Type":        resp.Header.Get("Content-Type"),
		"Content-Disposition": resp.Header.Get("Content-Disposition"),
	}
	return resp.StatusCode, raw, headers
}

const validRecipeBody = `{
	"ingredients": [{"id": "0b7e1b36-6f43-4a58-9a52-7c3b2f1e0c11", "amount": 10}],
	"tags": ["5c0f3b1e-2f43-4b6a-8d4e-1a2b3c4d5e6f"],
	"image": "data:image/png;base64,AAAA",
	"name": "Soup",
	"text": "Boil.",
	"cooking_time": 15
}`

func TestCreateRecipe_Created(t *testing.T) {
	svc := &stubRecipeService{memberships: map[string]bool{}}
	app := newRecipeApp(svc, "author")

	status, raw, _ := doRequest(t, app, "POST", "/api/recipes", validRecipeBody)
	assert.Equal(t, fiber.StatusCreated, status)
	require.NotNil(t, svc.created)
	assert.Equal(t, 10, svc.created.Ingredients[0].Amount)

	var body struct {
		Status bool          `json:"status"`
		Data   domain.Recipe `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Status)
	assert.Equal(t, "author", body.Data.Author.ID)
}

func TestCreateRecipe_ValidationFailures(t *testing.T) {
	svc := &stubRecipeService{memberships: map[string]bool{}}
	app := newRecipeApp(svc, "author")

	noIngredients := strings.Replace(validRecipeBody,
		`[{"id": "0b7e1b36-6f43-4a58-9a52-7c3b2f1e0c11", "amount": 10}]`, `[]`, 1)
	status, raw, _ := doRequest(t, app, "POST", "/api/recipes", noIngredients)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(raw), "ingredients")

	zeroAmount := strings.Replace(validRecipeBody, `"amount": 10`, `"amount": 0`, 1)
	status, _, _ = doRequest(t, app, "POST", "/api/recipes", zeroAmount)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _, _ = doRequest(t, app, "POST", "/api/recipes", "{not json")
	assert.Equal(t, fiber.StatusBadRequest, status)

	assert.Nil(t, svc.created)
}

func TestUpdateRecipe_Forbidden(t *testing.T) {
	svc := &stubRecipeService{memberships: map[string]bool{}}
	app := newRecipeApp(svc, "someone-else")

	status, _, _ := doRequest(t, app, "PATCH", "/api/recipes/r1", validRecipeBody)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestDeleteRecipe_StatusCodes(t *testing.T) {
	svc := &stubRecipeService{memberships: map[string]bool{}}
	app := newRecipeApp(svc, "author")

	status, raw, _ := doRequest(t, app, "DELETE", "/api/recipes/r1", "")
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Empty(t, raw)

	status, _, _ = doRequest(t, app, "DELETE", "/api/recipes/r2", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestFavorite_StatusCodes(t *testing.T) {
	svc := &stubRecipeService{memberships: map[string]bool{}}
	app := newRecipeApp(svc, "reader")

	status, _, _ := doRequest(t, app, "POST", "/api/recipes/r1/favorite", "")
	assert.Equal(t, fiber.StatusCreated, status)

	status, _, _ = doRequest(t, app, "POST", "/api/recipes/r1/favorite", "")
	assert.Equal(t, fiber.StatusConflict, status)

	status, _, _ = doRequest(t, app, "DELETE", "/api/recipes/r1/favorite", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _, _ = doRequest(t, app, "DELETE", "/api/recipes/r1/favorite", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGetRecipes_ParsesFilters(t *testing.T) {
	svc := &stubRecipeService{memberships: map[string]bool{}}
	app := newRecipeApp(svc, "reader")

	status, _, _ := doRequest(t, app, "GET", "/api/recipes?page=2&limit=3&tags=lunch&tags=dinner&is_favorited=1&author=abc", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, svc.filter.Page)
	assert.Equal(t, 3, svc.filter.Limit)
	assert.Equal(t, []string{"lunch", "dinner"}, svc.filter.TagSlugs)
	assert.True(t, svc.filter.IsFavorited)
	assert.False(t, svc.filter.IsInShoppingCart)
	assert.Equal(t, "abc", svc.filter.AuthorID)

	status, _, _ = doRequest(t, app, "GET", "/api/recipes?limit=bad", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, domain.DefaultPageSize, svc.filter.Limit)
}

func TestDownloadShoppingCart_Attachment(t *testing.T) {
	svc := &stubRecipeService{
		memberships: map[string]bool{},
		shopping: domain.ShoppingListFile{
			FileName:    "shopping_cart.txt",
			ContentType: "text/plain; charset=utf-8",
			Content:     []byte("\nSalt - 15, g"),
		},
	}
	app := newRecipeApp(svc, "reader")

	status, raw, headers := doRequest(t, app, "GET", "/api/recipes/download_shopping_cart", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "\nSalt - 15, g", string(raw))
	assert.Equal(t, "text/plain; charset=utf-8", headers["Content-Type"])
	assert.Contains(t, headers["Content-Disposition"], `filename="shopping_cart.txt"`)
	assert.Equal(t, domain.ShoppingListText, svc.format)
}

func TestDownloadShoppingCart_EmptyCart(t *testing.T) {
	svc := &stubRecipeService{
		memberships: map[string]bool{},
		shopping: domain.ShoppingListFile{
			FileName:    "shopping_cart.txt",
			ContentType: "text/plain; charset=utf-8",
		},
	}
	app := newRecipeApp(svc, "reader")

	status, raw, _ := doRequest(t, app, "GET", "/api/recipes/download_shopping_cart?format=pdf", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, raw)
	assert.Equal(t, domain.ShoppingListPDF, svc.format)
}

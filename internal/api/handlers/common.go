package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/utils"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func parsePagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = domain.DefaultPageSize
	}
	return page, limit
}

// parseRecipesLimit reads recipes_limit; absent or invalid means no cap.
func parseRecipesLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func queryFlag(c *fiber.Ctx, key string) bool {
	switch c.Query(key) {
	case "1", "true", "True":
		return true
	default:
		return false
	}
}

// bindBody parses the JSON body into req and validates it.
func bindBody(c *fiber.Ctx, v *validator.Validate, req any) error {
	if err := c.BodyParser(req); err != nil {
		return domain.NewValidationError("%s: %v", domain.MessageFailedBodyRequest, err)
	}
	if err := v.Struct(req); err != nil {
		return domain.NewValidationError("%s", utils.ValidationMessage(err))
	}
	return nil
}

package domain

import (
	"time"
)

var (
	MessageSuccessGetRecipes         = "success get recipes"
	MessageSuccessGetRecipeDetail    = "success get recipe detail"
	MessageSuccessCreateRecipe       = "recipe created successfully"
	MessageSuccessUpdateRecipe       = "recipe updated successfully"
	MessageSuccessDeleteRecipe       = "recipe deleted successfully"
	MessageSuccessAddFavorite        = "recipe added to favorites"
	MessageSuccessRemoveFavorite     = "recipe removed from favorites"
	MessageSuccessAddShoppingCart    = "recipe added to shopping cart"
	MessageSuccessRemoveShoppingCart = "recipe removed from shopping cart"

	MessageFailedGetRecipes           = "failed to get recipes"
	MessageFailedGetRecipeDetail      = "failed to get recipe detail"
	MessageFailedCreateRecipe         = "failed to create recipe"
	MessageFailedUpdateRecipe         = "failed to update recipe"
	MessageFailedDeleteRecipe         = "failed to delete recipe"
	MessageFailedFavorite             = "failed to update favorites"
	MessageFailedShoppingCart         = "failed to update shopping cart"
	MessageFailedDownloadShoppingCart = "failed to download shopping cart"

	ErrRecipeNotFound           = newError(ErrNotFound, "recipe not found")
	ErrUnauthorizedRecipeAccess = newError(ErrForbidden, "unauthorized access to recipe")
	ErrRecipeNameExists         = newError(ErrConflict, "recipe with this name already exists")
	ErrEmptyIngredients         = newError(ErrValidation, "ingredients required")
	ErrEmptyTags                = newError(ErrValidation, "tags required")
	ErrAmountOutOfRange         = newError(ErrValidation, "ingredient amount must be between 1 and 32000")
	ErrCookingTimeOutOfRange    = newError(ErrValidation, "cooking time must be between 1 and 32000")
	ErrInvalidImage             = newError(ErrValidation, "invalid image")
	ErrImageRequired            = newError(ErrValidation, "image required")

	ErrAlreadyFavorited      = newError(ErrConflict, "recipe already in favorites")
	ErrNotFavorited          = newError(ErrNotFound, "recipe is not in favorites")
	ErrAlreadyInShoppingCart = newError(ErrConflict, "recipe already in shopping cart")
	ErrNotInShoppingCart     = newError(ErrNotFound, "recipe is not in shopping cart")
	ErrUnknownMembership     = newError(ErrValidation, "unknown membership operation")
)

// MembershipSet selects one of the per-user recipe sets.
type MembershipSet int

const (
	SetFavorites MembershipSet = iota + 1
	SetShoppingCart
)

func (s MembershipSet) String() string {
	switch s {
	case SetFavorites:
		return "favorites"
	case SetShoppingCart:
		return "shopping_cart"
	default:
		return "unknown"
	}
}

// MembershipOp is the toggle requested by the transport layer.
type MembershipOp int

const (
	MembershipAdd MembershipOp = iota + 1
	MembershipRemove
)

func (o MembershipOp) String() string {
	switch o {
	case MembershipAdd:
		return "add"
	case MembershipRemove:
		return "remove"
	default:
		return "unknown"
	}
}

type ShoppingListFormat string

const (
	ShoppingListText ShoppingListFormat = "txt"
	ShoppingListPDF  ShoppingListFormat = "pdf"
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1,max=32000"`
	}

	CreateRecipeRequest struct {
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
		Tags        []string                  `json:"tags" validate:"required,min=1,dive,uuid"`
		Image       string                    `json:"image" validate:"required"`
		Name        string                    `json:"name" validate:"required,max=50"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
	}

	// UpdateRecipeRequest replaces every editable field; Image may be empty to
	// keep the current one.
	UpdateRecipeRequest struct {
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
		Tags        []string                  `json:"tags" validate:"required,min=1,dive,uuid"`
		Image       string                    `json:"image" validate:"omitempty"`
		Name        string                    `json:"name" validate:"required,max=50"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
	}

	RecipeFilter struct {
		Page             int
		Limit            int
		AuthorID         string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	RecipeIngredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID               string             `json:"id"`
		Author           User               `json:"author"`
		Tags             []Tag              `json:"tags"`
		Ingredients      []RecipeIngredient `json:"ingredients"`
		Name             string             `json:"name"`
		Image            string             `json:"image"`
		Text             string             `json:"text"`
		CookingTime      int                `json:"cooking_time"`
		IsFavorited      bool               `json:"is_favorited"`
		IsInShoppingCart bool               `json:"is_in_shopping_cart"`
		CreatedAt        time.Time          `json:"created_at"`
	}

	RecipeShort struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	// ShoppingListItem is one (name, unit, amount) row, used both for the raw
	// lines read from the cart and for the merged output.
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	ShoppingListFile struct {
		FileName    string
		ContentType string
		Content     []byte
	}
)

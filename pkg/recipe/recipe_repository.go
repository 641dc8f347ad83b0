package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error
		ReplaceRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error)

		AddMembership(ctx context.Context, set domain.MembershipSet, userID, recipeID uuid.UUID) error
		RemoveMembership(ctx context.Context, set domain.MembershipSet, userID, recipeID uuid.UUID) (bool, error)
		GetMembershipRecipeIDs(ctx context.Context, set domain.MembershipSet, userID string, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		GetShoppingCartItems(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func membershipModel(set domain.MembershipSet) (any, error) {
	switch set {
	case domain.SetFavorites:
		return &entities.Favorite{}, nil
	case domain.SetShoppingCart:
		return &entities.ShoppingCart{}, nil
	default:
		return nil, domain.ErrUnknownMembership
	}
}

func insertLines(tx *gorm.DB, recipeID uuid.UUID, lines []*entities.RecipeIngredient) error {
	if len(lines) == 0 {
		return nil
	}
	if err := tx.Omit(clause.Associations).Create(&lines).Error; err != nil {
		return err
	}

	joins := make([]*entities.RecipeIngredientRecipe, 0, len(lines))
	for i, line := range lines {
		joins = append(joins, &entities.RecipeIngredientRecipe{
			ID:                 uuid.New(),
			RecipeIngredientID: line.ID,
			RecipeID:           recipeID,
			Position:           i,
		})
	}
	return tx.Omit(clause.Associations).Create(&joins).Error
}

func deleteLines(tx *gorm.DB, recipeID uuid.UUID) error {
	var lineIDs []uuid.UUID
	if err := tx.Model(&entities.RecipeIngredientRecipe{}).
		Where("recipe_id = ?", recipeID).
		Pluck("recipe_ingredient_id", &lineIDs).Error; err != nil {
		return err
	}

	if err := tx.Where("recipe_id = ?", recipeID).Delete(&entities.RecipeIngredientRecipe{}).Error; err != nil {
		return err
	}
	if len(lineIDs) == 0 {
		return nil
	}
	return tx.Where("id IN ?", lineIDs).Delete(&entities.RecipeIngredient{}).Error
}

// CreateRecipe stores the recipe, its tag links and its ingredient lines in a
// single transaction.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return insertLines(tx, recipe.ID, lines)
	})
}

// ReplaceRecipe overwrites the scalar fields, swaps the tag set and recreates
// every ingredient line from scratch.
func (r *recipeRepository) ReplaceRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image_url":    recipe.ImageURL,
				"image_key":    recipe.ImageKey,
				"updated_at":   time.Now(),
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := deleteLines(tx, recipe.ID); err != nil {
			return err
		}
		return insertLines(tx, recipe.ID, lines)
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLines(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&entities.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func preloadRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name asc")
		}).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredient_recipes.position asc")
		}).
		Preload("Ingredients.RecipeIngredient.Ingredient")
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Scopes(preloadRecipe).
		Where("recipes.id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) filterRecipes(filter domain.RecipeFilter, viewerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.AuthorID != "" {
			db = db.Where("recipes.author_id = ?", filter.AuthorID)
		}
		if len(filter.TagSlugs) > 0 {
			db = db.Where("recipes.id IN (?)", r.db.
				Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs))
		}
		if filter.IsFavorited && viewerID != "" {
			db = db.Where("recipes.id IN (?)", r.db.
				Table("favorites").
				Select("recipe_id").
				Where("user_id = ?", viewerID))
		}
		if filter.IsInShoppingCart && viewerID != "" {
			db = db.Where("recipes.id IN (?)", r.db.
				Table("shopping_carts").
				Select("recipe_id").
				Where("user_id = ?", viewerID))
		}
		return db
	}
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(r.filterRecipes(filter, viewerID)).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(r.filterRecipes(filter, viewerID), preloadRecipe).
		Offset(offset).
		Limit(filter.Limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) AddMembership(ctx context.Context, set domain.MembershipSet, userID, recipeID uuid.UUID) error {
	now := time.Now()
	switch set {
	case domain.SetFavorites:
		return r.db.WithContext(ctx).Omit(clause.Associations).Create(&entities.Favorite{
			ID:        uuid.New(),
			UserID:    userID,
			RecipeID:  recipeID,
			CreatedAt: now,
		}).Error
	case domain.SetShoppingCart:
		return r.db.WithContext(ctx).Omit(clause.Associations).Create(&entities.ShoppingCart{
			ID:        uuid.New(),
			UserID:    userID,
			RecipeID:  recipeID,
			CreatedAt: now,
		}).Error
	default:
		return domain.ErrUnknownMembership
	}
}

// RemoveMembership reports whether a row was actually deleted.
func (r *recipeRepository) RemoveMembership(ctx context.Context, set domain.MembershipSet, userID, recipeID uuid.UUID) (bool, error) {
	model, err := membershipModel(set)
	if err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *recipeRepository) GetMembershipRecipeIDs(ctx context.Context, set domain.MembershipSet, userID string, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(recipeIDs))
	if userID == "" || len(recipeIDs) == 0 {
		return result, nil
	}

	model, err := membershipModel(set)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// GetShoppingCartItems returns every ingredient line of every recipe in the
// user's cart, oldest cart entry first, lines in recipe order.
func (r *recipeRepository) GetShoppingCartItems(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Table("shopping_carts").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN recipe_ingredient_recipes ON recipe_ingredient_recipes.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.id = recipe_ingredient_recipes.recipe_ingredient_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Order("shopping_carts.created_at asc, shopping_carts.id asc, recipe_ingredient_recipes.position asc").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

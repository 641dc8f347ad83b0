// File: entities/recipe.go
package entities

import (
	"github.com/google/uuid"
	"time"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Slug  string    `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Color string    `gorm:"size:16;not null;uniqueIndex" json:"color"`
}

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"size:150;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:20;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

// RecipeIngredient is one (ingredient, amount) line owned by a single recipe
// through RecipeIngredientRecipe.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Amount       int       `gorm:"type:smallint;not null;check:chk_recipe_ingredient_amount,amount BETWEEN 1 AND 32000" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Name        string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	ImageURL    string    `json:"image_url"`
	ImageKey    string    `json:"-"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"type:smallint;not null;check:chk_recipe_cooking_time,cooking_time BETWEEN 1 AND 32000" json:"cooking_time"`

	Author      *User                     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags        []*Tag                    `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []*RecipeIngredientRecipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

// RecipeIngredientRecipe links a line to the recipe that owns it.
type RecipeIngredientRecipe struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeIngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_recipe" json:"recipe_ingredient_id"`
	RecipeID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_recipe;index" json:"recipe_id"`
	Position           int       `gorm:"not null;default:0" json:"position"`

	RecipeIngredient *RecipeIngredient `gorm:"foreignKey:RecipeIngredientID;constraint:OnDelete:CASCADE"`
}

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type ShoppingCart struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shopping_cart_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shopping_cart_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp with time zone" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

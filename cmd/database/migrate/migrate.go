package migration

import (
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"fmt"

	"gorm.io/gorm"
)

// lineCleanupTrigger removes an ingredient line once its join row is gone, so
// lines do not outlive recipes deleted by a cascade (e.g. from users).
var lineCleanupTrigger = []string{
	`CREATE OR REPLACE FUNCTION delete_orphan_recipe_ingredient() RETURNS trigger AS $$
BEGIN
	DELETE FROM recipe_ingredients WHERE id = OLD.recipe_ingredient_id;
	RETURN OLD;
END;
$$ LANGUAGE plpgsql;`,
	`DROP TRIGGER IF EXISTS trg_recipe_ingredient_recipes_cleanup ON recipe_ingredient_recipes;`,
	`CREATE TRIGGER trg_recipe_ingredient_recipes_cleanup
	AFTER DELETE ON recipe_ingredient_recipes
	FOR EACH ROW EXECUTE FUNCTION delete_orphan_recipe_ingredient();`,
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"subscription", &entities.Subscription{}},
		{"tag", &entities.Tag{}},
		{"ingredient", &entities.Ingredient{}},
		{"recipe", &entities.Recipe{}},
		{"recipe ingredient", &entities.RecipeIngredient{}},
		{"recipe ingredient link", &entities.RecipeIngredientRecipe{}},
		{"favorite", &entities.Favorite{}},
		{"shopping cart", &entities.ShoppingCart{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			logging.Error().Err(err).Str("table", m.name).Msg("migration failed")
			return fmt.Errorf("migrate %s: %w", m.name, err)
		}
	}

	for _, stmt := range lineCleanupTrigger {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create line cleanup trigger: %w", err)
		}
	}

	logging.Info().Msg("database migration complete")
	return nil
}

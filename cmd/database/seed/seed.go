package seed

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/tag"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Options struct {
	IngredientsPath string
	TagsPath        string
}

// LoadFixtures decodes a JSON array from path and validates every entry.
func LoadFixtures[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var fixtures []T
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	utils.InitValidator()
	for i := range fixtures {
		if err := utils.Validate.Struct(fixtures[i]); err != nil {
			return nil, fmt.Errorf("%s entry %d: %s", path, i, utils.ValidationMessage(err))
		}
	}
	return fixtures, nil
}

// Seed loads the catalog fixtures named in opts. Rows that already exist are
// skipped, so running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB, rdb *redis.Client, opts Options) error {
	if opts.IngredientsPath != "" {
		fixtures, err := LoadFixtures[domain.IngredientFixture](opts.IngredientsPath)
		if err != nil {
			return err
		}
		service := ingredient.NewIngredientService(
			ingredient.NewIngredientRepository(db),
			ingredient.NewSearchCache(rdb),
		)
		inserted, err := service.SeedIngredients(ctx, fixtures)
		if err != nil {
			return fmt.Errorf("seed ingredients: %w", err)
		}
		logging.Info().
			Int("read", len(fixtures)).
			Int64("inserted", inserted).
			Msg("ingredients loaded")
	}

	if opts.TagsPath != "" {
		fixtures, err := LoadFixtures[domain.TagFixture](opts.TagsPath)
		if err != nil {
			return err
		}
		service := tag.NewTagService(tag.NewTagRepository(db))
		inserted, err := service.SeedTags(ctx, fixtures)
		if err != nil {
			return fmt.Errorf("seed tags: %w", err)
		}
		logging.Info().
			Int("read", len(fixtures)).
			Int64("inserted", inserted).
			Msg("tags loaded")
	}

	return nil
}

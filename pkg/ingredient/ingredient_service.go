package ingredient

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/metrics"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		SearchIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
		GetIngredient(ctx context.Context, id string) (domain.Ingredient, error)
		ResolveIngredients(ctx context.Context, ids []string) (map[uuid.UUID]*entities.Ingredient, error)
		SeedIngredients(ctx context.Context, fixtures []domain.IngredientFixture) (int64, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		cache                SearchCache
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, cache SearchCache) IngredientService {
	if cache == nil {
		cache = noopSearchCache{}
	}
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		cache:                cache,
	}
}

func ToIngredientResponse(ingredient *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              ingredient.ID.String(),
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

func (s *ingredientService) SearchIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	namePrefix = strings.TrimSpace(namePrefix)

	cached, ok, err := s.cache.Get(ctx, namePrefix)
	if err != nil {
		logging.Warn().Err(err).Msg("ingredient cache read failed")
	}
	metrics.RecordIngredientCache(ok)
	if ok {
		return cached, nil
	}

	ingredients, err := s.ingredientRepository.SearchIngredients(ctx, namePrefix)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, ToIngredientResponse(i))
	}

	if err := s.cache.Set(ctx, namePrefix, res); err != nil {
		logging.Warn().Err(err).Msg("ingredient cache write failed")
	}
	return res, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id string) (domain.Ingredient, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Ingredient{}, domain.ErrIngredientNotFound
	}

	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, err
	}
	return ToIngredientResponse(ingredient), nil
}

// ResolveIngredients checks that every id exists and returns them keyed by id.
func (s *ingredientService) ResolveIngredients(ctx context.Context, ids []string) (map[uuid.UUID]*entities.Ingredient, error) {
	if len(ids) == 0 {
		return nil, domain.ErrEmptyIngredients
	}

	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.ErrIngredientNotFound
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	ingredients, err := s.ingredientRepository.GetIngredientsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(unique) {
		return nil, domain.ErrIngredientNotFound
	}

	byID := make(map[uuid.UUID]*entities.Ingredient, len(ingredients))
	for _, i := range ingredients {
		byID[i.ID] = i
	}
	return byID, nil
}

func (s *ingredientService) SeedIngredients(ctx context.Context, fixtures []domain.IngredientFixture) (int64, error) {
	ingredients := make([]*entities.Ingredient, 0, len(fixtures))
	for _, f := range fixtures {
		ingredients = append(ingredients, &entities.Ingredient{
			ID:              uuid.New(),
			Name:            f.Name,
			MeasurementUnit: f.MeasurementUnit,
		})
	}

	n, err := s.ingredientRepository.CreateIngredients(ctx, ingredients)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Flush(ctx); err != nil {
		logging.Warn().Err(err).Msg("ingredient cache flush failed")
	}
	return n, nil
}

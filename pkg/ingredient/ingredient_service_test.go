package ingredient

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeIngredientRepository struct {
	ingredients []*entities.Ingredient
	searches    int
}

func (f *fakeIngredientRepository) SearchIngredients(_ context.Context, prefix string) ([]*entities.Ingredient, error) {
	f.searches++
	var res []*entities.Ingredient
	for _, i := range f.ingredients {
		if strings.HasPrefix(strings.ToLower(i.Name), strings.ToLower(prefix)) {
			res = append(res, i)
		}
	}
	sort.Slice(res, func(a, b int) bool { return res[a].Name < res[b].Name })
	return res, nil
}

func (f *fakeIngredientRepository) GetIngredientByID(_ context.Context, id string) (*entities.Ingredient, error) {
	for _, i := range f.ingredients {
		if i.ID.String() == id {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIngredientRepository) GetIngredientsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var res []*entities.Ingredient
	for _, id := range ids {
		for _, i := range f.ingredients {
			if i.ID == id {
				res = append(res, i)
			}
		}
	}
	return res, nil
}

func (f *fakeIngredientRepository) CreateIngredients(_ context.Context, ingredients []*entities.Ingredient) (int64, error) {
	var n int64
	for _, in := range ingredients {
		dup := false
		for _, i := range f.ingredients {
			if i.Name == in.Name && i.MeasurementUnit == in.MeasurementUnit {
				dup = true
			}
		}
		if !dup {
			f.ingredients = append(f.ingredients, in)
			n++
		}
	}
	return n, nil
}

type memoryCache struct {
	entries map[string][]domain.Ingredient
	flushes int
}

func (m *memoryCache) Get(_ context.Context, prefix string) ([]domain.Ingredient, bool, error) {
	v, ok := m.entries[strings.ToLower(prefix)]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, prefix string, ingredients []domain.Ingredient) error {
	m.entries[strings.ToLower(prefix)] = ingredients
	return nil
}

func (m *memoryCache) Flush(context.Context) error {
	m.entries = map[string][]domain.Ingredient{}
	m.flushes++
	return nil
}

func newSeeded(t *testing.T) (IngredientService, *fakeIngredientRepository, *memoryCache) {
	t.Helper()
	repo := &fakeIngredientRepository{}
	cache := &memoryCache{entries: map[string][]domain.Ingredient{}}
	svc := NewIngredientService(repo, cache)

	n, err := svc.SeedIngredients(context.Background(), []domain.IngredientFixture{
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "salt", MeasurementUnit: "g"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	return svc, repo, cache
}

func TestSearchIngredients_PrefixAndCache(t *testing.T) {
	svc, repo, _ := newSeeded(t)

	res, err := svc.SearchIngredients(context.Background(), "S")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "salt", res[0].Name)
	assert.Equal(t, "sugar", res[1].Name)

	_, err = svc.SearchIngredients(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searches)
}

func TestSeedIngredients_FlushesCache(t *testing.T) {
	svc, repo, cache := newSeeded(t)

	_, err := svc.SearchIngredients(context.Background(), "m")
	require.NoError(t, err)

	_, err = svc.SeedIngredients(context.Background(), []domain.IngredientFixture{{Name: "mint", MeasurementUnit: "g"}})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.flushes)

	res, err := svc.SearchIngredients(context.Background(), "m")
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, 2, repo.searches)
}

func TestResolveIngredients(t *testing.T) {
	svc, repo, _ := newSeeded(t)
	salt := repo.ingredients[0].ID.String()

	res, err := svc.ResolveIngredients(context.Background(), []string{salt, salt})
	require.NoError(t, err)
	assert.Len(t, res, 1)

	_, err = svc.ResolveIngredients(context.Background(), []string{salt, uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	_, err = svc.ResolveIngredients(context.Background(), []string{})
	assert.ErrorIs(t, err, domain.ErrEmptyIngredients)
}

func TestGetIngredient(t *testing.T) {
	svc, repo, _ := newSeeded(t)

	got, err := svc.GetIngredient(context.Background(), repo.ingredients[2].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "milk", got.Name)
	assert.Equal(t, "ml", got.MeasurementUnit)

	_, err = svc.GetIngredient(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

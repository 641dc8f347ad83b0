//go:build integration

package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/testinfra"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type repoFixture struct {
	db        *gorm.DB
	repo      RecipeRepository
	author    *entities.User
	reader    *entities.User
	breakfast *entities.Tag
	dinner    *entities.Tag
	salt      *entities.Ingredient
	flour     *entities.Ingredient
	milk      *entities.Ingredient
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()
	db := testinfra.NewPostgres(t)

	f := &repoFixture{
		db:        db,
		repo:      NewRecipeRepository(db),
		author:    &entities.User{ID: uuid.New(), Username: "author", Email: "author@example.com", FirstName: "A", LastName: "Author", Password: "x"},
		reader:    &entities.User{ID: uuid.New(), Username: "reader", Email: "reader@example.com", FirstName: "R", LastName: "Reader", Password: "x"},
		breakfast: &entities.Tag{ID: uuid.New(), Name: "Breakfast", Slug: "breakfast", Color: "#E26C2D"},
		dinner:    &entities.Tag{ID: uuid.New(), Name: "Dinner", Slug: "dinner", Color: "#8775D2"},
		salt:      &entities.Ingredient{ID: uuid.New(), Name: "salt", MeasurementUnit: "g"},
		flour:     &entities.Ingredient{ID: uuid.New(), Name: "flour", MeasurementUnit: "g"},
		milk:      &entities.Ingredient{ID: uuid.New(), Name: "milk", MeasurementUnit: "ml"},
	}
	require.NoError(t, db.Create([]*entities.User{f.author, f.reader}).Error)
	require.NoError(t, db.Create([]*entities.Tag{f.breakfast, f.dinner}).Error)
	require.NoError(t, db.Create([]*entities.Ingredient{f.salt, f.flour, f.milk}).Error)
	return f
}

func (f *repoFixture) lines(pairs ...any) []*entities.RecipeIngredient {
	lines := make([]*entities.RecipeIngredient, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		ing := pairs[i].(*entities.Ingredient)
		lines = append(lines, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ing.ID,
			Amount:       pairs[i+1].(int),
		})
	}
	return lines
}

func (f *repoFixture) create(t *testing.T, name string, tags []*entities.Tag, lines []*entities.RecipeIngredient) *entities.Recipe {
	t.Helper()
	r := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    f.author.ID,
		Name:        name,
		ImageURL:    "http://cdn/" + name + ".png",
		ImageKey:    "recipes/" + name + ".png",
		Text:        "cook it",
		CookingTime: 10,
	}
	require.NoError(t, f.repo.CreateRecipe(context.Background(), r, tags, lines))
	return r
}

func TestRecipeRepository_CreateAndRead(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()

	created := f.create(t, "pancakes",
		[]*entities.Tag{f.dinner, f.breakfast},
		f.lines(f.milk, 200, f.flour, 150, f.salt, 5))

	got, err := f.repo.GetRecipeByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "author", got.Author.Username)

	require.Len(t, got.Tags, 2)
	assert.Equal(t, "Breakfast", got.Tags[0].Name)
	assert.Equal(t, "Dinner", got.Tags[1].Name)

	require.Len(t, got.Ingredients, 3)
	assert.Equal(t, "milk", got.Ingredients[0].RecipeIngredient.Ingredient.Name)
	assert.Equal(t, 150, got.Ingredients[1].RecipeIngredient.Amount)
	assert.Equal(t, "salt", got.Ingredients[2].RecipeIngredient.Ingredient.Name)
}

func TestRecipeRepository_DuplicateName(t *testing.T) {
	f := newRepoFixture(t)
	f.create(t, "soup", []*entities.Tag{f.dinner}, f.lines(f.salt, 1))

	dup := &entities.Recipe{ID: uuid.New(), AuthorID: f.author.ID, Name: "soup", Text: "t", CookingTime: 1}
	err := f.repo.CreateRecipe(context.Background(), dup, []*entities.Tag{f.dinner}, f.lines(f.salt, 1))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, f.db.Model(&entities.RecipeIngredient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecipeRepository_ReplaceRemovesOldLines(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	r := f.create(t, "bread", []*entities.Tag{f.breakfast}, f.lines(f.flour, 500, f.salt, 10, f.milk, 100))

	r.Name = "flatbread"
	require.NoError(t, f.repo.ReplaceRecipe(ctx, r, []*entities.Tag{f.dinner}, f.lines(f.flour, 300)))

	got, err := f.repo.GetRecipeByID(ctx, r.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "flatbread", got.Name)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "dinner", got.Tags[0].Slug)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, 300, got.Ingredients[0].RecipeIngredient.Amount)

	var lineCount int64
	require.NoError(t, f.db.Model(&entities.RecipeIngredient{}).Count(&lineCount).Error)
	assert.Equal(t, int64(1), lineCount)
}

func TestRecipeRepository_DeleteCleansUp(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	r := f.create(t, "stew", []*entities.Tag{f.dinner}, f.lines(f.salt, 3, f.milk, 50))
	require.NoError(t, f.repo.AddMembership(ctx, domain.SetFavorites, f.reader.ID, r.ID))

	require.NoError(t, f.repo.DeleteRecipe(ctx, r.ID))

	_, err := f.repo.GetRecipeByID(ctx, r.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var lineCount, favCount int64
	require.NoError(t, f.db.Model(&entities.RecipeIngredient{}).Count(&lineCount).Error)
	require.NoError(t, f.db.Model(&entities.Favorite{}).Count(&favCount).Error)
	assert.Zero(t, lineCount)
	assert.Zero(t, favCount)

	assert.ErrorIs(t, f.repo.DeleteRecipe(ctx, r.ID), gorm.ErrRecordNotFound)
}

func TestRecipeRepository_FiltersAndMembership(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	a := f.create(t, "omelette", []*entities.Tag{f.breakfast}, f.lines(f.milk, 50))
	b := f.create(t, "roast", []*entities.Tag{f.dinner}, f.lines(f.salt, 5))
	c := f.create(t, "porridge", []*entities.Tag{f.breakfast, f.dinner}, f.lines(f.milk, 300))

	require.NoError(t, f.repo.AddMembership(ctx, domain.SetFavorites, f.reader.ID, a.ID))
	err := f.repo.AddMembership(ctx, domain.SetFavorites, f.reader.ID, a.ID)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	recipes, total, err := f.repo.GetRecipes(ctx, domain.RecipeFilter{Page: 1, Limit: 10, TagSlugs: []string{"breakfast"}}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, c.ID, recipes[0].ID)

	recipes, total, err = f.repo.GetRecipes(ctx, domain.RecipeFilter{Page: 1, Limit: 10, IsFavorited: true}, f.reader.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, a.ID, recipes[0].ID)

	_, total, err = f.repo.GetRecipes(ctx, domain.RecipeFilter{Page: 2, Limit: 2}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	flags, err := f.repo.GetMembershipRecipeIDs(ctx, domain.SetFavorites, f.reader.ID.String(), []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.True(t, flags[a.ID])
	assert.False(t, flags[b.ID])

	removed, err := f.repo.RemoveMembership(ctx, domain.SetFavorites, f.reader.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = f.repo.RemoveMembership(ctx, domain.SetFavorites, f.reader.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRecipeRepository_ShoppingCartItems(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	a := f.create(t, "dough", []*entities.Tag{f.breakfast}, f.lines(f.flour, 200, f.salt, 5))
	b := f.create(t, "brine", []*entities.Tag{f.dinner}, f.lines(f.salt, 10))

	require.NoError(t, f.repo.AddMembership(ctx, domain.SetShoppingCart, f.reader.ID, a.ID))
	require.NoError(t, f.repo.AddMembership(ctx, domain.SetShoppingCart, f.reader.ID, b.ID))

	items, err := f.repo.GetShoppingCartItems(ctx, f.reader.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "flour", items[0].Name)

	merged := AggregateShoppingList(items)
	require.Len(t, merged, 2)
	assert.Equal(t, domain.ShoppingListItem{Name: "salt", MeasurementUnit: "g", Amount: 15}, merged[1])

	empty, err := f.repo.GetShoppingCartItems(ctx, f.author.ID.String())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRecipeRepository_UserDeleteLeavesNoLines(t *testing.T) {
	f := newRepoFixture(t)
	f.create(t, "toast", []*entities.Tag{f.breakfast}, f.lines(f.flour, 100, f.milk, 20))
	f.create(t, "gravy", []*entities.Tag{f.dinner}, f.lines(f.flour, 30))

	require.NoError(t, f.db.Delete(&entities.User{}, "id = ?", f.author.ID).Error)

	var recipeCount, joinCount, lineCount int64
	require.NoError(t, f.db.Model(&entities.Recipe{}).Count(&recipeCount).Error)
	require.NoError(t, f.db.Model(&entities.RecipeIngredientRecipe{}).Count(&joinCount).Error)
	require.NoError(t, f.db.Model(&entities.RecipeIngredient{}).Count(&lineCount).Error)
	assert.Zero(t, recipeCount)
	assert.Zero(t, joinCount)
	assert.Zero(t, lineCount)
}

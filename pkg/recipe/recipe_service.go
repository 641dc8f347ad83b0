package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/tag"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	recipeImageFolder = "recipes"
	maxRecipeName     = 50
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, id string, userID string) error
		GetRecipe(ctx context.Context, id string, viewerID string) (domain.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.PaginatedResponse[domain.Recipe], error)
		ToggleMembership(ctx context.Context, set domain.MembershipSet, op domain.MembershipOp, recipeID string, userID string) (*domain.RecipeShort, error)
		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		DownloadShoppingCart(ctx context.Context, userID string, format domain.ShoppingListFormat) (domain.ShoppingListFile, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		userRepository    user.UserRepository
		tagService        tag.TagService
		ingredientService ingredient.IngredientService
		s3                storage.AwsS3
	}

	composition struct {
		tags  []*entities.Tag
		lines []*entities.RecipeIngredient
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	userRepository user.UserRepository,
	tagService tag.TagService,
	ingredientService ingredient.IngredientService,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		userRepository:    userRepository,
		tagService:        tagService,
		ingredientService: ingredientService,
		s3:                s3,
	}
}

func validateRecipeFields(name, text string, cookingTime int, ingredients []domain.RecipeIngredientRequest, tags []string) error {
	if len(ingredients) == 0 {
		return domain.ErrEmptyIngredients
	}
	if len(tags) == 0 {
		return domain.ErrEmptyTags
	}
	for _, in := range ingredients {
		if in.Amount < domain.MinAmount || in.Amount > domain.MaxAmount {
			return domain.ErrAmountOutOfRange
		}
	}
	if cookingTime < domain.MinAmount || cookingTime > domain.MaxAmount {
		return domain.ErrCookingTimeOutOfRange
	}
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name is required")
	}
	if utf8.RuneCountInString(name) > maxRecipeName {
		return domain.NewValidationError("name must be at most %d characters", maxRecipeName)
	}
	if strings.TrimSpace(text) == "" {
		return domain.NewValidationError("text is required")
	}
	return nil
}

// resolveComposition checks every referenced tag and ingredient exists and
// builds fresh ingredient lines in input order.
func (s *recipeService) resolveComposition(ctx context.Context, ingredients []domain.RecipeIngredientRequest, tagIDs []string) (composition, error) {
	tags, err := s.tagService.ResolveTags(ctx, tagIDs)
	if err != nil {
		return composition{}, err
	}

	ids := make([]string, 0, len(ingredients))
	for _, in := range ingredients {
		ids = append(ids, in.ID)
	}
	byID, err := s.ingredientService.ResolveIngredients(ctx, ids)
	if err != nil {
		return composition{}, err
	}

	lines := make([]*entities.RecipeIngredient, 0, len(ingredients))
	for _, in := range ingredients {
		ing := byID[uuid.MustParse(in.ID)]
		lines = append(lines, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ing.ID,
			Amount:       in.Amount,
			Ingredient:   ing,
		})
	}
	return composition{tags: tags, lines: lines}, nil
}

func (s *recipeService) uploadImage(ctx context.Context, dataURL string) (string, error) {
	img, err := storage.DecodeBase64Image(dataURL, storage.MaxImageWidth)
	if err != nil {
		return "", domain.ErrInvalidImage
	}
	return s.s3.UploadFile(ctx, uuid.NewString()+"."+img.Ext, img.Data, img.ContentType, recipeImageFolder)
}

func (s *recipeService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("failed to delete recipe image")
	}
}

func (s *recipeService) getOwnedRecipe(ctx context.Context, id string, userID string) (*entities.Recipe, error) {
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) getRecipe(ctx context.Context, id string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRecipeNotFound
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrRecipeNameExists
	}
	return err
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.Recipe, error) {
	if err := validateRecipeFields(req.Name, req.Text, req.CookingTime, req.Ingredients, req.Tags); err != nil {
		return domain.Recipe{}, err
	}
	if req.Image == "" {
		return domain.Recipe{}, domain.ErrImageRequired
	}

	authorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	comp, err := s.resolveComposition(ctx, req.Ingredients, req.Tags)
	if err != nil {
		return domain.Recipe{}, err
	}

	imageKey, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        req.Name,
		ImageURL:    s.s3.GetPublicLinkKey(imageKey),
		ImageKey:    imageKey,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, comp.tags, comp.lines); err != nil {
		s.discardImage(ctx, imageKey)
		return domain.Recipe{}, translateWriteError(err)
	}

	metrics.RecordRecipeWrite("create")
	logging.Info().Str("recipe_id", recipe.ID.String()).Str("author_id", userID).Msg("recipe created")
	return s.GetRecipe(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) (domain.Recipe, error) {
	recipe, err := s.getOwnedRecipe(ctx, id, userID)
	if err != nil {
		return domain.Recipe{}, err
	}

	if err := validateRecipeFields(req.Name, req.Text, req.CookingTime, req.Ingredients, req.Tags); err != nil {
		return domain.Recipe{}, err
	}

	comp, err := s.resolveComposition(ctx, req.Ingredients, req.Tags)
	if err != nil {
		return domain.Recipe{}, err
	}

	oldKey := recipe.ImageKey
	newKey := ""
	if req.Image != "" {
		newKey, err = s.uploadImage(ctx, req.Image)
		if err != nil {
			return domain.Recipe{}, err
		}
		recipe.ImageKey = newKey
		recipe.ImageURL = s.s3.GetPublicLinkKey(newKey)
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime

	if err := s.recipeRepository.ReplaceRecipe(ctx, recipe, comp.tags, comp.lines); err != nil {
		s.discardImage(ctx, newKey)
		return domain.Recipe{}, translateWriteError(err)
	}
	if newKey != "" {
		s.discardImage(ctx, oldKey)
	}

	metrics.RecordRecipeWrite("update")
	logging.Info().Str("recipe_id", id).Msg("recipe updated")
	return s.GetRecipe(ctx, id, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID string) error {
	recipe, err := s.getOwnedRecipe(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	s.discardImage(ctx, recipe.ImageKey)

	metrics.RecordRecipeWrite("delete")
	logging.Info().Str("recipe_id", id).Msg("recipe deleted")
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id string, viewerID string) (domain.Recipe, error) {
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}

	res, err := s.toRecipeResponses(ctx, []*entities.Recipe{recipe}, viewerID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return res[0], nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.PaginatedResponse[domain.Recipe], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = domain.DefaultPageSize
	}
	if viewerID == "" {
		filter.IsFavorited = false
		filter.IsInShoppingCart = false
	}
	if filter.AuthorID != "" {
		if _, err := uuid.Parse(filter.AuthorID); err != nil {
			return domain.PaginatedResponse[domain.Recipe]{}, domain.NewValidationError("author must be a valid id")
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID)
	if err != nil {
		return domain.PaginatedResponse[domain.Recipe]{}, err
	}

	results, err := s.toRecipeResponses(ctx, recipes, viewerID)
	if err != nil {
		return domain.PaginatedResponse[domain.Recipe]{}, err
	}

	return domain.PaginatedResponse[domain.Recipe]{
		Results:    results,
		Pagination: domain.NewPagination(filter.Page, filter.Limit, count),
	}, nil
}

func (s *recipeService) toRecipeResponses(ctx context.Context, recipes []*entities.Recipe, viewerID string) ([]domain.Recipe, error) {
	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited, err := s.recipeRepository.GetMembershipRecipeIDs(ctx, domain.SetFavorites, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.recipeRepository.GetMembershipRecipeIDs(ctx, domain.SetShoppingCart, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.userRepository.GetSubscribedAuthorIDs(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, toRecipeResponse(r, favorited[r.ID], inCart[r.ID], subscribed[r.AuthorID]))
	}
	return res, nil
}

func toRecipeResponse(r *entities.Recipe, favorited, inCart, authorSubscribed bool) domain.Recipe {
	tags := make([]domain.Tag, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, tag.ToTagResponse(t))
	}

	ingredients := make([]domain.RecipeIngredient, 0, len(r.Ingredients))
	for _, join := range r.Ingredients {
		line := join.RecipeIngredient
		if line == nil || line.Ingredient == nil {
			continue
		}
		ingredients = append(ingredients, domain.RecipeIngredient{
			ID:              line.Ingredient.ID.String(),
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	return domain.Recipe{
		ID:               r.ID.String(),
		Author:           user.ToUserResponse(r.Author, authorSubscribed),
		Tags:             tags,
		Ingredients:      ingredients,
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		CreatedAt:        r.CreatedAt,
	}
}

// ToRecipeShort is the compact form used by membership replies and the
// subscription feed.
func ToRecipeShort(r *entities.Recipe) domain.RecipeShort {
	return domain.RecipeShort{
		ID:          r.ID.String(),
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

func membershipErrors(set domain.MembershipSet) (duplicate error, missing error) {
	if set == domain.SetFavorites {
		return domain.ErrAlreadyFavorited, domain.ErrNotFavorited
	}
	return domain.ErrAlreadyInShoppingCart, domain.ErrNotInShoppingCart
}

// ToggleMembership adds the recipe to, or removes it from, one of the user's
// sets. Add returns the short recipe; Remove returns nil.
func (s *recipeService) ToggleMembership(ctx context.Context, set domain.MembershipSet, op domain.MembershipOp, recipeID string, userID string) (*domain.RecipeShort, error) {
	if set != domain.SetFavorites && set != domain.SetShoppingCart {
		return nil, domain.ErrUnknownMembership
	}
	if op != domain.MembershipAdd && op != domain.MembershipRemove {
		return nil, domain.ErrUnknownMembership
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	duplicate, missing := membershipErrors(set)

	switch op {
	case domain.MembershipAdd:
		if err := s.recipeRepository.AddMembership(ctx, set, userUUID, recipe.ID); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, duplicate
			}
			return nil, err
		}
		metrics.RecordMembershipChange(set.String(), op.String())
		short := ToRecipeShort(recipe)
		return &short, nil

	default:
		removed, err := s.recipeRepository.RemoveMembership(ctx, set, userUUID, recipe.ID)
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, missing
		}
		metrics.RecordMembershipChange(set.String(), op.String())
		return nil, nil
	}
}

func (s *recipeService) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	lines, err := s.recipeRepository.GetShoppingCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AggregateShoppingList(lines), nil
}

func (s *recipeService) DownloadShoppingCart(ctx context.Context, userID string, format domain.ShoppingListFormat) (domain.ShoppingListFile, error) {
	items, err := s.GetShoppingList(ctx, userID)
	if err != nil {
		return domain.ShoppingListFile{}, err
	}

	file, err := RenderShoppingList(items, format)
	if err != nil {
		return domain.ShoppingListFile{}, err
	}

	if format == "" {
		format = domain.ShoppingListText
	}
	metrics.RecordShoppingListDownload(string(format), len(items))
	return file, nil
}

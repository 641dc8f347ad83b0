package subscription

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, followerID, authorID string, recipesLimit int) (domain.Subscription, error)
		Unsubscribe(ctx context.Context, followerID, authorID string) error
		GetSubscriptions(ctx context.Context, followerID string, page, limit, recipesLimit int) (domain.PaginatedResponse[domain.Subscription], error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		userRepository         user.UserRepository
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository, userRepository user.UserRepository) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		userRepository:         userRepository,
	}
}

func (s *subscriptionService) getAuthor(ctx context.Context, authorID string) (*entities.User, error) {
	if _, err := uuid.Parse(authorID); err != nil {
		return nil, domain.ErrUserNotFound
	}
	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return author, nil
}

func (s *subscriptionService) Subscribe(ctx context.Context, followerID, authorID string, recipesLimit int) (domain.Subscription, error) {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return domain.Subscription{}, domain.ErrParseUUID
	}
	author, err := s.getAuthor(ctx, authorID)
	if err != nil {
		return domain.Subscription{}, err
	}
	// compare parsed ids: the same uuid has several valid spellings
	if author.ID == followerUUID {
		return domain.Subscription{}, domain.ErrSelfSubscription
	}

	if err := s.subscriptionRepository.CreateSubscription(ctx, &entities.Subscription{
		ID:       uuid.New(),
		UserID:   followerUUID,
		AuthorID: author.ID,
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Subscription{}, domain.ErrAlreadySubscribed
		}
		if errors.Is(err, gorm.ErrCheckConstraintViolated) {
			return domain.Subscription{}, domain.ErrSelfSubscription
		}
		return domain.Subscription{}, err
	}

	logging.Info().Str("user_id", followerID).Str("author_id", authorID).Msg("subscribed")

	res, err := s.toSubscriptions(ctx, []*entities.User{author}, recipesLimit)
	if err != nil {
		return domain.Subscription{}, err
	}
	return res[0], nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, followerID, authorID string) error {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return domain.ErrParseUUID
	}

	author, err := s.getAuthor(ctx, authorID)
	if err != nil {
		return err
	}

	removed, err := s.subscriptionRepository.DeleteSubscription(ctx, followerUUID, author.ID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrSubscriptionMissing
	}

	logging.Info().Str("user_id", followerID).Str("author_id", authorID).Msg("unsubscribed")
	return nil
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, followerID string, page, limit, recipesLimit int) (domain.PaginatedResponse[domain.Subscription], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageSize
	}

	authors, count, err := s.subscriptionRepository.GetSubscribedAuthors(ctx, followerID, page, limit)
	if err != nil {
		return domain.PaginatedResponse[domain.Subscription]{}, err
	}

	results, err := s.toSubscriptions(ctx, authors, recipesLimit)
	if err != nil {
		return domain.PaginatedResponse[domain.Subscription]{}, err
	}

	return domain.PaginatedResponse[domain.Subscription]{
		Results:    results,
		Pagination: domain.NewPagination(page, limit, count),
	}, nil
}

// toSubscriptions builds the feed entry of each author as seen by one of
// their followers.
func (s *subscriptionService) toSubscriptions(ctx context.Context, authors []*entities.User, recipesLimit int) ([]domain.Subscription, error) {
	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}

	counts, err := s.subscriptionRepository.CountAuthorRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Subscription, 0, len(authors))
	for _, a := range authors {
		recipes, err := s.subscriptionRepository.GetAuthorRecipes(ctx, a.ID, recipesLimit)
		if err != nil {
			return nil, err
		}

		shorts := make([]domain.RecipeShort, 0, len(recipes))
		for _, r := range recipes {
			shorts = append(shorts, recipe.ToRecipeShort(r))
		}

		res = append(res, domain.Subscription{
			User:         user.ToUserResponse(a, true),
			Recipes:      shorts,
			RecipesCount: counts[a.ID],
		})
	}
	return res, nil
}

package tag

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.Tag, error)
		GetTag(ctx context.Context, id string) (domain.Tag, error)
		ResolveTags(ctx context.Context, ids []string) ([]*entities.Tag, error)
		SeedTags(ctx context.Context, fixtures []domain.TagFixture) (int64, error)
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func ToTagResponse(tag *entities.Tag) domain.Tag {
	return domain.Tag{
		ID:    tag.ID.String(),
		Name:  tag.Name,
		Slug:  tag.Slug,
		Color: tag.Color,
	}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		res = append(res, ToTagResponse(t))
	}
	return res, nil
}

func (s *tagService) GetTag(ctx context.Context, id string) (domain.Tag, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Tag{}, domain.ErrTagNotFound
	}

	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tag{}, domain.ErrTagNotFound
		}
		return domain.Tag{}, err
	}
	return ToTagResponse(tag), nil
}

// ResolveTags loads the tags named by ids, collapsing duplicates and keeping
// the first-seen order. Any unknown id fails the whole lookup.
func (s *tagService) ResolveTags(ctx context.Context, ids []string) ([]*entities.Tag, error) {
	if len(ids) == 0 {
		return nil, domain.ErrEmptyTags
	}

	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.ErrTagNotFound
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	tags, err := s.tagRepository.GetTagsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, domain.ErrTagNotFound
	}

	byID := make(map[uuid.UUID]*entities.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	ordered := make([]*entities.Tag, 0, len(unique))
	for _, id := range unique {
		ordered = append(ordered, byID[id])
	}
	return ordered, nil
}

func (s *tagService) SeedTags(ctx context.Context, fixtures []domain.TagFixture) (int64, error) {
	tags := make([]*entities.Tag, 0, len(fixtures))
	for _, f := range fixtures {
		tags = append(tags, &entities.Tag{
			ID:    uuid.New(),
			Name:  f.Name,
			Slug:  f.Slug,
			Color: f.Color,
		})
	}
	return s.tagRepository.CreateTags(ctx, tags)
}

package tag

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTagRepository struct {
	tags map[uuid.UUID]*entities.Tag
}

func (f *fakeTagRepository) GetTags(context.Context) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	for _, t := range f.tags {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (f *fakeTagRepository) GetTagByID(_ context.Context, id string) (*entities.Tag, error) {
	if t, ok := f.tags[uuid.MustParse(id)]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTagRepository) GetTagsByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	for _, id := range ids {
		if t, ok := f.tags[id]; ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (f *fakeTagRepository) CreateTags(_ context.Context, tags []*entities.Tag) (int64, error) {
	var n int64
	for _, t := range tags {
		dup := false
		for _, existing := range f.tags {
			if existing.Slug == t.Slug {
				dup = true
			}
		}
		if !dup {
			f.tags[t.ID] = t
			n++
		}
	}
	return n, nil
}

func seededService(t *testing.T) (TagService, *fakeTagRepository) {
	t.Helper()
	repo := &fakeTagRepository{tags: map[uuid.UUID]*entities.Tag{}}
	svc := NewTagService(repo)
	n, err := svc.SeedTags(context.Background(), []domain.TagFixture{
		{Name: "Lunch", Slug: "lunch", Color: "#49B64E"},
		{Name: "Breakfast", Slug: "breakfast", Color: "#E26C2D"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	return svc, repo
}

func TestGetTags_OrderedByName(t *testing.T) {
	svc, _ := seededService(t)

	tags, err := svc.GetTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Breakfast", tags[0].Name)
	assert.Equal(t, "Lunch", tags[1].Name)
}

func TestGetTag_NotFound(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.GetTag(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)

	_, err = svc.GetTag(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveTags(t *testing.T) {
	svc, repo := seededService(t)
	all, _ := repo.GetTags(context.Background())
	breakfast, lunch := all[0].ID.String(), all[1].ID.String()

	tags, err := svc.ResolveTags(context.Background(), []string{lunch, breakfast, lunch})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Lunch", tags[0].Name)

	_, err = svc.ResolveTags(context.Background(), []string{lunch, uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrTagNotFound)

	_, err = svc.ResolveTags(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyTags)
}

func TestSeedTags_Idempotent(t *testing.T) {
	svc, _ := seededService(t)

	n, err := svc.SeedTags(context.Background(), []domain.TagFixture{{Name: "Lunch", Slug: "lunch", Color: "#49B64E"}})
	require.NoError(t, err)
	assert.Zero(t, n)
}

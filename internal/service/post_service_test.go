package service

import (
	"Chronicle/internal/model"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedPosts(t *testing.T, repo *fakePostRepo, n int) []*model.Post {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		p := &model.Post{
			Title:     fmt.Sprintf("Post %d", i),
			Body:      fmt.Sprintf("body number %d", i),
			MediaType: model.MediaNone,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.CreatePost(context.Background(), p))
		posts = append(posts, p)
	}
	return posts
}

func newPostFixture() (PostService, *fakePostRepo, *fakeVisitRepo) {
	posts := newFakePostRepo()
	visits := newFakeVisitRepo()
	return NewPostService(posts, NewVisitService(visits, time.UTC), 0), posts, visits
}

func TestListPostsPagination(t *testing.T) {
	svc, repo, _ := newPostFixture()
	seedPosts(t, repo, 25)
	ctx := context.Background()

	tests := []struct {
		name      string
		page      int
		wantPage  int
		wantItems int
		wantNext  *int
	}{
		{"first page", 1, 1, 10, intPtr(2)},
		{"middle page", 2, 2, 10, intPtr(3)},
		{"last page", 3, 3, 5, nil},
		{"past the end", 4, 4, 0, nil},
		{"zero is first", 0, 1, 10, intPtr(2)},
		{"negative is first", -3, 1, 10, intPtr(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.ListPosts(ctx, tt.page, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, res.CurrentPage)
			assert.Len(t, res.Items, tt.wantItems)
			assert.Equal(t, tt.wantNext, res.NextPage)
			assert.EqualValues(t, 25, res.TotalCount)
			assert.Equal(t, 3, res.TotalPages)
			for i := 1; i < len(res.Items); i++ {
				assert.GreaterOrEqual(t, res.Items[i-1].CreatedAt, res.Items[i].CreatedAt)
			}
		})
	}
}

func TestListPostsNextPageBoundary(t *testing.T) {
	svc, repo, _ := newPostFixture()
	seedPosts(t, repo, 20)

	res, err := svc.ListPosts(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Nil(t, res.NextPage)
	assert.Len(t, res.Items, 10)
}

func TestListPostsCarriesExcerpt(t *testing.T) {
	svc, repo, _ := newPostFixture()
	seedPosts(t, repo, 1)

	res, err := svc.ListPosts(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Empty(t, item.Body)
	assert.Equal(t, "body number 0", item.Excerpt)
	assert.Equal(t, "none", item.MediaType)
	assert.Len(t, item.ID, 24)
}

func TestGetPostIncrementsViews(t *testing.T) {
	svc, repo, visits := newPostFixture()
	posts := seedPosts(t, repo, 1)
	id := posts[0].ID.Hex()
	ctx := context.Background()

	first, err := svc.GetPost(ctx, id)
	require.NoError(t, err)
	second, err := svc.GetPost(ctx, id)
	require.NoError(t, err)

	assert.EqualValues(t, 1, first.Views)
	assert.EqualValues(t, 2, second.Views)
	assert.Contains(t, second.BodyHTML, "body number 0")

	var tracked int64
	for _, v := range visits.counts {
		tracked += v.Count
	}
	assert.EqualValues(t, 2, tracked)
}

func TestGetPostNotFound(t *testing.T) {
	svc, _, visits := newPostFixture()
	for _, id := range []string{"not-hex", "", primitive.NewObjectID().Hex()} {
		_, err := svc.GetPost(context.Background(), id)
		assert.ErrorIs(t, err, ErrPostNotFound, id)
	}
	assert.Empty(t, visits.counts)
}

func TestSearch(t *testing.T) {
	svc, repo, _ := newPostFixture()
	ctx := context.Background()
	seedPosts(t, repo, 3)
	require.NoError(t, repo.CreatePost(ctx, &model.Post{Title: "Hello Gophers", Body: "intro", CreatedAt: time.Now()}))
	require.NoError(t, repo.CreatePost(ctx, &model.Post{Title: "misc", Body: "say HELLO again", CreatedAt: time.Now()}))

	res, err := svc.Search(ctx, "hello")
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)

	res, err = svc.Search(ctx, "  h*e.l(l)o!  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Term)
	assert.Len(t, res.Items, 2)

	res, err = svc.Search(ctx, "nothing like this")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestSearchEmptyTermMatchesAll(t *testing.T) {
	svc, repo, _ := newPostFixture()
	seedPosts(t, repo, 7)
	ctx := context.Background()

	all, err := svc.ListPosts(ctx, 1, 100)
	require.NoError(t, err)

	for _, term := range []string{"", "   ", ".*", "?!$"} {
		res, err := svc.Search(ctx, term)
		require.NoError(t, err)
		assert.Empty(t, res.Term)
		assert.ElementsMatch(t, ids(all.Items), ids(res.Items), term)
	}
}

func TestSearchEmptyTermReturnsEveryPost(t *testing.T) {
	svc, repo, _ := newPostFixture()
	seedPosts(t, repo, 130)
	ctx := context.Background()

	all, err := svc.ListPosts(ctx, 1, 1000)
	require.NoError(t, err)
	require.Len(t, all.Items, 130)

	res, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, ids(all.Items), ids(res.Items))

	res, err = svc.Search(ctx, "body number")
	require.NoError(t, err)
	assert.Len(t, res.Items, 130)
}

func TestSearchConfiguredLimit(t *testing.T) {
	repo := newFakePostRepo()
	seedPosts(t, repo, 5)
	svc := NewPostService(repo, NewVisitService(newFakeVisitRepo(), time.UTC), 3)

	res, err := svc.Search(context.Background(), "post")
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
}

func intPtr(v int) *int { return &v }

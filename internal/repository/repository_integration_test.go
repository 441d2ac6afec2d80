//go:build integration

package repository

import (
	"Chronicle/internal/api/config"
	"Chronicle/internal/model"
	mongodb "Chronicle/internal/pkg/mongo"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// setupTestDB 启动 MongoDB 容器, 每个测试使用独立的库
func setupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := mongodb.InitMongo(config.MongoConfig{
		URL:                    uri,
		Database:               "chronicle_test",
		ServerSelectionTimeout: 10,
		ConnectTimeout:         10,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Client().Disconnect(context.Background())
	})
	return db
}

func TestPostRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepo(db)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		p := &model.Post{
			Title:     fmt.Sprintf("Title %d", i),
			Body:      fmt.Sprintf("Body %d", i),
			MediaType: model.MediaNone,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.CreatePost(ctx, p))
		require.False(t, p.ID.IsZero())
	}
	require.NoError(t, repo.CreatePost(ctx, &model.Post{Title: "Gopher news", Body: "all about GO", CreatedAt: base}))

	t.Run("list newest first", func(t *testing.T) {
		list, err := repo.ListPosts(ctx, 0, 3)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Title 4", list[0].Title)
		assert.Equal(t, "Title 2", list[2].Title)

		total, err := repo.CountPosts(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 6, total)
	})

	t.Run("search is case-insensitive on title or body", func(t *testing.T) {
		list, err := repo.SearchPosts(ctx, "gopher", 100)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		list, err = repo.SearchPosts(ctx, "go", 100)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		list, err = repo.SearchPosts(ctx, "", 0)
		require.NoError(t, err)
		assert.Len(t, list, 6)

		list, err = repo.SearchPosts(ctx, "", 2)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("views and aggregates", func(t *testing.T) {
		list, err := repo.ListPosts(ctx, 0, 1)
		require.NoError(t, err)
		id := list[0].ID

		for i := 0; i < 2; i++ {
			_, err = repo.IncrementViews(ctx, id)
			require.NoError(t, err)
		}
		got, err := repo.GetPostByID(ctx, id)
		require.NoError(t, err)
		assert.EqualValues(t, 2, got.Views)

		sum, err := repo.SumViews(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, sum)

		top, err := repo.GetTopPosts(ctx, 1)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, id, top[0].ID)
	})

	t.Run("update and delete", func(t *testing.T) {
		list, err := repo.ListPosts(ctx, 0, 1)
		require.NoError(t, err)
		post := list[0]
		post.Title = "Edited"
		post.FeaturedMedia = "http://x/y.png"
		post.MediaKey = "y.png"
		post.MediaType = model.MediaImage
		require.NoError(t, repo.UpdatePost(ctx, post))

		deleted, err := repo.DeletePost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "y.png", deleted.MediaKey)

		_, err = repo.GetPostByID(ctx, post.ID)
		assert.True(t, IsNotFound(err))
		assert.True(t, IsNotFound(repo.UpdatePost(ctx, post)))
		_, err = repo.IncrementViews(ctx, primitive.NewObjectID())
		assert.True(t, IsNotFound(err))
	})
}

func TestSiteVisitRepoConcurrentIncrement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSiteVisitRepo(db)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Increment(ctx, "2026-04-01", time.Now()))
		}()
	}
	wg.Wait()
	require.NoError(t, repo.Increment(ctx, "2026-04-02", time.Now()))

	docs, err := db.Collection(mongodb.SiteVisitCollection).CountDocuments(ctx, bson.M{"date": "2026-04-01"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, docs)

	list, err := repo.GetRange(ctx, "2026-04-01", "2026-04-30")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.EqualValues(t, n, list[0].Count)
	assert.Equal(t, "2026-04-02", list[1].Date)
}

func TestAdminRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminRepo(db)
	ctx := context.Background()

	missing, err := repo.GetAdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.CreateAdmin(ctx, &model.Admin{Username: "admin", PasswordHash: "h1"}))
	assert.ErrorIs(t, repo.CreateAdmin(ctx, &model.Admin{Username: "admin", PasswordHash: "h2"}), ErrAdminExists)

	require.NoError(t, repo.UpdatePassword(ctx, "admin", "h3", time.Now()))
	got, err := repo.GetAdminByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "h3", got.PasswordHash)

	assert.True(t, IsNotFound(repo.UpdatePassword(ctx, "ghost", "h", time.Now())))
}

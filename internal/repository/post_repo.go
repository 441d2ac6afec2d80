package repository

import (
	"Chronicle/internal/model"
	mongodb "Chronicle/internal/pkg/mongo"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	ListPosts(ctx context.Context, offset, limit int64) ([]*model.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	SearchPosts(ctx context.Context, pattern string, limit int64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	SumViews(ctx context.Context) (int64, error)
	GetTopPosts(ctx context.Context, limit int64) ([]*model.PostViews, error)
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection(mongodb.PostCollection),
	}
}

// CreatePost 插入帖子并回填 ID
func (s *postRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

// GetPostByID 未命中返回 mongo.ErrNoDocuments
func (s *postRepoImpl) GetPostByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// IncrementViews 原子自增浏览量并返回更新后的文档
func (s *postRepoImpl) IncrementViews(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post model.Post
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts 按创建时间倒序分页
func (s *postRepoImpl) ListPosts(ctx context.Context, offset, limit int64) ([]*model.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	return s.find(ctx, bson.M{}, opts)
}

func (s *postRepoImpl) CountPosts(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

// SearchPosts 标题或正文不区分大小写匹配, pattern 为已转义的正则, limit 为 0 时不限条数
func (s *postRepoImpl) SearchPosts(ctx context.Context, pattern string, limit int64) ([]*model.Post, error) {
	regex := primitive.Regex{Pattern: pattern, Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": regex},
		bson.M{"body": regex},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return s.find(ctx, filter, opts)
}

// UpdatePost 覆盖可编辑字段
func (s *postRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	update := bson.M{"$set": bson.M{
		"title":         post.Title,
		"body":          post.Body,
		"featuredMedia": post.FeaturedMedia,
		"mediaKey":      post.MediaKey,
		"mediaType":     post.MediaType,
		"updatedAt":     post.UpdatedAt,
	}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeletePost 物理删除, 返回被删除的文档
func (s *postRepoImpl) DeletePost(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// SumViews 全站浏览量
func (s *postRepoImpl) SumViews(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// GetTopPosts 浏览量倒序, 同值按存储顺序
func (s *postRepoImpl) GetTopPosts(ctx context.Context, limit int64) ([]*model.PostViews, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "views", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"title": 1, "views": 1})

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*model.PostViews, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *postRepoImpl) find(ctx context.Context, filter any, opts *options.FindOptions) ([]*model.Post, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	posts := make([]*model.Post, 0)
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// IsNotFound 判断是否为未命中
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

package repository

import (
	"Chronicle/internal/model"
	mongodb "Chronicle/internal/pkg/mongo"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SiteVisitRepo interface {
	Increment(ctx context.Context, date string, at time.Time) error
	GetRange(ctx context.Context, from, to string) ([]*model.SiteVisit, error)
}

type siteVisitRepoImpl struct {
	col *mongo.Collection
}

func NewSiteVisitRepo(db *mongo.Database) SiteVisitRepo {
	return &siteVisitRepoImpl{
		col: db.Collection(mongodb.SiteVisitCollection),
	}
}

// Increment 当日不存在则以 1 创建, 否则原地自增
func (s *siteVisitRepoImpl) Increment(ctx context.Context, date string, at time.Time) error {
	filter := bson.M{"date": date}
	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$set": bson.M{"lastUpdated": at},
	}
	opts := options.Update().SetUpsert(true)

	_, err := s.col.UpdateOne(ctx, filter, update, opts)
	// 两个请求同时 upsert 同一天时, 落败的一方撞唯一索引, 此时记录已存在, 重试即为自增
	if mongo.IsDuplicateKeyError(err) {
		_, err = s.col.UpdateOne(ctx, filter, update, opts)
	}
	return err
}

// GetRange 闭区间 [from, to], 日期升序
func (s *siteVisitRepoImpl) GetRange(ctx context.Context, from, to string) ([]*model.SiteVisit, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*model.SiteVisit, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

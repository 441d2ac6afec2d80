package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PostCollection      = "posts"
	SiteVisitCollection = "site_visits"
	AdminCollection     = "admins"
)

// EnsureIndexes 创建业务依赖的索引, 重复执行无副作用
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		PostCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "views", Value: -1}}},
		},
		// 每个自然日只允许一条计数记录, upsert 的原子性依赖此索引
		SiteVisitCollection: {
			{Keys: bson.D{{Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		AdminCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

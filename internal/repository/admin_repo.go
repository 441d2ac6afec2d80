package repository

import (
	"Chronicle/internal/model"
	mongodb "Chronicle/internal/pkg/mongo"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrAdminExists = errors.New("admin already exists")

type AdminRepo interface {
	GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	UpdatePassword(ctx context.Context, username, passwordHash string, at time.Time) error
}

type adminRepoImpl struct {
	col *mongo.Collection
}

func NewAdminRepo(db *mongo.Database) AdminRepo {
	return &adminRepoImpl{
		col: db.Collection(mongodb.AdminCollection),
	}
}

// GetAdminByUsername 未找到时返回 nil, nil
func (s *adminRepoImpl) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (s *adminRepoImpl) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	res, err := s.col.InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAdminExists
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		admin.ID = oid
	}
	return nil
}

func (s *adminRepoImpl) UpdatePassword(ctx context.Context, username, passwordHash string, at time.Time) error {
	update := bson.M{"$set": bson.M{"passwordHash": passwordHash, "updatedAt": at}}
	result, err := s.col.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaType 帖子附带媒体的类别
type MediaType string

const (
	MediaNone  MediaType = "none"
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Body          string             `bson:"body" json:"body"`
	FeaturedMedia string             `bson:"featuredMedia,omitempty" json:"featuredMedia"` // 媒体公开地址
	MediaKey      string             `bson:"mediaKey,omitempty" json:"-"`                  // MinIO 对象键
	MediaType     MediaType          `bson:"mediaType" json:"mediaType"`
	Views         int64              `bson:"views" json:"views"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasMedia 是否挂载了媒体
func (p *Post) HasMedia() bool {
	return p.FeaturedMedia != ""
}

// ClearMedia 清除媒体引用, 返回原对象键
func (p *Post) ClearMedia() string {
	key := p.MediaKey
	p.FeaturedMedia = ""
	p.MediaKey = ""
	p.MediaType = MediaNone
	return key
}

// PostViews 热门帖子投影
type PostViews struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Title string             `bson:"title" json:"title"`
	Views int64              `bson:"views" json:"views"`
}

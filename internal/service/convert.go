package service

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/model"
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/pkg/render"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: primitive.ObjectID{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(primitive.ObjectID).Hex(), nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(time.Time).Format(time.RFC3339), nil
			},
		},
		{
			SrcType: model.MediaNone,
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return string(src.(model.MediaType)), nil
			},
		},
	},
}

// toPostDTO 详情带渲染后的 HTML, 列表只带摘要
func toPostDTO(ctx context.Context, post *model.Post, detail bool) *dto.PostDTO {
	item := &dto.PostDTO{}
	if err := copier.CopyWithOption(item, post, copyOption); err != nil {
		log.ErrorContext(ctx, "copy post failed", "id", post.ID.Hex(), "err", err)
	}
	if item.MediaType == "" {
		item.MediaType = string(model.MediaNone)
	}
	if detail {
		html, err := render.MarkdownToHTML(post.Body)
		if err != nil {
			log.WarnContext(ctx, "render post body failed", "id", post.ID.Hex(), "err", err)
		}
		item.BodyHTML = html
	} else {
		item.Body = ""
		item.Excerpt = render.Excerpt(post.Body, consts.ExcerptLength)
	}
	return item
}

func toPostDTOs(ctx context.Context, posts []*model.Post) []*dto.PostDTO {
	items := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostDTO(ctx, p, false))
	}
	return items
}

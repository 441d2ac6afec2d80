package service

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/pkg/util"
	"Chronicle/internal/repository"
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

type PostService interface {
	ListPosts(ctx context.Context, page, pageSize int) (*dto.PostPageDTO, error)
	GetPost(ctx context.Context, id string) (*dto.PostDTO, error)
	Search(ctx context.Context, term string) (*dto.SearchResultDTO, error)
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	visitService VisitService
	searchLimit  int64
}

func NewPostService(postRepo repository.PostRepo, visitService VisitService, searchLimit int64) PostService {
	// 0 表示不限条数
	if searchLimit < 0 {
		searchLimit = 0
	}
	return &postServiceImpl{
		postRepo:     postRepo,
		visitService: visitService,
		searchLimit:  searchLimit,
	}
}

// ListPosts 按创建时间倒序分页, 页码小于 1 时视为第一页
func (s *postServiceImpl) ListPosts(ctx context.Context, page, pageSize int) (*dto.PostPageDTO, error) {
	page = util.ClampPage(page)
	if pageSize <= 0 {
		return nil, ErrValidation
	}
	offset := int64(page-1) * int64(pageSize)

	var (
		total int64
		posts []*dto.PostDTO
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.postRepo.CountPosts(gCtx)
		total = n
		return err
	})
	g.Go(func() error {
		list, err := s.postRepo.ListPosts(gCtx, offset, int64(pageSize))
		if err != nil {
			return err
		}
		posts = toPostDTOs(gCtx, list)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	result := &dto.PostPageDTO{
		Items:       posts,
		CurrentPage: page,
		TotalCount:  total,
		TotalPages:  int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
	if int64(page)*int64(pageSize) < total {
		next := page + 1
		result.NextPage = &next
	}
	return result, nil
}

// GetPost 读取详情, 浏览量原子加一并记录访问
func (s *postServiceImpl) GetPost(ctx context.Context, id string) (*dto.PostDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.IncrementViews(ctx, oid)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	s.visitService.TrackVisit(ctx)
	return toPostDTO(ctx, post, true), nil
}

// Search 清洗关键词后对标题和正文做不区分大小写的子串匹配, 空关键词匹配全部
func (s *postServiceImpl) Search(ctx context.Context, term string) (*dto.SearchResultDTO, error) {
	cleaned := util.SanitizeSearchTerm(term)
	posts, err := s.postRepo.SearchPosts(ctx, regexp.QuoteMeta(cleaned), s.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &dto.SearchResultDTO{
		Term:  cleaned,
		Items: toPostDTOs(ctx, posts),
	}, nil
}

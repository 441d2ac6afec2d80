package service

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/model"
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/pkg/util"
	"Chronicle/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

type AdminService interface {
	CreatePost(ctx context.Context, form *dto.PostFormDTO, media *dto.MediaUpload) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, id string, form *dto.PostFormDTO, action dto.MediaAction) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, id string) error
	GetPostForEdit(ctx context.Context, id string) (*dto.PostDTO, error)
	GetAnalytics(ctx context.Context) (*dto.AnalyticsDTO, error)
	GetTopPosts(ctx context.Context, limit int) ([]*dto.TopPostDTO, error)
	UploadPolicy() *dto.UploadPolicyDTO
}

type adminServiceImpl struct {
	postRepo  repository.PostRepo
	visitRepo repository.SiteVisitRepo
	storage   MediaStorage
	orphans   OrphanQueue
	maxSize   int64
	loc       *time.Location
	now       func() time.Time
}

func NewAdminService(
	postRepo repository.PostRepo,
	visitRepo repository.SiteVisitRepo,
	storage MediaStorage,
	orphans OrphanQueue,
	maxSize int64,
	loc *time.Location,
) AdminService {
	if loc == nil {
		loc = time.Local
	}
	return &adminServiceImpl{
		postRepo:  postRepo,
		visitRepo: visitRepo,
		storage:   storage,
		orphans:   orphans,
		maxSize:   maxSize,
		loc:       loc,
		now:       time.Now,
	}
}

// storedMedia 已上传的媒体
type storedMedia struct {
	key       string
	url       string
	mediaType model.MediaType
}

// CreatePost 先校验再上传, 入库失败时回收已上传的文件
func (s *adminServiceImpl) CreatePost(ctx context.Context, form *dto.PostFormDTO, media *dto.MediaUpload) (*dto.PostDTO, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}
	var mediaType model.MediaType
	if media != nil {
		t, err := s.classifyMedia(media)
		if err != nil {
			return nil, err
		}
		mediaType = t
	}

	now := s.now()
	post := &model.Post{
		Title:     form.Title,
		Body:      form.Body,
		MediaType: model.MediaNone,
		Views:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if media != nil {
		stored, err := s.upload(ctx, media, mediaType)
		if err != nil {
			return nil, err
		}
		post.FeaturedMedia = stored.url
		post.MediaKey = stored.key
		post.MediaType = stored.mediaType
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		s.releaseMedia(ctx, post.MediaKey)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	log.InfoContext(ctx, "post created", "id", post.ID.Hex(), "mediaType", post.MediaType)
	return toPostDTO(ctx, post, true), nil
}

// UpdatePost 按 action 保留、移除或替换媒体, 被替换的对象进入清理队列
func (s *adminServiceImpl) UpdatePost(ctx context.Context, id string, form *dto.PostFormDTO, action dto.MediaAction) (*dto.PostDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}
	if err = s.validateForm(form); err != nil {
		return nil, err
	}
	var mediaType model.MediaType
	if action.Kind == dto.MediaReplace {
		if action.Upload == nil {
			return nil, ErrValidation
		}
		if mediaType, err = s.classifyMedia(action.Upload); err != nil {
			return nil, err
		}
	}

	post, err := s.postRepo.GetPostByID(ctx, oid)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	var released, uploaded string
	switch action.Kind {
	case dto.MediaRemove:
		released = post.ClearMedia()
	case dto.MediaReplace:
		stored, err := s.upload(ctx, action.Upload, mediaType)
		if err != nil {
			return nil, err
		}
		released = post.ClearMedia()
		post.FeaturedMedia = stored.url
		post.MediaKey = stored.key
		post.MediaType = stored.mediaType
		uploaded = stored.key
	}
	post.Title = form.Title
	post.Body = form.Body
	post.UpdatedAt = s.now()

	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		s.releaseMedia(ctx, uploaded)
		if repository.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	s.releaseMedia(ctx, released)
	return toPostDTO(ctx, post, true), nil
}

// DeletePost 物理删除, 媒体对象进入清理队列
func (s *adminServiceImpl) DeletePost(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}
	post, err := s.postRepo.DeletePost(ctx, oid)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrPostNotFound
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	s.releaseMedia(ctx, post.MediaKey)
	log.InfoContext(ctx, "post deleted", "id", id)
	return nil
}

// GetPostForEdit 不计浏览量
func (s *adminServiceImpl) GetPostForEdit(ctx context.Context, id string) (*dto.PostDTO, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.GetPostByID(ctx, oid)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return toPostDTO(ctx, post, true), nil
}

// GetAnalytics 帖子数、总浏览量、近 30 天访问量、今日访问量以及近 7 天逐日访问量
func (s *adminServiceImpl) GetAnalytics(ctx context.Context) (*dto.AnalyticsDTO, error) {
	today := s.now().In(s.loc)
	todayKey := today.Format(model.DateLayout)
	monthStart := today.AddDate(0, 0, -(consts.AnalyticsMonthDays - 1)).Format(model.DateLayout)

	var (
		totalPosts int64
		totalViews int64
		visits     []*model.SiteVisit
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.postRepo.CountPosts(gCtx)
		totalPosts = n
		return err
	})
	g.Go(func() error {
		n, err := s.postRepo.SumViews(gCtx)
		totalViews = n
		return err
	})
	g.Go(func() error {
		list, err := s.visitRepo.GetRange(gCtx, monthStart, todayKey)
		visits = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	counts := make(map[string]int64, len(visits))
	var siteVisits int64
	for _, v := range visits {
		counts[v.Date] = v.Count
		siteVisits += v.Count
	}

	byDay := make([]*dto.DayVisitDTO, 0, consts.AnalyticsWeekDays)
	for i := consts.AnalyticsWeekDays - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(model.DateLayout)
		byDay = append(byDay, &dto.DayVisitDTO{Date: key, Count: counts[key]})
	}

	return &dto.AnalyticsDTO{
		TotalPosts:  totalPosts,
		TotalViews:  totalViews,
		SiteVisits:  siteVisits,
		TodayVisits: counts[todayKey],
		VisitsByDay: byDay,
	}, nil
}

// GetTopPosts limit 限定在 1 到 50 之间, 0 取默认值
func (s *adminServiceImpl) GetTopPosts(ctx context.Context, limit int) ([]*dto.TopPostDTO, error) {
	switch {
	case limit == 0:
		limit = consts.DefaultTopPosts
	case limit < 1:
		limit = 1
	case limit > consts.MaxTopPosts:
		limit = consts.MaxTopPosts
	}
	rows, err := s.postRepo.GetTopPosts(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	list := make([]*dto.TopPostDTO, 0, len(rows))
	for _, r := range rows {
		list = append(list, &dto.TopPostDTO{ID: r.ID.Hex(), Title: r.Title, Views: r.Views})
	}
	return list, nil
}

func (s *adminServiceImpl) UploadPolicy() *dto.UploadPolicyDTO {
	return &dto.UploadPolicyDTO{
		MaxSize:      s.maxSize,
		AcceptedType: []string{consts.MimePrefixImage + "*", consts.MimePrefixVideo + "*"},
		FieldName:    consts.MediaFormField,
	}
}

func (s *adminServiceImpl) validateForm(form *dto.PostFormDTO) error {
	if form == nil {
		return ErrValidation
	}
	form.Title = strings.TrimSpace(form.Title)
	form.Body = strings.TrimSpace(form.Body)
	if err := util.ValidateDTO(form); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// classifyMedia 只接受 image/* 与 video/*
func (s *adminServiceImpl) classifyMedia(media *dto.MediaUpload) (model.MediaType, error) {
	if s.maxSize > 0 && media.Size > s.maxSize {
		return "", ErrPayloadTooLarge
	}
	switch {
	case strings.HasPrefix(media.ContentType, consts.MimePrefixImage):
		return model.MediaImage, nil
	case strings.HasPrefix(media.ContentType, consts.MimePrefixVideo):
		return model.MediaVideo, nil
	default:
		return "", ErrUnsupportedMediaType
	}
}

func (s *adminServiceImpl) upload(ctx context.Context, media *dto.MediaUpload, mediaType model.MediaType) (*storedMedia, error) {
	objectName := s.now().In(s.loc).Format("2006/01/02/") + uuid.NewString() + strings.ToLower(path.Ext(media.Filename))
	key, err := s.storage.UploadFile(ctx, objectName, media.Reader, media.Size, media.ContentType)
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &storedMedia{
		key:       key,
		url:       s.storage.GetPublicURL(key),
		mediaType: mediaType,
	}, nil
}

// releaseMedia 交给定时任务删除, 入队失败只记录
func (s *adminServiceImpl) releaseMedia(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.orphans.EnqueueOrphans(ctx, key); err != nil {
		log.WarnContext(ctx, "enqueue orphan media failed", "key", key, "err", err)
	}
}

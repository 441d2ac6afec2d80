package handler

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/pkg/response"
	"Chronicle/internal/pkg/util"
	"Chronicle/internal/service"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead 表单字段与边界的额外空间
const multipartOverhead = 1 << 20

type AdminHandler struct {
	adminSvc service.AdminService
	postSvc  service.PostService
	pageSize int
	maxSize  int64
}

func NewAdminHandler(adminSvc service.AdminService, postSvc service.PostService, pageSize int, maxSize int64) *AdminHandler {
	return &AdminHandler{
		adminSvc: adminSvc,
		postSvc:  postSvc,
		pageSize: pageSize,
		maxSize:  maxSize,
	}
}

// Dashboard 后台帖子列表
func (s *AdminHandler) Dashboard(c *gin.Context) {
	page, err := s.postSvc.ListPosts(c.Request.Context(), bindPage(c), s.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// UploadPolicy 新建页所需的上传限制
func (s *AdminHandler) UploadPolicy(c *gin.Context) {
	response.Success(c, s.adminSvc.UploadPolicy())
}

func (s *AdminHandler) CreatePost(c *gin.Context) {
	s.limitBody(c)

	var form dto.PostFormDTO
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}

	media, file, err := s.readMedia(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if file != nil {
		defer func() {
			_ = file.Close()
		}()
	}

	post, err := s.adminSvc.CreatePost(c.Request.Context(), &form, media)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// EditPost 编辑页数据, 不计浏览量
func (s *AdminHandler) EditPost(c *gin.Context) {
	post, err := s.adminSvc.GetPostForEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost 上传新文件即替换, removeMedia=true 且无新文件时移除
func (s *AdminHandler) UpdatePost(c *gin.Context) {
	s.limitBody(c)

	var form dto.PostFormDTO
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}

	media, file, err := s.readMedia(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if file != nil {
		defer func() {
			_ = file.Close()
		}()
	}

	action := dto.KeepMedia()
	switch {
	case media != nil:
		action = dto.ReplaceMedia(media)
	case form.RemoveMedia:
		action = dto.RemoveMedia()
	}

	post, err := s.adminSvc.UpdatePost(c.Request.Context(), c.Param("id"), &form, action)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *AdminHandler) DeletePost(c *gin.Context) {
	if err := s.adminSvc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AdminHandler) Analytics(c *gin.Context) {
	res, err := s.adminSvc.GetAnalytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AdminHandler) TopPosts(c *gin.Context) {
	var query dto.TopPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrValidation)
		return
	}

	list, err := s.adminSvc.GetTopPosts(c.Request.Context(), query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *AdminHandler) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxSize+multipartOverhead)
}

// readMedia 没有上传文件时返回 nil, 类型以文件内容嗅探为准
func (s *AdminHandler) readMedia(c *gin.Context) (*dto.MediaUpload, multipart.File, error) {
	header, err := c.FormFile(consts.MediaFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, bindError(err)
	}
	if header.Size > s.maxSize {
		return nil, nil, service.ErrPayloadTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	contentType, err := util.DetectContentType(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, service.ErrUnsupportedMediaType
	}
	return &dto.MediaUpload{
		Reader:      file,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: contentType,
	}, file, nil
}

// bindError 请求体超限单独识别, 其余按参数错误处理
func bindError(err error) error {
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		return service.ErrPayloadTooLarge
	}
	return service.ErrValidation
}

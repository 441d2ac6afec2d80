package handler

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/pkg/response"
	"Chronicle/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc  service.PostService
	visitSvc service.VisitService
	pageSize int
}

func NewPostHandler(postSvc service.PostService, visitSvc service.VisitService, pageSize int) *PostHandler {
	return &PostHandler{
		postSvc:  postSvc,
		visitSvc: visitSvc,
		pageSize: pageSize,
	}
}

// Home 首页分页列表, 同时记一次站点访问
func (s *PostHandler) Home(c *gin.Context) {
	page, err := s.postSvc.ListPosts(c.Request.Context(), bindPage(c), s.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	s.visitSvc.TrackVisit(c.Request.Context())
	response.Success(c, page)
}

// bindPage 页码无法解析时回到第一页, 非正数交给 ListPosts 处理
func bindPage(c *gin.Context) int {
	var query dto.PostListDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		return 1
	}
	return query.Page
}

func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// Search 支持表单与 JSON 两种提交方式
func (s *PostHandler) Search(c *gin.Context) {
	var req dto.SearchDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrValidation)
		return
	}

	result, err := s.postSvc.Search(c.Request.Context(), req.SearchTerm)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

package dto

// PostDTO 帖子
type PostDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Body          string `json:"body,omitempty"`
	BodyHTML      string `json:"bodyHtml,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
	FeaturedMedia string `json:"featuredMedia,omitempty"`
	MediaType     string `json:"mediaType"`
	Views         int64  `json:"views"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// PostPageDTO 分页结果, 没有下一页时 NextPage 为 nil
type PostPageDTO struct {
	Items       []*PostDTO `json:"items"`
	CurrentPage int        `json:"currentPage"`
	NextPage    *int       `json:"nextPage"`
	TotalCount  int64      `json:"totalCount"`
	TotalPages  int        `json:"totalPages"`
}

// PostListDTO 列表查询参数
type PostListDTO struct {
	Page int `form:"page"`
}

// SearchDTO 搜索参数
type SearchDTO struct {
	SearchTerm string `form:"searchTerm" json:"searchTerm"`
}

// SearchResultDTO 搜索结果, Term 为清洗后的关键词
type SearchResultDTO struct {
	Term  string     `json:"term"`
	Items []*PostDTO `json:"items"`
}

// PostFormDTO 帖子 - 新增或修改, 媒体文件通过 featuredMedia 字段单独上传
type PostFormDTO struct {
	Title       string `form:"title" json:"title" validate:"required,max=255"`
	Body        string `form:"body" json:"body" validate:"required"`
	RemoveMedia bool   `form:"removeMedia" json:"removeMedia"`
}

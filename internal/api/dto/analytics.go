package dto

// AnalyticsDTO 后台统计快照
type AnalyticsDTO struct {
	TotalPosts  int64          `json:"totalPosts"`
	TotalViews  int64          `json:"totalViews"`
	SiteVisits  int64          `json:"siteVisits"`
	TodayVisits int64          `json:"todayVisits"`
	VisitsByDay []*DayVisitDTO `json:"visitsByDay"`
}

type DayVisitDTO struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type TopPostDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Views int64  `json:"views"`
}

type TopPostsQuery struct {
	Limit int `form:"limit"`
}

package consts

const (
	MimePrefixImage = "image/"
	MimePrefixVideo = "video/"
	MediaFormField  = "featuredMedia"
)

const (
	DefaultPageSize    = 10
	DefaultTopPosts    = 10
	MaxTopPosts        = 50
	AnalyticsWeekDays  = 7
	AnalyticsMonthDays = 30
	ExcerptLength      = 200
)

// 上下文键
const (
	ClaimsKey = "admin_claims"
)

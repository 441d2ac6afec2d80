package model

import "time"

// DateLayout 访问计数的日期键格式
const DateLayout = "2006-01-02"

// SiteVisit 按自然日聚合的站点访问计数
type SiteVisit struct {
	Date        string    `bson:"date" json:"date"`
	Count       int64     `bson:"count" json:"count"`
	LastUpdated time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

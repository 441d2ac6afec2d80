package service

import (
	"Chronicle/internal/model"
	"Chronicle/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type VisitService interface {
	TrackVisit(ctx context.Context)
}

type visitServiceImpl struct {
	visitRepo repository.SiteVisitRepo
	loc       *time.Location
	now       func() time.Time
}

func NewVisitService(visitRepo repository.SiteVisitRepo, loc *time.Location) VisitService {
	if loc == nil {
		loc = time.Local
	}
	return &visitServiceImpl{
		visitRepo: visitRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// TrackVisit 当日访问计数, 出错只记录不影响请求
func (s *visitServiceImpl) TrackVisit(ctx context.Context) {
	now := s.now()
	if err := s.visitRepo.Increment(ctx, dayKey(now, s.loc), now); err != nil {
		log.WarnContext(ctx, "track visit failed", "err", err)
	}
}

// dayKey 按配置时区计算日期键
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(model.DateLayout)
}

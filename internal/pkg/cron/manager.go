package cron

import (
	"Chronicle/internal/api/config"
	"Chronicle/internal/job"
	log "log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	cfg             config.CronConfig
	mediaCleanupJob *job.MediaCleanupJob
}

func NewCronManager(mediaCleanupJob *job.MediaCleanupJob, cfg config.CronConfig, loc *time.Location) *Manager {
	if loc == nil {
		loc = time.Local
	}
	return &Manager{
		engine:          cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		cfg:             cfg,
		mediaCleanupJob: mediaCleanupJob,
	}
}

// RegisterJobs 注册定时任务, 上一轮未结束时跳过本轮
func (s *Manager) RegisterJobs() error {
	cleanup := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(s.mediaCleanupJob)
	if _, err := s.engine.AddJob(s.cfg.MediaCleanup, cleanup); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

// Entries 已注册的任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

package cron

import log "log/slog"

// InitCron 注册并启动, 表达式非法时返回错误
func InitCron(mgr *Manager) error {
	log.Info("Cron Jobs starting...", "media_cleanup", mgr.cfg.MediaCleanup)
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}

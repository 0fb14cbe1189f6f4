// Package scheduler contém os serviços de agendamento executados em segundo plano
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/session"
)

type SessionCleanupConfig struct {
	CronSchedule string
	Enabled      bool
	SessionTTL   time.Duration
}

// SessionCleanupService remove periodicamente as sessões expiradas e suas tabelas
type SessionCleanupService struct {
	scheduler            *gocron.Scheduler
	store                session.Store
	config               SessionCleanupConfig
	now                  func() time.Time
	cleanupRunning       bool
	cleanupMutex         sync.Mutex
	lastCleanupStartedAt time.Time
	lastCleanupEndedAt   time.Time
	lastEvicted          int
	totalEvicted         int
}

func NewSessionCleanupService(store session.Store, cfg *config.Config) *SessionCleanupService {
	cleanupConfig := SessionCleanupConfig{
		CronSchedule: cfg.SessionCleanup.CronSchedule,
		Enabled:      cfg.SessionCleanup.Enabled,
		SessionTTL:   cfg.Session.TTL,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cleanupConfig.CronSchedule,
		"session_ttl":   cleanupConfig.SessionTTL.String(),
	}).Info("Configuração do agendador de limpeza de sessões carregada")

	return &SessionCleanupService{
		scheduler: gocron.NewScheduler(time.Local),
		store:     store,
		config:    cleanupConfig,
		now:       time.Now,
	}
}

func (s *SessionCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de sessões desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza de sessões")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.CleanupExpiredSessions()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de sessões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza de sessões")
		s.scheduler.Stop()
	}()

	return nil
}

// CleanupExpiredSessions remove as sessões expiradas e retorna quantas foram removidas
func (s *SessionCleanupService) CleanupExpiredSessions() int {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Warn("Limpeza de sessões já está em execução")
		return 0
	}
	s.cleanupRunning = true
	s.lastCleanupStartedAt = s.now()
	s.cleanupMutex.Unlock()

	evicted := s.store.EvictExpired(s.now())

	s.cleanupMutex.Lock()
	s.cleanupRunning = false
	s.lastCleanupEndedAt = s.now()
	s.lastEvicted = evicted
	s.totalEvicted += evicted
	s.cleanupMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"evicted":         evicted,
		"active_sessions": s.store.Len(),
	}).Info("Limpeza de sessões concluída")

	return evicted
}

// TriggerManualCleanup dispara a limpeza fora do agendamento
func (s *SessionCleanupService) TriggerManualCleanup() {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Info("Limpeza de sessões já em andamento, ignorando solicitação manual")
		return
	}
	s.cleanupMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de sessões")
	go s.CleanupExpiredSessions()
}

// GetStatus retorna o status atual do agendador
func (s *SessionCleanupService) GetStatus() map[string]any {
	s.cleanupMutex.Lock()
	defer s.cleanupMutex.Unlock()

	return map[string]any{
		"cleanup_enabled":           s.config.Enabled,
		"cleanup_cron":              s.config.CronSchedule,
		"session_ttl":               s.config.SessionTTL.String(),
		"cleanup_running":           s.cleanupRunning,
		"active_sessions":           s.store.Len(),
		"last_cleanup_started_at":   s.lastCleanupStartedAt,
		"last_cleanup_completed_at": s.lastCleanupEndedAt,
		"last_evicted":              s.lastEvicted,
		"total_evicted":             s.totalEvicted,
	}
}

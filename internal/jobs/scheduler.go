// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: минутный тик голосового опыта
// и проверку сроков розыгрышей.
package jobs

import (
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"levelbot/internal/bot"
	"levelbot/internal/features/giveaway"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron            *cron.Cron
	bot             *bot.Bot
	giveawayService *giveaway.Service // nil при отключённых розыгрышах
}

// NewScheduler создаёт планировщик задач.
func NewScheduler(b *bot.Bot, giveawayService *giveaway.Service) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		bot:             b,
		giveawayService: giveawayService,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start() {
	// Минутный тик: минута войса и опыт каждому активному участнику
	s.cron.AddFunc("@every 1m", func() {
		log.Debug("[CRON] Тик голосового опыта")
		s.bot.TickVoice()
	})

	// Завершение просроченных розыгрышей
	if s.giveawayService != nil {
		s.cron.AddFunc("@every 10s", func() {
			s.bot.TickGiveaways(s.giveawayService)
		})
	}

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик, дожидаясь текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

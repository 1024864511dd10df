// Package leveling — handlers.go: команды прокачки.
// !level, !top, !voicetime — чтение и отрисовка, без бизнес-логики.
package leveling

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"levelbot/internal/bot/ui"
	"levelbot/internal/common"
	"levelbot/internal/config"
)

// Handler обрабатывает команды прокачки.
type Handler struct {
	service *Service
	cfg     *config.Config
}

// NewHandler создаёт обработчик команд прокачки.
func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{service: service, cfg: cfg}
}

// HandleLevel — !level [@user]: уровень, опыт и прогресс до следующего.
func (h *Handler) HandleLevel(s *discordgo.Session, m *discordgo.MessageCreate, targetID, targetName string) {
	u := h.service.Get(targetID)
	current, needed := LevelProgress(u.XP, u.Level)

	embed := ui.Embed(
		fmt.Sprintf("📊 Уровень %s", targetName),
		fmt.Sprintf("Уровень **%d**", u.Level),
		ui.ColorInfo,
		ui.Field{Name: "Всего опыта", Value: fmt.Sprintf("%d XP", u.XP), Inline: true},
		ui.Field{Name: "Опыт уровня", Value: fmt.Sprintf("%d/%d", current, LevelXPUnit), Inline: true},
		ui.Field{Name: "До следующего", Value: fmt.Sprintf("%d XP", needed), Inline: true},
		ui.Field{Name: "Прогресс", Value: common.ProgressBar(current, LevelXPUnit, 10)},
		ui.Field{Name: "Голосовое время", Value: common.FormatVoiceMinutes(u.VoiceTime), Inline: true},
		ui.Field{Name: "Сообщений", Value: fmt.Sprintf("%d", u.MessagesSent), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

// HandleTop — !top: десятка лучших по опыту.
func (h *Handler) HandleTop(s *discordgo.Session, m *discordgo.MessageCreate) {
	top := h.service.Top(10)
	if len(top) == 0 {
		ui.SendText(s, m.ChannelID, "Пока никто не набрал опыта!")
		return
	}

	var sb strings.Builder
	for i, entry := range top {
		sb.WriteString(fmt.Sprintf("**%d.** <@%s> • уровень %d • %d XP\n",
			i+1, entry.UserID, entry.Level, entry.XP))
	}

	ui.Send(s, m.ChannelID, ui.Embed("🏆 Таблица лидеров", sb.String(), ui.ColorInfo))
}

// HandleVoiceTime — !voicetime [@user]: статистика голосового времени.
func (h *Handler) HandleVoiceTime(s *discordgo.Session, m *discordgo.MessageCreate, targetID, targetName string) {
	u := h.service.Get(targetID)

	embed := ui.Embed(
		fmt.Sprintf("🎤 Голосовое время %s", targetName),
		"Статистика голосовой активности",
		ui.ColorInfo,
		ui.Field{Name: "Текущий счётчик", Value: common.FormatVoiceMinutes(u.VoiceTime), Inline: true},
		ui.Field{Name: "За всё время", Value: common.FormatVoiceMinutes(u.TotalVoiceTime), Inline: true},
		ui.Field{Name: "Опыт за войс", Value: fmt.Sprintf("%d XP", u.VoiceTime*h.cfg.VoiceXPPerMinute), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

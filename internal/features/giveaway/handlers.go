// Package giveaway — handlers.go: команды розыгрышей и события реакций.
package giveaway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"levelbot/internal/bot/ui"
	"levelbot/internal/common"
)

// Handler обрабатывает команды розыгрышей.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик розыгрышей.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGiveaway — !giveaway <длительность> <приз>.
func (h *Handler) HandleGiveaway(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		ui.SendText(s, m.ChannelID, "Формат: !giveaway <длительность> <приз> (например: !giveaway 1h Nitro)")
		return
	}

	d, err := ParseDuration(args[0])
	if errors.Is(err, common.ErrGiveawayDuration) {
		ui.SendText(s, m.ChannelID, "❌ Длительность от 30s до 7d (например: 30s, 10m, 2h, 1d).")
		return
	}

	prize := strings.Join(args[1:], " ")
	g := h.service.Create(m.ChannelID, m.Author.ID, prize, d)

	embed := ui.Embed(
		"🎉 Розыгрыш!",
		fmt.Sprintf("Приз: **%s**\nНажмите %s, чтобы участвовать!", prize, EntryEmoji),
		ui.ColorGold,
		ui.Field{Name: "Завершится через", Value: common.FormatDuration(d), Inline: true},
		ui.Field{Name: "Организатор", Value: m.Author.Mention(), Inline: true},
		ui.Field{Name: "ID", Value: g.ID, Inline: true},
	)

	msg, err := s.ChannelMessageSendEmbed(m.ChannelID, embed)
	if err != nil {
		log.WithError(err).Error("Сообщение розыгрыша не отправлено")
		return
	}
	h.service.BindMessage(g.ID, msg.ID)

	if err := s.MessageReactionAdd(m.ChannelID, msg.ID, EntryEmoji); err != nil {
		log.WithError(err).Warn("Не удалось поставить реакцию розыгрыша")
	}
}

// HandleList — !giveawaylist: активные розыгрыши.
func (h *Handler) HandleList(s *discordgo.Session, m *discordgo.MessageCreate) {
	active := h.service.Active()
	if len(active) == 0 {
		ui.SendText(s, m.ChannelID, "Сейчас нет активных розыгрышей.")
		return
	}

	now := h.service.Now()
	var sb strings.Builder
	for _, g := range active {
		sb.WriteString(fmt.Sprintf("`%s` • **%s** • участников: %d • осталось %s\n",
			g.ID, g.Prize, len(g.Entrants), common.FormatDuration(g.EndsAt.Sub(now))))
	}
	ui.Send(s, m.ChannelID, ui.Embed("🎉 Активные розыгрыши", sb.String(), ui.ColorGold))
}

// HandleReroll — !giveawayreroll <id>: новый победитель.
func (h *Handler) HandleReroll(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		ui.SendText(s, m.ChannelID, "Формат: !giveawayreroll <id>")
		return
	}

	g, err := h.service.Reroll(args[0])
	if errors.Is(err, common.ErrGiveawayNotFound) {
		ui.SendText(s, m.ChannelID, "❌ Завершённый розыгрыш с таким ID не найден.")
		return
	}
	if g.WinnerID == "" {
		ui.SendText(s, m.ChannelID, "В этом розыгрыше не было участников.")
		return
	}

	ui.Send(s, g.ChannelID, ui.Embed("🎉 Новый победитель!",
		fmt.Sprintf("Приз **%s** достаётся <@%s>! Поздравляем!", g.Prize, g.WinnerID),
		ui.ColorGold))
}

// AnnounceEnded объявляет итоги завершённых розыгрышей.
// Вызывается планировщиком после EndDue.
func (h *Handler) AnnounceEnded(s *discordgo.Session, ended []Giveaway) {
	for _, g := range ended {
		if g.WinnerID == "" {
			ui.Send(s, g.ChannelID, ui.Embed("😔 Розыгрыш завершён",
				fmt.Sprintf("Приз **%s** никто не забрал: не было участников.", g.Prize),
				ui.ColorGray))
			continue
		}
		ui.Send(s, g.ChannelID, ui.Embed("🎉 Розыгрыш завершён!",
			fmt.Sprintf("Победитель: <@%s>!\nПриз: **%s**", g.WinnerID, g.Prize),
			ui.ColorGold))
	}
}

// OnReactionAdd — событие реакции: регистрируем участника.
func (h *Handler) OnReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.Emoji.Name != EntryEmoji || r.UserID == s.State.User.ID {
		return
	}
	h.service.AddEntrant(r.MessageID, r.UserID)
}

// OnReactionRemove — снятая реакция выводит участника из розыгрыша.
func (h *Handler) OnReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.Emoji.Name != EntryEmoji {
		return
	}
	h.service.RemoveEntrant(r.MessageID, r.UserID)
}

// Package trivia — handlers.go: команды викторины.
package trivia

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"levelbot/internal/bot/ui"
	"levelbot/internal/common"
)

// Handler обрабатывает команды викторины.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик викторины.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleTrivia — !trivia: запускает раунд и таймер объявления ответа.
func (h *Handler) HandleTrivia(s *discordgo.Session, m *discordgo.MessageCreate) {
	res, err := h.service.Start(m.ChannelID)
	if errors.Is(err, common.ErrTriviaActive) {
		ui.SendText(s, m.ChannelID, "❌ В этом канале уже идёт раунд викторины!")
		return
	}
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	embed := ui.Embed(
		"🧠 Викторина!",
		res.Question.Text,
		ui.ColorInfo,
		ui.Field{Name: "Время на ответ", Value: fmt.Sprintf("%d секунд", int(res.Window.Seconds())), Inline: true},
		ui.Field{Name: "Награда", Value: common.FormatCoins(h.service.cfg.TriviaReward), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)

	// По истечении окна объявляем ответ, если раунд не выигран
	channelID, roundID := m.ChannelID, res.RoundID
	time.AfterFunc(res.Window, func() {
		q, expired := h.service.Expire(channelID, roundID)
		if !expired {
			return
		}
		ui.Send(s, channelID, ui.Embed("⏰ Время вышло!",
			fmt.Sprintf("Никто не ответил. Правильный ответ: **%s**", q.Answers[0]),
			ui.ColorGray))
	})
}

// OnMessage проверяет каждое сообщение как возможный ответ викторины.
// Возвращает true, если сообщение закрыло раунд.
func (h *Handler) OnMessage(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	res, won := h.service.CheckAnswer(m.ChannelID, m.Author.ID, m.Content)
	if !won {
		return false
	}

	embed := ui.Embed(
		"🎉 Правильно!",
		fmt.Sprintf("%s отвечает верно и получает 🪙 **%d**!", m.Author.Mention(), res.Reward),
		ui.ColorJoin,
		ui.Field{Name: "Счёт викторины", Value: fmt.Sprintf("%d", res.Score), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
	return true
}

// HandleScores — !triviascores: таблица лучших игроков.
func (h *Handler) HandleScores(s *discordgo.Session, m *discordgo.MessageCreate) {
	top := h.service.Top(10)
	if len(top) == 0 {
		ui.SendText(s, m.ChannelID, "Пока никто не отвечал на вопросы викторины!")
		return
	}

	var sb strings.Builder
	for i, entry := range top {
		sb.WriteString(fmt.Sprintf("**%d.** <@%s> • %d верных ответов\n", i+1, entry.UserID, entry.Score))
	}
	ui.Send(s, m.ChannelID, ui.Embed("🧠 Таблица викторины", sb.String(), ui.ColorInfo))
}

// HandleReset — !triviareset (только администратор).
func (h *Handler) HandleReset(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := h.service.Reset(); err != nil {
		ui.SendText(s, m.ChannelID, "❌ Не удалось сбросить таблицу: "+err.Error())
		return
	}
	ui.Send(s, m.ChannelID, ui.Embed("✅ Таблица сброшена",
		"Счёт викторины обнулён.", ui.ColorLeave))
}

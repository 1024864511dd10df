// Package admin — handlers.go: админ-команды.
// Проверку прав администратора выполняет роутер ДО вызова этих методов.
package admin

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"levelbot/internal/bot/ui"
	"levelbot/internal/common"
	"levelbot/internal/features/leveling"
)

// Handler обрабатывает админ-команды.
type Handler struct {
	service  *Service
	leveling *leveling.Service
}

// NewHandler создаёт обработчик админ-команд.
func NewHandler(service *Service, levelingService *leveling.Service) *Handler {
	return &Handler{service: service, leveling: levelingService}
}

// HandleSetLevel — !setlevel <@user> <уровень>.
func (h *Handler) HandleSetLevel(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(m.Mentions) == 0 || len(args) < 2 {
		ui.SendText(s, m.ChannelID, "Формат: !setlevel <@пользователь> <уровень>")
		return
	}
	target := m.Mentions[0]

	level, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ Укажите корректный уровень.")
		return
	}

	u, err := h.leveling.SetLevel(target.ID, level)
	if errors.Is(err, common.ErrInvalidLevel) {
		ui.SendText(s, m.ChannelID, "❌ Уровень должен быть не меньше 1.")
		return
	}
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	embed := ui.Embed(
		"⚙️ Уровень установлен",
		fmt.Sprintf("Пользователю **%s** установлен уровень **%d**", target.Username, u.Level),
		ui.ColorInfo,
		ui.Field{Name: "Опыт", Value: fmt.Sprintf("%d XP", u.XP), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

// HandleAddXP — !addxp <@user> <количество>.
func (h *Handler) HandleAddXP(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(m.Mentions) == 0 || len(args) < 2 {
		ui.SendText(s, m.ChannelID, "Формат: !addxp <@пользователь> <количество>")
		return
	}
	target := m.Mentions[0]

	amount, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ Укажите корректное количество опыта.")
		return
	}

	grant, err := h.leveling.GrantXP(target.ID, amount)
	if errors.Is(err, common.ErrInvalidXPAmount) {
		ui.SendText(s, m.ChannelID, "❌ Количество опыта должно быть положительным.")
		return
	}
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	embed := ui.Embed(
		"⚙️ Опыт начислен",
		fmt.Sprintf("Пользователю **%s** начислено **%d XP**", target.Username, amount),
		ui.ColorInfo,
		ui.Field{Name: "Всего опыта", Value: fmt.Sprintf("%d XP", grant.TotalXP), Inline: true},
		ui.Field{Name: "Уровень", Value: strconv.Itoa(grant.NewLevel), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)

	if grant.LeveledUp {
		ui.Send(s, m.ChannelID, ui.LevelUpEmbed(target.Mention(), grant.NewLevel, grant.TotalXP))
	}
}

// HandleResetUser — !resetuser <@user>: запрос сброса с токеном.
func (h *Handler) HandleResetUser(s *discordgo.Session, m *discordgo.MessageCreate) {
	if len(m.Mentions) == 0 {
		ui.SendText(s, m.ChannelID, "Формат: !resetuser <@пользователь>")
		return
	}
	target := m.Mentions[0]

	p := h.service.Request(m.Author.ID, ActionResetUser, target.ID)
	h.sendConfirmPrompt(s, m.ChannelID,
		fmt.Sprintf("сброс прогресса пользователя **%s**", target.Username), p.Token)
}

// HandleResetAll — !resetall: запрос полного сброса прокачки.
func (h *Handler) HandleResetAll(s *discordgo.Session, m *discordgo.MessageCreate) {
	p := h.service.Request(m.Author.ID, ActionResetAll, "")
	h.sendConfirmPrompt(s, m.ChannelID, "полный сброс прогресса **всех** пользователей", p.Token)
}

// HandleResetEconomy — !reseteconomy: запрос полного сброса экономики.
func (h *Handler) HandleResetEconomy(s *discordgo.Session, m *discordgo.MessageCreate) {
	p := h.service.Request(m.Author.ID, ActionResetEconomy, "")
	h.sendConfirmPrompt(s, m.ChannelID, "полный сброс экономики (**все** счета)", p.Token)
}

// HandleConfirm — !confirm <токен>.
func (h *Handler) HandleConfirm(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		ui.SendText(s, m.ChannelID, "Формат: !confirm <токен>")
		return
	}

	p, err := h.service.Confirm(m.Author.ID, args[0])
	switch {
	case errors.Is(err, common.ErrNoPendingConfirm):
		ui.SendText(s, m.ChannelID, "❌ Нет операций, ожидающих подтверждения.")
		return
	case errors.Is(err, common.ErrConfirmExpired):
		ui.SendText(s, m.ChannelID, "❌ Время подтверждения истекло, операция отменена.")
		return
	case errors.Is(err, common.ErrWrongConfirmToken):
		ui.SendText(s, m.ChannelID, "❌ Неверный токен. Проверьте и попробуйте ещё раз.")
		return
	case err != nil:
		ui.SendText(s, m.ChannelID, "❌ Операция не выполнена: "+err.Error())
		return
	}

	var text string
	switch p.Action {
	case ActionResetUser:
		text = fmt.Sprintf("Прогресс пользователя <@%s> сброшен.", p.TargetID)
	case ActionResetAll:
		text = "Прогресс всех пользователей сброшен."
	case ActionResetEconomy:
		text = "Экономика полностью сброшена."
	}

	ui.Send(s, m.ChannelID, ui.Embed("✅ Операция выполнена", text, ui.ColorLeave))
}

// sendConfirmPrompt отправляет приглашение подтвердить операцию.
func (h *Handler) sendConfirmPrompt(s *discordgo.Session, channelID, what, token string) {
	embed := ui.Embed(
		"⚠️ Требуется подтверждение",
		fmt.Sprintf("Запрошен %s.\nЭту операцию нельзя отменить!", what),
		ui.ColorError,
		ui.Field{Name: "Подтвердить", Value: fmt.Sprintf("`!confirm %s`", token)},
		ui.Field{Name: "Окно", Value: "30 секунд", Inline: true},
	)
	ui.Send(s, channelID, embed)
}

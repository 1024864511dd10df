// Package utility — handlers.go: сервисные команды.
package utility

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"levelbot/internal/bot/ui"
	"levelbot/internal/common"
)

// Handler обрабатывает сервисные команды.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик сервисных команд.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleServerInfo — !serverinfo.
func (h *Handler) HandleServerInfo(s *discordgo.Session, m *discordgo.MessageCreate) {
	guild, err := s.State.Guild(m.GuildID)
	if err != nil {
		guild, err = s.Guild(m.GuildID)
		if err != nil {
			ui.SendText(s, m.ChannelID, "❌ Не удалось получить информацию о сервере.")
			return
		}
	}

	created, _ := discordgo.SnowflakeTimestamp(guild.ID)

	textChannels, voiceChannels := 0, 0
	for _, ch := range guild.Channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText:
			textChannels++
		case discordgo.ChannelTypeGuildVoice:
			voiceChannels++
		}
	}

	embed := ui.Embed(
		fmt.Sprintf("ℹ️ Сервер %s", guild.Name),
		"",
		ui.ColorInfo,
		ui.Field{Name: "Участников", Value: strconv.Itoa(guild.MemberCount), Inline: true},
		ui.Field{Name: "Текстовых каналов", Value: strconv.Itoa(textChannels), Inline: true},
		ui.Field{Name: "Голосовых каналов", Value: strconv.Itoa(voiceChannels), Inline: true},
		ui.Field{Name: "Владелец", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
		ui.Field{Name: "Создан", Value: common.FormatDateTime(created), Inline: true},
	)
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}
	ui.Send(s, m.ChannelID, embed)
}

// HandleUserInfo — !userinfo [@user].
func (h *Handler) HandleUserInfo(s *discordgo.Session, m *discordgo.MessageCreate, target *discordgo.User) {
	created, _ := discordgo.SnowflakeTimestamp(target.ID)

	fields := []ui.Field{
		{Name: "ID", Value: target.ID, Inline: true},
		{Name: "Аккаунт создан", Value: common.FormatDateTime(created), Inline: true},
	}

	if member, err := s.State.Member(m.GuildID, target.ID); err == nil && !member.JoinedAt.IsZero() {
		fields = append(fields, ui.Field{
			Name:   "На сервере с",
			Value:  common.FormatDateTime(member.JoinedAt),
			Inline: true,
		})
	}
	if target.Bot {
		fields = append(fields, ui.Field{Name: "Бот", Value: "Да", Inline: true})
	}

	embed := ui.Embed(fmt.Sprintf("👤 %s", target.Username), "", ui.ColorInfo, fields...)
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("256")}
	ui.Send(s, m.ChannelID, embed)
}

// HandleAvatar — !avatar [@user].
func (h *Handler) HandleAvatar(s *discordgo.Session, m *discordgo.MessageCreate, target *discordgo.User) {
	embed := ui.Embed(fmt.Sprintf("🖼️ Аватар %s", target.Username), "", ui.ColorInfo)
	embed.Image = &discordgo.MessageEmbedImage{URL: target.AvatarURL("1024")}
	ui.Send(s, m.ChannelID, embed)
}

// HandlePoll — !poll <вопрос> | <вариант1> | <вариант2> ...
// Голосование реакциями под сообщением опроса.
func (h *Handler) HandlePoll(s *discordgo.Session, m *discordgo.MessageCreate, raw string) {
	parts := strings.Split(raw, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 || parts[0] == "" {
		ui.SendText(s, m.ChannelID,
			"Формат: !poll <вопрос> | <вариант 1> | <вариант 2> (до 10 вариантов)")
		return
	}

	question, options := parts[0], parts[1:]
	if len(options) > MaxPollOptions {
		ui.SendText(s, m.ChannelID,
			fmt.Sprintf("❌ Слишком много вариантов, максимум %d.", MaxPollOptions))
		return
	}

	var sb strings.Builder
	for i, opt := range options {
		sb.WriteString(fmt.Sprintf("%s %s\n", pollEmojis[i], opt))
	}

	embed := ui.Embed("📊 "+question, sb.String(), ui.ColorInfo,
		ui.Field{Name: "Как голосовать", Value: "Нажмите реакцию с номером варианта"})

	msg, err := s.ChannelMessageSendEmbed(m.ChannelID, embed)
	if err != nil {
		log.WithError(err).Error("Сообщение опроса не отправлено")
		return
	}

	for i := range options {
		if err := s.MessageReactionAdd(m.ChannelID, msg.ID, pollEmojis[i]); err != nil {
			log.WithError(err).Warn("Реакция опроса не поставлена")
		}
	}

	h.service.SetPoll(m.ChannelID, Poll{
		MessageID: msg.ID,
		Question:  question,
		Options:   options,
		CreatedAt: time.Now(),
	})
}

// HandlePollResults — !pollresults: итоги последнего опроса канала.
// Голоса читаются из реакций под сообщением опроса.
func (h *Handler) HandlePollResults(s *discordgo.Session, m *discordgo.MessageCreate) {
	p, ok := h.service.GetPoll(m.ChannelID)
	if !ok {
		ui.SendText(s, m.ChannelID, "В этом канале ещё не было опросов.")
		return
	}

	msg, err := s.ChannelMessage(m.ChannelID, p.MessageID)
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ Сообщение опроса не найдено (возможно, удалено).")
		return
	}

	counts := make([]int, len(p.Options))
	for _, r := range msg.Reactions {
		for i := range p.Options {
			if r.Emoji.Name == pollEmojis[i] {
				// Минус собственная реакция бота
				counts[i] = r.Count - 1
			}
		}
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	var sb strings.Builder
	for i, opt := range p.Options {
		sb.WriteString(fmt.Sprintf("%s **%s** — %d\n", pollEmojis[i], opt, counts[i]))
	}
	sb.WriteString(fmt.Sprintf("\nВсего голосов: **%d**", total))

	ui.Send(s, m.ChannelID, ui.Embed("📊 Итоги: "+p.Question, sb.String(), ui.ColorInfo))
}

// HandlePing — !ping: задержка до шлюза Discord.
func (h *Handler) HandlePing(s *discordgo.Session, m *discordgo.MessageCreate) {
	latency := s.HeartbeatLatency().Round(time.Millisecond)
	ui.Send(s, m.ChannelID, ui.Embed("🏓 Понг!",
		fmt.Sprintf("Задержка: **%s**", latency), ui.ColorJoin))
}

// HandleUptime — !uptime.
func (h *Handler) HandleUptime(s *discordgo.Session, m *discordgo.MessageCreate) {
	ui.Send(s, m.ChannelID, ui.Embed("⏱️ Аптайм",
		fmt.Sprintf("Бот работает: **%s**", common.FormatDuration(h.service.Uptime())), ui.ColorInfo))
}

// Package ui — конструкторы embed-сообщений Discord.
// Ядро отдаёт данные (новый уровень, суммы), отрисовка живёт здесь.
package ui

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Цвета embed-сообщений.
const (
	ColorJoin    = 0x00ff00
	ColorLeave   = 0xff0000
	ColorLevelUp = 0xffff00
	ColorInfo    = 0x0099ff
	ColorGold    = 0xffd700
	ColorError   = 0xff0000
	ColorGray    = 0x808080
)

// Field — пара название/значение для embed.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Embed собирает embed с заголовком, описанием и полями.
func Embed(title, description string, color int, fields ...Field) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	for _, f := range fields {
		value := f.Value
		if value == "" {
			value = "​" // Discord не принимает пустые значения полей
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  value,
			Inline: f.Inline,
		})
	}
	return e
}

// Send отправляет embed в канал, ошибки только логируются.
func Send(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) {
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("Ошибка отправки embed")
	}
}

// SendText отправляет обычное текстовое сообщение.
func SendText(s *discordgo.Session, channelID, text string) {
	if _, err := s.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("Ошибка отправки сообщения")
	}
}

// LevelUpEmbed — уведомление о новом уровне.
// Ядро поставляет payload (уровень, суммарный опыт), рендер — здесь.
func LevelUpEmbed(mention string, newLevel, totalXP int) *discordgo.MessageEmbed {
	return Embed(
		"🎉 Новый уровень!",
		fmt.Sprintf("%s достиг уровня **%d**!", mention, newLevel),
		ColorLevelUp,
		Field{Name: "Уровень", Value: fmt.Sprintf("%d", newLevel), Inline: true},
		Field{Name: "Всего опыта", Value: fmt.Sprintf("%d XP", totalXP), Inline: true},
	)
}

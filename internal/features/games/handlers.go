// Package games — handlers.go: команды мини-игр.
package games

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"levelbot/internal/bot/ui"
)

// Handler обрабатывает команды мини-игр.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик мини-игр.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleRoll — !roll [NdM]: бросок костей.
func (h *Handler) HandleRoll(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	spec := ""
	if len(args) > 0 {
		spec = args[0]
	}

	dice, sides, ok := ParseDice(spec)
	if !ok {
		ui.SendText(s, m.ChannelID,
			fmt.Sprintf("❌ Формат: !roll NdM (до %d костей, от 2 до %d граней). Например: !roll 2d6", MaxDice, MaxSides))
		return
	}

	res := h.service.Roll(dice, sides)
	rolls := make([]string, len(res.Rolls))
	for i, r := range res.Rolls {
		rolls[i] = strconv.Itoa(r)
	}

	desc := fmt.Sprintf("🎲 Выпало: **%s**", strings.Join(rolls, ", "))
	if dice > 1 {
		desc += fmt.Sprintf("\nСумма: **%d**", res.Total)
	}
	ui.Send(s, m.ChannelID, ui.Embed(fmt.Sprintf("Бросок %dd%d", dice, sides), desc, ui.ColorInfo))
}

// HandleFlip — !flip: подбросить монетку.
func (h *Handler) HandleFlip(s *discordgo.Session, m *discordgo.MessageCreate) {
	side := "решка"
	if h.service.Flip() {
		side = "орёл"
	}
	ui.Send(s, m.ChannelID, ui.Embed("🪙 Монетка", fmt.Sprintf("Выпало: **%s**!", side), ui.ColorGold))
}

// HandleEightBall — !8ball <вопрос>.
func (h *Handler) HandleEightBall(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		ui.SendText(s, m.ChannelID, "🎱 Задайте вопрос: !8ball <вопрос>")
		return
	}

	embed := ui.Embed("🎱 Шар предсказаний", "",
		ui.ColorInfo,
		ui.Field{Name: "Вопрос", Value: strings.Join(args, " ")},
		ui.Field{Name: "Ответ", Value: h.service.EightBall()},
	)
	ui.Send(s, m.ChannelID, embed)
}

// HandleRandom — !random [min] [max]: случайное число, по умолчанию 1–100.
func (h *Handler) HandleRandom(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	min, max := 1, 100
	var err error
	if len(args) >= 2 {
		if min, err = strconv.Atoi(args[0]); err == nil {
			max, err = strconv.Atoi(args[1])
		}
	} else if len(args) == 1 {
		max, err = strconv.Atoi(args[0])
	}
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ Формат: !random [мин] [макс]")
		return
	}

	n := h.service.Random(min, max)
	ui.Send(s, m.ChannelID, ui.Embed("🔢 Случайное число",
		fmt.Sprintf("Выпало: **%d**", n), ui.ColorInfo))
}

// HandlePick — !pick <вариант1> <вариант2> ...: выбор из вариантов.
func (h *Handler) HandlePick(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	choice, ok := h.service.Pick(args)
	if !ok {
		ui.SendText(s, m.ChannelID, "❌ Укажите хотя бы два варианта: !pick кофе чай")
		return
	}
	ui.Send(s, m.ChannelID, ui.Embed("🤔 Мой выбор",
		fmt.Sprintf("Я выбираю: **%s**", choice), ui.ColorInfo))
}

// HandleJoke — !joke.
func (h *Handler) HandleJoke(s *discordgo.Session, m *discordgo.MessageCreate) {
	ui.Send(s, m.ChannelID, ui.Embed("😄 Шутка", h.service.Joke(), ui.ColorJoin))
}

// HandleFortune — !fortune.
func (h *Handler) HandleFortune(s *discordgo.Session, m *discordgo.MessageCreate) {
	ui.Send(s, m.ChannelID, ui.Embed("🔮 Предсказание", h.service.Fortune(), ui.ColorInfo))
}

// HandleRPS — !rps <камень|ножницы|бумага>.
func (h *Handler) HandleRPS(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		ui.SendText(s, m.ChannelID, "Формат: !rps <камень|ножницы|бумага>")
		return
	}
	move, ok := ParseMove(args[0])
	if !ok {
		ui.SendText(s, m.ChannelID, "❌ Допустимые ходы: камень, ножницы, бумага.")
		return
	}

	res := h.service.RPS(move)
	var text string
	color := ui.ColorGray
	switch res.Outcome {
	case 1:
		text = "Вы победили! 🎉"
		color = ui.ColorJoin
	case -1:
		text = "Я победил! 😎"
		color = ui.ColorError
	default:
		text = "Ничья!"
	}

	embed := ui.Embed("✊ Камень-ножницы-бумага", text, color,
		ui.Field{Name: "Ваш ход", Value: res.PlayerMove, Inline: true},
		ui.Field{Name: "Мой ход", Value: res.BotMove, Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

// Package economy — handlers.go: команды экономики.
// Разбор аргументов, маппинг ошибок сервиса на понятные сообщения
// и отрисовка embed-ответов.
package economy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"levelbot/internal/bot/ui"
	"levelbot/internal/common"
)

// Handler обрабатывает команды экономики.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик команд экономики.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleBalance — !balance [@user].
func (h *Handler) HandleBalance(s *discordgo.Session, m *discordgo.MessageCreate, targetID, targetName string) {
	a := h.service.Get(targetID)

	embed := ui.Embed(
		"🪙 Баланс",
		fmt.Sprintf("Счёт **%s**", targetName),
		ui.ColorGold,
		ui.Field{Name: "Баланс", Value: common.FormatCoins(a.Balance), Inline: true},
		ui.Field{Name: "Предметов", Value: strconv.Itoa(len(a.Inventory)), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

// HandleDaily — !daily: ежедневная награда.
func (h *Handler) HandleDaily(s *discordgo.Session, m *discordgo.MessageCreate) {
	res, err := h.service.Daily(m.Author.ID)
	if errors.Is(err, common.ErrDailyCooldown) {
		hours := int(res.Remaining.Hours())
		minutes := int(res.Remaining.Minutes()) % 60
		ui.SendText(s, m.ChannelID,
			fmt.Sprintf("❌ Ежедневная награда будет доступна через %dч %dм!", hours, minutes))
		return
	}
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	embed := ui.Embed(
		"🎁 Ежедневная награда!",
		fmt.Sprintf("Вы получили 🪙 **%d**!", res.Reward),
		ui.ColorJoin,
		ui.Field{Name: "Новый баланс", Value: common.FormatCoins(res.NewBalance), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

// HandleWork — !work: заработок, до 5 раз в день.
func (h *Handler) HandleWork(s *discordgo.Session, m *discordgo.MessageCreate) {
	res, err := h.service.Work(m.Author.ID)
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	embed := ui.Embed(
		"💼 Работа выполнена!",
		fmt.Sprintf("Вы заработали 🪙 **%d**! (%d/5 сегодня)", res.Reward, res.UsedToday),
		ui.ColorJoin,
		ui.Field{Name: "Новый баланс", Value: common.FormatCoins(res.NewBalance), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

// HandleGamble — !gamble <сумма>: ставка 50/50.
func (h *Handler) HandleGamble(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		ui.SendText(s, m.ChannelID, "Формат: !gamble <сумма>")
		return
	}
	amount, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ Укажите корректную сумму ставки.")
		return
	}

	res, err := h.service.Gamble(m.Author.ID, amount)
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	var text string
	color := ui.ColorJoin
	if res.Won {
		text = fmt.Sprintf("Вы выиграли 🪙 **%d**! (%d/5 сегодня)", res.Amount, res.UsedToday)
	} else {
		text = fmt.Sprintf("Вы проиграли 🪙 **%d**. Повезёт в следующий раз! (%d/5 сегодня)", res.Amount, res.UsedToday)
		color = ui.ColorError
	}

	embed := ui.Embed("🎲 Результат ставки", text, color,
		ui.Field{Name: "Новый баланс", Value: common.FormatCoins(res.NewBalance), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

// HandleShop — !shop: каталог товаров.
func (h *Handler) HandleShop(s *discordgo.Session, m *discordgo.MessageCreate) {
	fields := make([]ui.Field, 0, len(ShopCatalog)+1)
	for _, item := range ShopCatalog {
		fields = append(fields, ui.Field{
			Name:  fmt.Sprintf("%s — 🪙 %d", item.Name, item.Price),
			Value: item.Description,
		})
	}
	fields = append(fields, ui.Field{
		Name:  "Как купить",
		Value: "`!buy <название>` — покупка, `!use <название>` — использование",
	})

	ui.Send(s, m.ChannelID, ui.Embed("🛒 Магазин", "Тратьте монеты с умом!", ui.ColorJoin, fields...))
}

// HandleBuy — !buy <товар>.
func (h *Handler) HandleBuy(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		ui.SendText(s, m.ChannelID, "Формат: !buy <название товара>")
		return
	}
	query := strings.Join(args, " ")

	item, balance, err := h.service.Buy(m.Author.ID, query)
	if errors.Is(err, common.ErrItemNotFound) {
		ui.SendText(s, m.ChannelID, "❌ Товар не найден! Каталог: `!shop`")
		return
	}
	if errors.Is(err, common.ErrInsufficientBalance) {
		ui.SendText(s, m.ChannelID, fmt.Sprintf("❌ Не хватает монет! Нужно 🪙 %d", item.Price))
		return
	}
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	embed := ui.Embed(
		"🛒 Покупка совершена!",
		fmt.Sprintf("Вы купили **%s** за 🪙 %d!", item.Name, item.Price),
		ui.ColorJoin,
		ui.Field{Name: "Новый баланс", Value: common.FormatCoins(balance), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

// HandleInventory — !inventory [@user]: предметы и активные эффекты.
func (h *Handler) HandleInventory(s *discordgo.Session, m *discordgo.MessageCreate, targetID, targetName string) {
	a := h.service.Get(targetID)

	if len(a.Inventory) == 0 && !a.VIPBadge {
		ui.Send(s, m.ChannelID, ui.Embed("📦 Инвентарь",
			fmt.Sprintf("Инвентарь **%s** пуст!", targetName), ui.ColorGray))
		return
	}

	fields := []ui.Field{}

	// Активные эффекты
	effects := h.service.ActiveEffects(targetID)
	var lines []string
	if effects.XPBoostLeft > 0 {
		lines = append(lines, "⚡ **XP-буст**: ещё "+common.FormatDuration(effects.XPBoostLeft))
	}
	if effects.LuckyCharmLeft > 0 {
		lines = append(lines, "🍀 **Талисман удачи**: ещё "+common.FormatDuration(effects.LuckyCharmLeft))
	}
	if effects.VIP {
		lines = append(lines, "👑 **VIP-значок**: навсегда")
	}
	if len(lines) > 0 {
		fields = append(fields, ui.Field{Name: "Активные эффекты", Value: strings.Join(lines, "\n")})
	}

	// Предметы с количеством
	counts := map[string]int{}
	for _, id := range a.Inventory {
		counts[id]++
	}
	for _, item := range ShopCatalog {
		if n := counts[item.ID]; n > 0 {
			fields = append(fields, ui.Field{Name: fmt.Sprintf("%s ×%d", item.Name, n), Inline: true})
		}
	}

	ui.Send(s, m.ChannelID, ui.Embed("📦 Инвентарь",
		fmt.Sprintf("Предметы **%s**:", targetName), ui.ColorJoin, fields...))
}

// HandleUse — !use <предмет>.
func (h *Handler) HandleUse(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		ui.SendText(s, m.ChannelID, "Формат: !use <название предмета>")
		return
	}
	query := strings.Join(args, " ")

	res, err := h.service.UseItem(m.Author.ID, query)
	if errors.Is(err, common.ErrItemNotFound) || errors.Is(err, common.ErrItemNotOwned) {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	var embed *discordgo.MessageEmbed
	switch res.Effect {
	case EffectCoins:
		embed = ui.Embed("🎁 Коробка открыта!",
			fmt.Sprintf("Внутри оказалось 🪙 **%d**!", res.CoinsGained), ui.ColorJoin)
	case EffectXP:
		embed = ui.Embed("🎁 Коробка открыта!",
			fmt.Sprintf("Внутри оказалось ⭐ **%d XP**!", res.XPGained), ui.ColorJoin)
	case EffectXPBoost:
		embed = ui.Embed("⚡ XP-буст активирован!", "Двойной опыт в течение часа!", ui.ColorJoin)
	case EffectLuckyCharm:
		embed = ui.Embed("🍀 Талисман удачи активирован!", "Удача с вами на один час!", ui.ColorJoin)
	case EffectVIP:
		embed = ui.Embed("👑 VIP-значок активирован!", "Теперь вы VIP!", ui.ColorGold)
	case EffectVIPAgain:
		embed = ui.Embed("👑 VIP-значок", "У вас уже есть VIP-значок!", ui.ColorGold)
	case EffectRoleColor:
		embed = ui.Embed("🎨 Цвет роли", "Обратитесь к администратору, чтобы получить свой цвет.", ui.ColorInfo)
	default:
		embed = ui.Embed("❓ Неизвестный предмет", "Этот предмет нельзя использовать.", ui.ColorError)
	}
	ui.Send(s, m.ChannelID, embed)

	// Левел-ап от опыта из коробки
	if res.Effect == EffectXP && res.Grant.LeveledUp {
		ui.Send(s, m.ChannelID, ui.LevelUpEmbed(m.Author.Mention(), res.Grant.NewLevel, res.Grant.TotalXP))
	}
}

// HandleTransfer — !transfer <@user> <сумма>.
func (h *Handler) HandleTransfer(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(m.Mentions) == 0 || len(args) < 2 {
		ui.SendText(s, m.ChannelID, "Формат: !transfer <@пользователь> <сумма>")
		return
	}
	target := m.Mentions[0]
	if target.Bot {
		ui.SendText(s, m.ChannelID, "❌ Нельзя переводить монеты ботам!")
		return
	}

	amount, err := strconv.ParseInt(args[len(args)-1], 10, 64)
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ Укажите корректную сумму.")
		return
	}

	fromBalance, toBalance, err := h.service.Transfer(m.Author.ID, target.ID, amount)
	if err != nil {
		ui.SendText(s, m.ChannelID, "❌ "+err.Error())
		return
	}

	embed := ui.Embed(
		"💸 Перевод выполнен!",
		fmt.Sprintf("Вы перевели 🪙 **%d** пользователю **%s**!", amount, target.Username),
		ui.ColorJoin,
		ui.Field{Name: "Ваш баланс", Value: common.FormatCoins(fromBalance), Inline: true},
		ui.Field{Name: "Баланс получателя", Value: common.FormatCoins(toBalance), Inline: true},
	)
	ui.Send(s, m.ChannelID, embed)
}

// HandleRichest — !richest: таблица богатейших.
func (h *Handler) HandleRichest(s *discordgo.Session, m *discordgo.MessageCreate) {
	top := h.service.Richest(10)
	if len(top) == 0 {
		ui.SendText(s, m.ChannelID, "Экономика пока пуста!")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var sb strings.Builder
	for i, entry := range top {
		medal := "🏅"
		if i < len(medals) {
			medal = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s **%d.** <@%s> • 🪙 %d\n", medal, i+1, entry.UserID, entry.Balance))
	}

	ui.Send(s, m.ChannelID, ui.Embed("🏆 Богатейшие", sb.String(), ui.ColorGold))
}

package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"levelbot/internal/bot/ui"
	"levelbot/internal/common"
	"levelbot/internal/features/leveling"
)

// routeCommand направляет команду в обработчик фичи.
// Отключённые фичи отвечают как неизвестная команда (молчанием).
func (b *Bot) routeCommand(s *discordgo.Session, m *discordgo.MessageCreate, cmd Command) {
	t := target(m)

	switch cmd.Name {
	// --- Прокачка ---
	case "level", "rank":
		b.levelingHandler.HandleLevel(s, m, t.ID, t.Username)
	case "top", "leaderboard":
		b.levelingHandler.HandleTop(s, m)
	case "voicetime":
		b.levelingHandler.HandleVoiceTime(s, m, t.ID, t.Username)
	case "profile":
		b.handleProfile(s, m, t)

	// --- Экономика ---
	case "balance", "bal":
		if b.economyEnabled() {
			b.economyHandler.HandleBalance(s, m, t.ID, t.Username)
		}
	case "daily":
		if b.economyEnabled() {
			b.economyHandler.HandleDaily(s, m)
		}
	case "work":
		if b.economyEnabled() {
			b.economyHandler.HandleWork(s, m)
		}
	case "gamble":
		if b.economyEnabled() {
			b.economyHandler.HandleGamble(s, m, cmd.Args)
		}
	case "shop":
		if b.economyEnabled() {
			b.economyHandler.HandleShop(s, m)
		}
	case "buy":
		if b.economyEnabled() {
			b.economyHandler.HandleBuy(s, m, cmd.Args)
		}
	case "inventory", "inv":
		if b.economyEnabled() {
			b.economyHandler.HandleInventory(s, m, t.ID, t.Username)
		}
	case "use":
		if b.economyEnabled() {
			b.economyHandler.HandleUse(s, m, cmd.Args)
		}
	case "transfer", "pay":
		if b.economyEnabled() {
			b.economyHandler.HandleTransfer(s, m, cmd.Args)
		}
	case "richest":
		if b.economyEnabled() {
			b.economyHandler.HandleRichest(s, m)
		}

	// --- Мини-игры ---
	case "roll", "dice":
		if b.gamesEnabled() {
			b.gamesHandler.HandleRoll(s, m, cmd.Args)
		}
	case "flip", "coin":
		if b.gamesEnabled() {
			b.gamesHandler.HandleFlip(s, m)
		}
	case "8ball":
		if b.gamesEnabled() {
			b.gamesHandler.HandleEightBall(s, m, cmd.Args)
		}
	case "random":
		if b.gamesEnabled() {
			b.gamesHandler.HandleRandom(s, m, cmd.Args)
		}
	case "pick", "choose":
		if b.gamesEnabled() {
			b.gamesHandler.HandlePick(s, m, cmd.Args)
		}
	case "joke":
		if b.gamesEnabled() {
			b.gamesHandler.HandleJoke(s, m)
		}
	case "fortune":
		if b.gamesEnabled() {
			b.gamesHandler.HandleFortune(s, m)
		}
	case "rps":
		if b.gamesEnabled() {
			b.gamesHandler.HandleRPS(s, m, cmd.Args)
		}

	// --- Викторина ---
	case "trivia":
		if b.triviaEnabled() {
			b.triviaHandler.HandleTrivia(s, m)
		}
	case "triviascores":
		if b.triviaEnabled() {
			b.triviaHandler.HandleScores(s, m)
		}
	case "triviareset":
		if b.triviaEnabled() && b.requireAdmin(s, m) {
			b.triviaHandler.HandleReset(s, m)
		}

	// --- Розыгрыши ---
	case "giveaway":
		if b.giveawayEnabled() && b.requireAdmin(s, m) {
			b.giveawayHandler.HandleGiveaway(s, m, cmd.Args)
		}
	case "giveawaylist":
		if b.giveawayEnabled() {
			b.giveawayHandler.HandleList(s, m)
		}
	case "giveawayreroll":
		if b.giveawayEnabled() && b.requireAdmin(s, m) {
			b.giveawayHandler.HandleReroll(s, m, cmd.Args)
		}

	// --- Сервисные ---
	case "serverinfo":
		b.utilityHandler.HandleServerInfo(s, m)
	case "userinfo":
		b.utilityHandler.HandleUserInfo(s, m, t)
	case "avatar":
		b.utilityHandler.HandleAvatar(s, m, t)
	case "poll":
		b.utilityHandler.HandlePoll(s, m, cmd.Raw)
	case "pollresults":
		b.utilityHandler.HandlePollResults(s, m)
	case "ping":
		b.utilityHandler.HandlePing(s, m)
	case "uptime":
		b.utilityHandler.HandleUptime(s, m)
	case "help", "commands":
		b.handleHelp(s, m)

	// --- Администрирование ---
	case "setlevel":
		if b.requireAdmin(s, m) {
			b.adminHandler.HandleSetLevel(s, m, cmd.Args)
		}
	case "addxp":
		if b.requireAdmin(s, m) {
			b.adminHandler.HandleAddXP(s, m, cmd.Args)
		}
	case "resetuser":
		if b.requireAdmin(s, m) {
			b.adminHandler.HandleResetUser(s, m)
		}
	case "resetall":
		if b.requireAdmin(s, m) {
			b.adminHandler.HandleResetAll(s, m)
		}
	case "reseteconomy":
		if b.economyEnabled() && b.requireAdmin(s, m) {
			b.adminHandler.HandleResetEconomy(s, m)
		}
	case "confirm":
		if b.requireAdmin(s, m) {
			b.adminHandler.HandleConfirm(s, m, cmd.Args)
		}
	}
	// Неизвестные команды игнорируются молча
}

func (b *Bot) economyEnabled() bool {
	return b.cfg.FeatureEconomyEnabled && b.economyHandler != nil
}

func (b *Bot) gamesEnabled() bool {
	return b.cfg.FeatureGamesEnabled && b.gamesHandler != nil
}

func (b *Bot) triviaEnabled() bool {
	return b.cfg.FeatureTriviaEnabled && b.triviaHandler != nil
}

func (b *Bot) giveawayEnabled() bool {
	return b.cfg.FeatureGiveawayEnabled && b.giveawayHandler != nil
}

// requireAdmin проверяет права администратора и отвечает отказом.
func (b *Bot) requireAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if b.isAdmin(s, m) {
		return true
	}
	ui.SendText(s, m.ChannelID, "❌ Эта команда доступна только администраторам!")
	return false
}

// handleProfile — !profile: сводная карточка прокачки и экономики.
func (b *Bot) handleProfile(s *discordgo.Session, m *discordgo.MessageCreate, t *discordgo.User) {
	u := b.levelingService.Get(t.ID)
	current, _ := leveling.LevelProgress(u.XP, u.Level)

	fields := []ui.Field{
		{Name: "Уровень", Value: fmt.Sprintf("%d", u.Level), Inline: true},
		{Name: "Опыт", Value: fmt.Sprintf("%d XP", u.XP), Inline: true},
		{Name: "Сообщений", Value: fmt.Sprintf("%d", u.MessagesSent), Inline: true},
		{Name: "Прогресс", Value: common.ProgressBar(current, leveling.LevelXPUnit, 10)},
		{Name: "Голосовое время", Value: common.FormatVoiceMinutes(u.TotalVoiceTime), Inline: true},
	}

	if b.economyService != nil && b.cfg.FeatureEconomyEnabled {
		a := b.economyService.Get(t.ID)
		fields = append(fields,
			ui.Field{Name: "Баланс", Value: common.FormatCoins(a.Balance), Inline: true},
		)
		if effects := b.economyService.ActiveEffects(t.ID); effects.VIP {
			fields = append(fields, ui.Field{Name: "Статус", Value: "👑 VIP", Inline: true})
		}
	}

	embed := ui.Embed(fmt.Sprintf("👤 Профиль %s", t.Username), "", ui.ColorInfo, fields...)
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: t.AvatarURL("256")}
	ui.Send(s, m.ChannelID, embed)
}

// handleHelp — !help: список команд по разделам.
func (b *Bot) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	fields := []ui.Field{
		{Name: "📊 Прокачка", Value: "`!level` `!top` `!voicetime` `!profile`"},
	}
	if b.economyEnabled() {
		fields = append(fields, ui.Field{
			Name:  "🪙 Экономика",
			Value: "`!balance` `!daily` `!work` `!gamble` `!shop` `!buy` `!inventory` `!use` `!transfer` `!richest`",
		})
	}
	if b.gamesEnabled() {
		fields = append(fields, ui.Field{
			Name:  "🎮 Игры",
			Value: "`!roll` `!flip` `!8ball` `!random` `!pick` `!joke` `!fortune` `!rps`",
		})
	}
	if b.triviaEnabled() {
		fields = append(fields, ui.Field{Name: "🧠 Викторина", Value: "`!trivia` `!triviascores`"})
	}
	if b.giveawayEnabled() {
		fields = append(fields, ui.Field{Name: "🎉 Розыгрыши", Value: "`!giveaway` `!giveawaylist`"})
	}
	fields = append(fields,
		ui.Field{Name: "🛠️ Сервисные", Value: "`!serverinfo` `!userinfo` `!avatar` `!poll` `!pollresults` `!ping` `!uptime`"},
		ui.Field{Name: "⚙️ Администрирование", Value: "`!setlevel` `!addxp` `!resetuser` `!resetall` `!reseteconomy` `!confirm`"},
	)

	ui.Send(s, m.ChannelID, ui.Embed("📖 Команды бота", "Префикс команд: `!`", ui.ColorInfo, fields...))
}

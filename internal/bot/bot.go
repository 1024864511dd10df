// Package bot содержит главный модуль бота — инициализацию, запуск и остановку.
// bot.go создаёт сессию Discord, подключает обработчики событий и
// маршрутизирует команды по фичам.
package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"levelbot/internal/bot/middleware"
	"levelbot/internal/bot/ui"
	"levelbot/internal/common"
	"levelbot/internal/config"
	"levelbot/internal/features/admin"
	"levelbot/internal/features/economy"
	"levelbot/internal/features/games"
	"levelbot/internal/features/giveaway"
	"levelbot/internal/features/leveling"
	"levelbot/internal/features/trivia"
	"levelbot/internal/features/utility"
	"levelbot/internal/features/voice"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	session *discordgo.Session
	cfg     *config.Config

	rateLimiter *middleware.RateLimiter
	parser      *CommandParser

	levelingService *leveling.Service
	voiceTracker    *voice.Tracker
	economyService  *economy.Service // nil при отключённой экономике
	adminService    *admin.Service

	levelingHandler *leveling.Handler
	economyHandler  *economy.Handler
	gamesHandler    *games.Handler
	triviaHandler   *trivia.Handler
	giveawayHandler *giveaway.Handler
	utilityHandler  *utility.Handler
	adminHandler    *admin.Handler
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	session *discordgo.Session,
	cfg *config.Config,
	levelingService *leveling.Service,
	levelingHandler *leveling.Handler,
	voiceTracker *voice.Tracker,
	economyService *economy.Service,
	economyHandler *economy.Handler,
	gamesHandler *games.Handler,
	triviaHandler *trivia.Handler,
	giveawayHandler *giveaway.Handler,
	utilityHandler *utility.Handler,
	adminService *admin.Service,
	adminHandler *admin.Handler,
) *Bot {
	return &Bot{
		session: session,
		cfg:     cfg,
		rateLimiter: middleware.NewRateLimiter(
			cfg.RateLimitRequests,
			time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
		),
		parser:          NewCommandParser(),
		levelingService: levelingService,
		voiceTracker:    voiceTracker,
		economyService:  economyService,
		adminService:    adminService,
		levelingHandler: levelingHandler,
		economyHandler:  economyHandler,
		gamesHandler:    gamesHandler,
		triviaHandler:   triviaHandler,
		giveawayHandler: giveawayHandler,
		utilityHandler:  utilityHandler,
		adminHandler:    adminHandler,
	}
}

// Start подключает обработчики и открывает соединение со шлюзом Discord.
func (b *Bot) Start() error {
	b.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent

	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onVoiceStateUpdate)
	b.session.AddHandler(b.onMemberAdd)
	b.session.AddHandler(b.onMemberRemove)
	if b.giveawayHandler != nil {
		b.session.AddHandler(b.giveawayHandler.OnReactionAdd)
		b.session.AddHandler(b.giveawayHandler.OnReactionRemove)
	}

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("подключение к Discord: %w", err)
	}
	return nil
}

// Stop закрывает соединение и останавливает фоновые горутины.
func (b *Bot) Stop() {
	b.rateLimiter.Close()
	if err := b.session.Close(); err != nil {
		log.WithError(err).Error("Ошибка закрытия сессии Discord")
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"username": r.User.Username,
		"guilds":   len(r.Guilds),
	}).Info("Бот подключён и ожидает сообщения...")
}

// onMessageCreate — главный обработчик сообщений: команды, ответы
// викторины и начисление опыта за обычные сообщения.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer middleware.RecoverFromPanic()

	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	middleware.LogMessage(m)

	if cmd, ok := b.parser.Parse(m.Content); ok {
		if !b.rateLimiter.Allow(m.Author.ID) {
			log.WithField("user_id", m.Author.ID).Debug("Команда отклонена rate-limiter'ом")
			return
		}
		b.routeCommand(s, m, cmd)
		return
	}

	// Обычное сообщение: сперва проверка ответа викторины
	if b.cfg.FeatureTriviaEnabled && b.triviaHandler != nil {
		b.triviaHandler.OnMessage(s, m)
	}

	b.grantMessageXP(s, m)
}

// grantMessageXP начисляет опыт за сообщение с учётом кулдауна
// и активного XP-буста.
func (b *Bot) grantMessageXP(s *discordgo.Session, m *discordgo.MessageCreate) {
	amount := b.cfg.MessageXP
	if b.economyService != nil {
		amount *= b.economyService.XPMultiplier(m.Author.ID)
	}

	granted, res, err := b.levelingService.HandleMessage(m.Author.ID, amount)
	if err != nil {
		log.WithError(err).WithField("user_id", m.Author.ID).Error("Опыт за сообщение не начислен")
		return
	}
	if granted && res.LeveledUp {
		b.announceLevelUp(s, m.ChannelID, m.Author.Mention(), res)
	}
}

// announceLevelUp шлёт уведомление о новом уровне: в канал уведомлений,
// если он настроен, иначе в канал события.
func (b *Bot) announceLevelUp(s *discordgo.Session, fallbackChannelID, mention string, res leveling.GrantResult) {
	channelID := b.cfg.NotificationChannelID
	if channelID == "" {
		channelID = fallbackChannelID
	}
	if channelID == "" {
		return
	}
	ui.Send(s, channelID, ui.LevelUpEmbed(mention, res.NewLevel, res.TotalXP))
}

// onVoiceStateUpdate классифицирует событие по каналам до/после:
// вход, выход или перемещение между каналами.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	defer middleware.RecoverFromPanic()

	if v.Member != nil && v.Member.User != nil && v.Member.User.Bot {
		return
	}

	before := ""
	if v.BeforeUpdate != nil {
		before = v.BeforeUpdate.ChannelID
	}
	after := v.ChannelID

	switch {
	case before == "" && after != "":
		b.voiceTracker.Join(v.UserID)
		b.notifyVoice(s, fmt.Sprintf("🔊 <@%s> зашёл в голосовой канал", v.UserID), ui.ColorJoin)

	case before != "" && after == "":
		res, ok := b.voiceTracker.Leave(v.UserID)
		if !ok {
			return
		}
		text := fmt.Sprintf("🔇 <@%s> вышел из голосового канала\nВремя в войсе: %s",
			v.UserID, common.FormatDuration(res.Duration))
		if res.XPGained > 0 {
			text += fmt.Sprintf("\nПолучено опыта: **%d XP**", res.XPGained)
		}
		b.notifyVoice(s, text, ui.ColorLeave)
		if res.Grant.LeveledUp {
			b.announceLevelUp(s, b.cfg.NotificationChannelID, fmt.Sprintf("<@%s>", v.UserID), res.Grant)
		}

	case before != "" && after != "" && before != after:
		b.voiceTracker.Move(v.UserID)
	}
}

// onMemberAdd пишет о новом участнике в служебный лог-канал.
func (b *Bot) onMemberAdd(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	if b.cfg.LogChannelID == "" || e.User == nil {
		return
	}
	ui.Send(s, b.cfg.LogChannelID, ui.Embed("📥 Новый участник",
		fmt.Sprintf("%s присоединился к серверу", e.User.Mention()), ui.ColorJoin))
}

// onMemberRemove пишет об ушедшем участнике в служебный лог-канал.
func (b *Bot) onMemberRemove(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
	if b.cfg.LogChannelID == "" || e.User == nil {
		return
	}
	ui.Send(s, b.cfg.LogChannelID, ui.Embed("📤 Участник покинул сервер",
		fmt.Sprintf("**%s** больше не с нами", e.User.Username), ui.ColorLeave))
}

// notifyVoice шлёт событие войса в канал уведомлений, если он настроен.
func (b *Bot) notifyVoice(s *discordgo.Session, text string, color int) {
	if b.cfg.NotificationChannelID == "" {
		return
	}
	ui.Send(s, b.cfg.NotificationChannelID, ui.Embed("Голосовой канал", text, color))
}

// TickVoice — минутный тик планировщика: собирает участников войса
// из кэша гильдий (кроме ботов и AFK-каналов) и начисляет им минуту.
func (b *Bot) TickVoice() {
	defer middleware.RecoverFromPanic()

	var userIDs []string
	for _, g := range b.session.State.Guilds {
		for _, vs := range g.VoiceStates {
			if vs.ChannelID == "" || vs.ChannelID == g.AfkChannelID {
				continue
			}
			if member, err := b.session.State.Member(g.ID, vs.UserID); err == nil &&
				member.User != nil && member.User.Bot {
				continue
			}
			userIDs = append(userIDs, vs.UserID)
		}
	}
	if len(userIDs) == 0 {
		return
	}

	awards := b.voiceTracker.Tick(userIDs)
	for _, a := range awards {
		if a.Grant.LeveledUp {
			b.announceLevelUp(b.session, b.cfg.NotificationChannelID,
				fmt.Sprintf("<@%s>", a.UserID), a.Grant)
		}
	}
}

// TickGiveaways — 10-секундный тик: завершает просроченные розыгрыши.
func (b *Bot) TickGiveaways(service *giveaway.Service) {
	defer middleware.RecoverFromPanic()

	ended := service.EndDue()
	if len(ended) > 0 && b.giveawayHandler != nil {
		b.giveawayHandler.AnnounceEnded(b.session, ended)
	}
}

// isAdmin проверяет у автора сообщения право администратора гильдии.
func (b *Bot) isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.WithError(err).WithField("user_id", m.Author.ID).Warn("Не удалось получить права пользователя")
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

// target возвращает упомянутого пользователя или автора сообщения.
func target(m *discordgo.MessageCreate) *discordgo.User {
	if len(m.Mentions) > 0 {
		return m.Mentions[0]
	}
	return m.Author
}

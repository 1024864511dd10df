// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт хранилища, сервисы, обработчики
// и собирает всё в один объект Bot.
package app

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"levelbot/internal/bot"
	"levelbot/internal/config"
	"levelbot/internal/features/admin"
	"levelbot/internal/features/economy"
	"levelbot/internal/features/games"
	"levelbot/internal/features/giveaway"
	"levelbot/internal/features/leveling"
	"levelbot/internal/features/trivia"
	"levelbot/internal/features/utility"
	"levelbot/internal/features/voice"
	"levelbot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	Session   *discordgo.Session
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(cfg *config.Config) (*App, error) {
	// === 1. Сессия Discord ===
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания сессии Discord: %w", err)
	}

	// === 2. Хранилища ===
	levelingStore := leveling.NewStore(cfg.UserDataFile)
	if err := levelingStore.Load(); err != nil {
		return nil, fmt.Errorf("загрузка данных прокачки: %w", err)
	}
	log.WithField("users", levelingStore.Count()).Info("Данные прокачки загружены")

	var economyStore *economy.Store
	if cfg.FeatureEconomyEnabled {
		economyStore = economy.NewStore(cfg.EconomyDataFile)
		if err := economyStore.Load(); err != nil {
			return nil, fmt.Errorf("загрузка данных экономики: %w", err)
		}
	}

	var triviaScores *trivia.ScoreStore
	if cfg.FeatureTriviaEnabled {
		triviaScores = trivia.NewScoreStore(cfg.TriviaScoreFile)
		if err := triviaScores.Load(); err != nil {
			return nil, fmt.Errorf("загрузка счёта викторины: %w", err)
		}
	}

	// === 3. Сервисы ===
	levelingService := leveling.NewService(levelingStore, cfg)

	var economyService *economy.Service
	if cfg.FeatureEconomyEnabled {
		economyService = economy.NewService(economyStore, cfg, levelingService)
	}

	var boosts voice.BoostSource
	if economyService != nil {
		boosts = economyService
	}
	voiceTracker := voice.NewTracker(levelingService, boosts, cfg)

	var triviaService *trivia.Service
	if cfg.FeatureTriviaEnabled {
		var rewarder trivia.Rewarder
		if economyService != nil {
			rewarder = economyService
		}
		triviaService = trivia.NewService(triviaScores, rewarder, cfg)
	}

	var giveawayService *giveaway.Service
	if cfg.FeatureGiveawayEnabled {
		giveawayService = giveaway.NewService()
	}

	gamesService := games.NewService()
	utilityService := utility.NewService()
	adminService := admin.NewService(levelingService, economyService)

	// === 4. Обработчики ===
	levelingHandler := leveling.NewHandler(levelingService, cfg)

	var economyHandler *economy.Handler
	if economyService != nil {
		economyHandler = economy.NewHandler(economyService)
	}
	var triviaHandler *trivia.Handler
	if triviaService != nil {
		triviaHandler = trivia.NewHandler(triviaService)
	}
	var giveawayHandler *giveaway.Handler
	if giveawayService != nil {
		giveawayHandler = giveaway.NewHandler(giveawayService)
	}
	var gamesHandler *games.Handler
	if cfg.FeatureGamesEnabled {
		gamesHandler = games.NewHandler(gamesService)
	}
	utilityHandler := utility.NewHandler(utilityService)
	adminHandler := admin.NewHandler(adminService, levelingService)

	// === 5. Собираем бота ===
	b := bot.New(
		session, cfg,
		levelingService, levelingHandler,
		voiceTracker,
		economyService, economyHandler,
		gamesHandler,
		triviaHandler,
		giveawayHandler,
		utilityHandler,
		adminService, adminHandler,
	)

	// === 6. Планировщик задач ===
	scheduler := jobs.NewScheduler(b, giveawayService)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		Session:   session,
	}, nil
}

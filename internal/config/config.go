// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Discord ---
	DiscordToken string `envconfig:"DISCORD_TOKEN" required:"true"`
	// Канал для уведомлений (вход/выход из войса, левел-апы). 0 — уведомления отключены.
	NotificationChannelID string `envconfig:"NOTIFICATION_CHANNEL_ID" default:""`
	// Канал для служебных логов (вступления/выходы участников)
	LogChannelID string `envconfig:"LOG_CHANNEL_ID" default:""`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Хранилище ---
	// Два независимых JSON-файла: прокачка и экономика.
	// Полная перезапись после каждой мутации — простота важнее пропускной способности.
	UserDataFile    string `envconfig:"USER_DATA_FILE" default:"user_data.json"`
	EconomyDataFile string `envconfig:"ECONOMY_DATA_FILE" default:"economy_data.json"`
	TriviaScoreFile string `envconfig:"TRIVIA_SCORE_FILE" default:"trivia_scores.json"`

	// --- Прокачка (XP) ---
	MessageXP         int `envconfig:"XP_PER_MESSAGE" default:"2"`
	VoiceXPPerMinute  int `envconfig:"XP_PER_VOICE_MINUTE" default:"3"`
	XPCooldownSeconds int `envconfig:"XP_COOLDOWN_SECONDS" default:"60"`

	// --- Экономика ---
	DailyRewardMin int64 `envconfig:"DAILY_REWARD_MIN" default:"50"`
	DailyRewardMax int64 `envconfig:"DAILY_REWARD_MAX" default:"200"`
	WorkRewardMin  int64 `envconfig:"WORK_REWARD_MIN" default:"20"`
	WorkRewardMax  int64 `envconfig:"WORK_REWARD_MAX" default:"100"`
	// Дневные лимиты использования (работа и ставки)
	DailyUseLimit int `envconfig:"DAILY_USE_LIMIT" default:"5"`

	// --- Викторина ---
	TriviaAnswerSeconds int   `envconfig:"TRIVIA_ANSWER_SECONDS" default:"15"`
	TriviaReward        int64 `envconfig:"TRIVIA_REWARD" default:"10"`

	// --- Rate limiting ---
	RateLimitRequests      int `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindowSeconds int `envconfig:"RATE_LIMIT_WINDOW_SECONDS" default:"10"`

	// --- Feature Flags ---
	FeatureEconomyEnabled  bool `envconfig:"FEATURE_ECONOMY_ENABLED" default:"true"`
	FeatureGamesEnabled    bool `envconfig:"FEATURE_GAMES_ENABLED" default:"true"`
	FeatureTriviaEnabled   bool `envconfig:"FEATURE_TRIVIA_ENABLED" default:"true"`
	FeatureGiveawayEnabled bool `envconfig:"FEATURE_GIVEAWAY_ENABLED" default:"true"`
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.MessageXP < 0 || c.VoiceXPPerMinute < 0 {
		return fmt.Errorf("XP-награды не могут быть отрицательными")
	}
	if c.XPCooldownSeconds < 0 {
		return fmt.Errorf("XP_COOLDOWN_SECONDS не может быть отрицательным")
	}
	if c.DailyRewardMin > c.DailyRewardMax || c.WorkRewardMin > c.WorkRewardMax {
		return fmt.Errorf("минимум награды больше максимума")
	}
	if c.DailyUseLimit <= 0 {
		return fmt.Errorf("DAILY_USE_LIMIT должен быть > 0")
	}
	if c.UserDataFile == "" || c.EconomyDataFile == "" {
		return fmt.Errorf("пути к файлам данных не заданы")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
// Файл .env подхватывается, если есть (для локального запуска).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env не найден, используем переменные окружения")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

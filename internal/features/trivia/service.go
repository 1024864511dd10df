// Package trivia — викторина с наградой монетами.
// В каждом канале одновременно идёт не больше одного раунда; на ответ
// даётся ограниченное окно, первый верный ответ забирает награду.
package trivia

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"levelbot/internal/common"
	"levelbot/internal/config"
)

// Rewarder — начисление награды за верный ответ.
// Реализуется сервисом экономики; nil, если экономика отключена.
type Rewarder interface {
	Credit(userID string, amount int64) (int64, error)
}

// round — активный раунд в одном канале.
type round struct {
	id        int64
	question  Question
	expiresAt time.Time
}

// Service управляет раундами викторины.
type Service struct {
	mu     sync.Mutex
	rounds map[string]*round // ключ — ID канала
	nextID int64

	scores  *ScoreStore
	rewards Rewarder
	cfg     *config.Config

	// Подменяются в тестах
	Now   func() time.Time
	randN func(n int) int
}

// NewService создаёт сервис викторины.
func NewService(scores *ScoreStore, rewards Rewarder, cfg *config.Config) *Service {
	return &Service{
		rounds:  make(map[string]*round),
		scores:  scores,
		rewards: rewards,
		cfg:     cfg,
		Now:     time.Now,
		randN:   rand.Intn,
	}
}

// StartResult — стартовавший раунд.
type StartResult struct {
	RoundID  int64
	Question Question
	Window   time.Duration
}

// Start запускает раунд в канале. Если раунд уже идёт и окно ещё не
// истекло — ErrTriviaActive; просроченный раунд молча вытесняется.
func (s *Service) Start(channelID string) (StartResult, error) {
	now := s.Now()
	window := time.Duration(s.cfg.TriviaAnswerSeconds) * time.Second

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.rounds[channelID]; ok && now.Before(r.expiresAt) {
		return StartResult{}, common.ErrTriviaActive
	}

	s.nextID++
	r := &round{
		id:        s.nextID,
		question:  questions[s.randN(len(questions))],
		expiresAt: now.Add(window),
	}
	s.rounds[channelID] = r

	log.WithFields(log.Fields{"channel_id": channelID, "round": r.id}).Info("Раунд викторины запущен")
	return StartResult{RoundID: r.id, Question: r.question, Window: window}, nil
}

// AnswerResult — итог принятого верного ответа.
type AnswerResult struct {
	Reward     int64
	NewBalance int64
	Score      int
}

// CheckAnswer сверяет сообщение с активным раундом канала.
// Возвращает (res, true) только для первого верного ответа в окне:
// раунд закрывается, очко записывается, награда начисляется.
// Неверные ответы и сообщения вне раунда — (zero, false).
func (s *Service) CheckAnswer(channelID, userID, text string) (AnswerResult, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return AnswerResult{}, false
	}

	s.mu.Lock()
	r, ok := s.rounds[channelID]
	if !ok || s.Now().After(r.expiresAt) {
		s.mu.Unlock()
		return AnswerResult{}, false
	}

	correct := false
	for _, a := range r.question.Answers {
		if normalized == a {
			correct = true
			break
		}
	}
	if !correct {
		s.mu.Unlock()
		return AnswerResult{}, false
	}

	delete(s.rounds, channelID)
	s.mu.Unlock()

	res := AnswerResult{Reward: s.cfg.TriviaReward}

	score, err := s.scores.Increment(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Счёт викторины не сохранён")
	}
	res.Score = score

	if s.rewards != nil {
		balance, err := s.rewards.Credit(userID, s.cfg.TriviaReward)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Награда викторины не начислена")
		} else {
			res.NewBalance = balance
		}
	}

	log.WithFields(log.Fields{"user_id": userID, "channel_id": channelID}).Info("Верный ответ викторины")
	return res, true
}

// Expire закрывает раунд по таймауту и возвращает вопрос для объявления
// ответа. false — раунд уже выигран или вытеснен новым.
func (s *Service) Expire(channelID string, roundID int64) (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rounds[channelID]
	if !ok || r.id != roundID {
		return Question{}, false
	}
	delete(s.rounds, channelID)
	return r.question, true
}

// Top возвращает n лучших игроков викторины.
func (s *Service) Top(n int) []ScoreEntry {
	return s.scores.Top(n)
}

// Reset очищает таблицу счёта (админ-команда).
func (s *Service) Reset() error {
	log.Warn("Сброс таблицы викторины")
	return s.scores.Reset()
}

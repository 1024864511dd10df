// Package games — мини-игры без состояния.
// Броски костей, монетка, шар предсказаний, камень-ножницы-бумага.
// Ничего не пишут на диск, на прокачку и экономику не влияют.
package games

import (
	"math/rand"
	"strconv"
	"strings"
)

// Пределы броска костей.
const (
	MaxDice  = 20
	MaxSides = 1000
)

// Ответы шара предсказаний.
var eightBallAnswers = []string{
	"Бесспорно!",
	"Определённо да.",
	"Можешь быть уверен в этом.",
	"Вероятнее всего.",
	"Хорошие перспективы.",
	"Знаки говорят — да.",
	"Пока не ясно, попробуй снова.",
	"Спроси позже.",
	"Лучше не рассказывать.",
	"Сейчас нельзя предсказать.",
	"Сконцентрируйся и спроси опять.",
	"Даже не думай.",
	"Мой ответ — нет.",
	"По моим данным — нет.",
	"Перспективы не очень хорошие.",
	"Весьма сомнительно.",
}

var jokes = []string{
	"Программист ставит на ночь два стакана: один с водой — если захочет пить, второй пустой — если не захочет.",
	"— Почему программисты путают Хэллоуин и Рождество?\n— Потому что OCT 31 == DEC 25.",
	"В мире есть 10 типов людей: те, кто понимает двоичную систему, и те, кто нет.",
	"Заходит тестировщик в бар. Заказывает кружку пива. Заказывает 0 кружек пива. Заказывает 99999 кружек пива. Заказывает -1 кружку пива. Заказывает ящерицу.",
	"Лучшее в булевых значениях: даже если ты ошибся, ты промахнулся всего на бит.",
	"— Сколько программистов нужно, чтобы вкрутить лампочку?\n— Ни одного, это аппаратная проблема.",
}

var fortunes = []string{
	"Сегодня удача на вашей стороне!",
	"Будьте осторожны с необдуманными решениями.",
	"Вас ждёт приятная неожиданность.",
	"Хороший день, чтобы начать новое дело.",
	"Кто-то думает о вас прямо сейчас.",
	"Терпение принесёт плоды раньше, чем вы думаете.",
	"Не бойтесь просить о помощи — вам не откажут.",
	"Звёзды советуют сегодня отдохнуть.",
}

// Ходы в камень-ножницы-бумага.
const (
	MoveRock     = "камень"
	MoveScissors = "ножницы"
	MovePaper    = "бумага"
)

var rpsMoves = []string{MoveRock, MoveScissors, MovePaper}

// beats[a] — ход, который a побеждает.
var beats = map[string]string{
	MoveRock:     MoveScissors,
	MoveScissors: MovePaper,
	MovePaper:    MoveRock,
}

// Service — генератор результатов мини-игр.
type Service struct {
	// Подменяется в тестах
	randN func(n int) int
}

// NewService создаёт сервис мини-игр.
func NewService() *Service {
	return &Service{randN: rand.Intn}
}

// RollResult — итог броска костей.
type RollResult struct {
	Dice  int
	Sides int
	Rolls []int
	Total int
}

// ParseDice разбирает нотацию NdM ("2d6", "d20", "6").
// Пустая строка — один шестигранник.
func ParseDice(spec string) (dice, sides int, ok bool) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" {
		return 1, 6, true
	}

	if !strings.Contains(spec, "d") {
		// Одно число — количество граней одной кости
		n, err := strconv.Atoi(spec)
		if err != nil {
			return 0, 0, false
		}
		dice, sides = 1, n
	} else {
		parts := strings.SplitN(spec, "d", 2)
		if parts[0] == "" {
			dice = 1
		} else {
			n, err := strconv.Atoi(parts[0])
			if err != nil {
				return 0, 0, false
			}
			dice = n
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, false
		}
		sides = n
	}

	if dice < 1 || dice > MaxDice || sides < 2 || sides > MaxSides {
		return 0, 0, false
	}
	return dice, sides, true
}

// Roll бросает dice костей по sides граней.
func (s *Service) Roll(dice, sides int) RollResult {
	res := RollResult{Dice: dice, Sides: sides, Rolls: make([]int, 0, dice)}
	for i := 0; i < dice; i++ {
		r := s.randN(sides) + 1
		res.Rolls = append(res.Rolls, r)
		res.Total += r
	}
	return res
}

// Flip подбрасывает монетку: true — орёл.
func (s *Service) Flip() bool {
	return s.randN(2) == 0
}

// EightBall возвращает ответ шара предсказаний.
func (s *Service) EightBall() string {
	return eightBallAnswers[s.randN(len(eightBallAnswers))]
}

// Random возвращает случайное число в [min, max] включительно.
// Перевёрнутые границы меняются местами.
func (s *Service) Random(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + s.randN(max-min+1)
}

// Pick выбирает один вариант из списка. false — вариантов меньше двух.
func (s *Service) Pick(options []string) (string, bool) {
	if len(options) < 2 {
		return "", false
	}
	return options[s.randN(len(options))], true
}

// Joke возвращает случайную шутку.
func (s *Service) Joke() string {
	return jokes[s.randN(len(jokes))]
}

// Fortune возвращает случайное предсказание.
func (s *Service) Fortune() string {
	return fortunes[s.randN(len(fortunes))]
}

// RPSResult — итог камня-ножниц-бумаги.
type RPSResult struct {
	PlayerMove string
	BotMove    string
	// 1 — победа игрока, 0 — ничья, -1 — победа бота
	Outcome int
}

// ParseMove нормализует ход игрока, принимает и английские названия.
func ParseMove(input string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case MoveRock, "rock", "к":
		return MoveRock, true
	case MoveScissors, "scissors", "н":
		return MoveScissors, true
	case MovePaper, "paper", "б":
		return MovePaper, true
	}
	return "", false
}

// RPS играет раунд камень-ножницы-бумага против бота.
func (s *Service) RPS(playerMove string) RPSResult {
	bot := rpsMoves[s.randN(len(rpsMoves))]
	res := RPSResult{PlayerMove: playerMove, BotMove: bot}
	switch {
	case playerMove == bot:
		res.Outcome = 0
	case beats[playerMove] == bot:
		res.Outcome = 1
	default:
		res.Outcome = -1
	}
	return res
}

// Package leveling управляет опытом и уровнями участников.
// models.go описывает запись прогресса пользователя — одну на Discord ID.
package leveling

// UserProgress — запись прогресса пользователя в файле user_data.json.
// Все поля присутствуют всегда, дефолты выставляются при создании записи,
// а не проверяются в каждом месте чтения.
type UserProgress struct {
	// XP — накопленный опыт за всё время
	XP int `json:"xp"`
	// Level — уровень, производное от XP: level = xp/200 + 1.
	// Хранится избыточно и пересинхронизируется при каждой мутации XP.
	Level int `json:"level"`
	// VoiceTime — счётчик голосовых минут (накопительный, не сбрасывается)
	VoiceTime int `json:"voice_time"`
	// TotalVoiceTime — голосовые минуты за всё время, монотонно растёт
	TotalVoiceTime int `json:"total_voice_time"`
	// MessagesSent — сколько раз пользователь получил опыт за сообщения
	MessagesSent int `json:"messages_sent"`
	// LastVoiceJoin — начало текущей голосовой сессии (RFC3339) или null.
	// Зеркало на диске для внешней сверки; при рестарте не реплеится.
	LastVoiceJoin *string `json:"last_voice_join"`
	// LastMessageTime — когда последний раз начислен опыт за сообщение.
	// Используется для кулдауна.
	LastMessageTime *string `json:"last_message_time"`
}

// NewUserProgress возвращает запись с нулевыми дефолтами (уровень 1).
func NewUserProgress() *UserProgress {
	return &UserProgress{Level: 1}
}

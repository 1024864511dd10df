// Package leveling — engine.go: чистые функции расчёта уровня.
// Формула линейная (200 опыта на уровень), а не экспоненциальная:
// обработчики событий на каждом начислении синхронно решают,
// пересечён ли порог уровня, поэтому расчёт должен быть дешёвым и монотонным.
package leveling

// LevelXPUnit — сколько опыта нужно на один уровень.
const LevelXPUnit = 200

// XPToLevel возвращает уровень для накопленного опыта.
// XPToLevel(0) == 1, XPToLevel(199) == 1, XPToLevel(200) == 2.
func XPToLevel(xp int) int {
	return xp/LevelXPUnit + 1
}

// LevelProgress возвращает прогресс внутри текущего уровня:
// сколько опыта набрано с начала уровня и сколько осталось до следующего.
// LevelProgress(250, 2) == (50, 150).
func LevelProgress(xp, level int) (current, needed int) {
	current = xp - (level-1)*LevelXPUnit
	needed = level*LevelXPUnit - xp
	return current, needed
}

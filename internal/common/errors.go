// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки экономики (монеты, переводы, магазин)
var (
	// ErrInsufficientBalance — недостаточно монет на счёте
	ErrInsufficientBalance = errors.New("недостаточно монет на счёте")
	// ErrSelfTransfer — попытка перевести монеты самому себе
	ErrSelfTransfer = errors.New("нельзя переводить монеты самому себе")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrDailyCooldown — ежедневная награда ещё недоступна
	ErrDailyCooldown = errors.New("ежедневная награда уже получена")
	// ErrWorkLimit — лимит работы на день исчерпан (5 раз)
	ErrWorkLimit = errors.New("лимит работы на сегодня исчерпан (5 раз в день)")
	// ErrGambleLimit — лимит ставок на день исчерпан (5 раз)
	ErrGambleLimit = errors.New("лимит ставок на сегодня исчерпан (5 раз в день)")
	// ErrItemNotFound — такого товара нет в магазине
	ErrItemNotFound = errors.New("товар не найден в магазине")
	// ErrItemNotOwned — предмета нет в инвентаре
	ErrItemNotOwned = errors.New("этого предмета нет в инвентаре")
)

// Ошибки прокачки
var (
	// ErrInvalidLevel — уровень меньше 1
	ErrInvalidLevel = errors.New("уровень должен быть не меньше 1")
	// ErrInvalidXPAmount — неположительное количество опыта
	ErrInvalidXPAmount = errors.New("количество опыта должно быть положительным")
)

// Ошибки админ-операций
var (
	// ErrNoPendingConfirm — нет ожидающего подтверждения действия
	ErrNoPendingConfirm = errors.New("нет действия, ожидающего подтверждения")
	// ErrConfirmExpired — окно подтверждения (30 секунд) истекло
	ErrConfirmExpired = errors.New("время подтверждения истекло, действие отменено")
	// ErrWrongConfirmToken — токен подтверждения не совпал
	ErrWrongConfirmToken = errors.New("неверный токен подтверждения")
)

// Ошибки розыгрышей и викторин
var (
	// ErrGiveawayNotFound — розыгрыш с таким ID не найден
	ErrGiveawayNotFound = errors.New("розыгрыш не найден")
	// ErrGiveawayDuration — длительность вне допустимого диапазона
	ErrGiveawayDuration = errors.New("длительность розыгрыша: от 30 секунд до 7 дней")
	// ErrTriviaActive — в этом канале уже идёт раунд викторины
	ErrTriviaActive = errors.New("в этом канале уже идёт викторина")
)

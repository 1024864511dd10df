//go:build ignore

// inspect_data.go — утилита для просмотра файлов данных бота.
// Запуск: go run scripts/inspect_data.go user_data.json
//
// Печатает количество записей и десятку лидеров по опыту или балансу.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type record struct {
	XP      int    `json:"xp"`
	Level   int    `json:"level"`
	Balance *int64 `json:"balance"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Использование: go run scripts/inspect_data.go <файл.json>")
		os.Exit(1)
	}

	content, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Ошибка чтения файла: %v\n", err)
		os.Exit(1)
	}

	data := make(map[string]record)
	if err := json.Unmarshal(content, &data); err != nil {
		fmt.Printf("Ошибка разбора JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Записей: %d\n\n", len(data))

	type row struct {
		id string
		record
	}
	rows := make([]row, 0, len(data))
	for id, r := range data {
		rows = append(rows, row{id, r})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Balance != nil && rows[j].Balance != nil {
			return *rows[i].Balance > *rows[j].Balance
		}
		return rows[i].XP > rows[j].XP
	})

	for i, r := range rows {
		if i >= 10 {
			break
		}
		if r.Balance != nil {
			fmt.Printf("%2d. %s — %d монет\n", i+1, r.id, *r.Balance)
		} else {
			fmt.Printf("%2d. %s — уровень %d, %d XP\n", i+1, r.id, r.Level, r.XP)
		}
	}
}

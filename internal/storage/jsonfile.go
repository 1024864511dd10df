// Package storage реализует плоское файловое хранилище в формате JSON.
// Весь снимок данных перезаписывается целиком после каждой мутации:
// это сознательный размен пропускной способности на крэш-устойчивость,
// приемлемый при сотнях-тысячах пользователей.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// LoadJSON читает файл path и декодирует его в v.
//
// Деградация вместо падения:
//   - файла нет — v остаётся нетронутым (пустое состояние), это не ошибка;
//   - файл битый — логируем и тоже стартуем с пустого состояния,
//     потеря данных принята осознанно.
//
// Ошибка возвращается только при нечитаемом диске.
func LoadJSON(path string, v any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithField("file", path).Info("Файл данных не найден, начинаем с пустого состояния")
			return nil
		}
		return fmt.Errorf("чтение %s: %w", path, err)
	}

	if len(content) == 0 {
		return nil
	}

	if err := json.Unmarshal(content, v); err != nil {
		log.WithError(err).WithField("file", path).
			Error("Файл данных повреждён, начинаем с пустого состояния")
		return nil
	}
	return nil
}

// SaveJSON атомарно записывает v в файл path.
// Сначала пишем во временный файл в той же директории, потом rename:
// читатель никогда не увидит наполовину записанный JSON.
func SaveJSON(path string, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("временный файл для %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("запись %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("закрытие %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

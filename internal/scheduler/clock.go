package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeToMinutes переводит "HH:MM" в минуты от полуночи.
// Минуты по умолчанию 0, секунды ("HH:MM:SS" из колонки TIME) игнорируются.
// Нечисловые поля считаются нулём.
func TimeToMinutes(t string) int {
	parts := strings.Split(strings.TrimSpace(t), ":")
	hours, _ := strconv.Atoi(parts[0])
	minutes := 0
	if len(parts) > 1 {
		minutes, _ = strconv.Atoi(parts[1])
	}
	return hours*60 + minutes
}

// MinutesToTime обратное преобразование в "HH:MM" с ведущими нулями
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClock строгий вариант TimeToMinutes для входных данных API.
// Принимает ровно "HH:MM" или "HH:MM:SS", все поля по две цифры.
func ParseClock(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock %q: want HH:MM", t)
	}

	hours, ok := twoDigits(parts[0])
	if !ok || hours > 23 {
		return 0, fmt.Errorf("invalid clock %q: bad hour", t)
	}

	minutes, ok := twoDigits(parts[1])
	if !ok || minutes > 59 {
		return 0, fmt.Errorf("invalid clock %q: bad minute", t)
	}

	if len(parts) == 3 {
		if seconds, ok := twoDigits(parts[2]); !ok || seconds > 59 {
			return 0, fmt.Errorf("invalid clock %q: bad second", t)
		}
	}

	return hours*60 + minutes, nil
}

// twoDigits разбирает поле ровно из двух десятичных цифр без знака
func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

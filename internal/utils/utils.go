// Package utils содержит утилитарные функции, используемые в разных частях приложения
package utils

import (
	"fmt"
	"time"
)

// FormatTime форматирует позицию воспроизведения в формат M:SS.
// Неизвестная (нулевая или отрицательная) длительность отображается как 0:00.
func FormatTime(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// TruncateString обрезает строку до указанной длины в рунах, добавляя "..." если строка длиннее
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Clamp ограничивает значение диапазоном [lo, hi]
func Clamp[T ~int | ~int64 | ~float64](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

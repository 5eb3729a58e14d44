// Package htmltext декодирует HTML-сущности в текстах вопросов.
// Внешний API отдает строки вида "What&#039;s the capital?", декодер
// не зависит от среды отрисовки и пригоден для headless-тестов.
package htmltext

import (
	"html"
)

// Decode заменяет HTML-сущности соответствующими символами
func Decode(s string) string {
	return html.UnescapeString(s)
}

// DecodeAll декодирует каждый элемент списка, возвращая новый слайс
func DecodeAll(items []string) []string {
	if items == nil {
		return nil
	}
	decoded := make([]string, len(items))
	for i, item := range items {
		decoded[i] = Decode(item)
	}
	return decoded
}

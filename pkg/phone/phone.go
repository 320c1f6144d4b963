// Package phone normalizes Brazilian phone numbers to the canonical
// 13-digit form used across the system: 55 + DDD + 9 + number.
package phone

import "strings"

// defaultDDD подставляется, когда номер пришел без кода города
const defaultDDD = "31"

// Normalize приводит телефон к каноническому виду 55XXXXXXXXXXX (13 цифр).
// Принимает номер в любом из привычных форматов ввода:
//   - 13 цифр с префиксом 55 — уже канонический
//   - 12 цифр с префиксом 55 — без девятки, она вставляется
//   - 11 цифр — DDD + 9 + номер, добавляется 55
//   - 10 цифр — DDD + номер без девятки, добавляются 55 и 9
//   - 9 / 8 цифр — только номер, добавляются 55 и DDD по умолчанию
//
// Для пустого входа возвращает пустую строку.
func Normalize(raw string) string {
	digits := onlyDigits(raw)
	if digits == "" {
		return ""
	}

	switch {
	case len(digits) == 13 && strings.HasPrefix(digits, "55"):
		return digits

	case len(digits) == 12 && strings.HasPrefix(digits, "55"):
		ddd := digits[2:4]
		number := digits[4:]
		return "55" + ddd + "9" + number

	case len(digits) == 11:
		return "55" + digits

	case len(digits) == 10:
		ddd := digits[:2]
		number := digits[2:]
		return "55" + ddd + "9" + number

	case len(digits) == 9:
		return "55" + defaultDDD + digits

	case len(digits) == 8:
		return "55" + defaultDDD + "9" + digits

	case len(digits) >= 11 && !strings.HasPrefix(digits, "55"):
		return "55" + digits
	}

	return digits
}

// FormatDisplay форматирует телефон для отображения: +55 (XX) XXXXX-XXXX
func FormatDisplay(raw string) string {
	normalized := Normalize(raw)

	if len(normalized) == 13 && strings.HasPrefix(normalized, "55") {
		return "+55 (" + normalized[2:4] + ") " + normalized[4:9] + "-" + normalized[9:]
	}
	if len(normalized) == 11 {
		return "(" + normalized[:2] + ") " + normalized[2:7] + "-" + normalized[7:]
	}

	// Не получилось распознать - возвращаем как есть
	return raw
}

// Match проверяет, что два номера указывают на один и тот же телефон
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && na == nb
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

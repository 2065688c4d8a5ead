// Package slugify строит уникальные URL-безопасные идентификаторы компаний.
//
// Базовая часть выводится из названия детерминированно: строка приводится
// к нижнему регистру, последовательности не-буквенно-цифровых символов
// сворачиваются в один дефис, ведущие и замыкающие дефисы отбрасываются.
// К базе добавляется случайный hex-суффикс, поэтому компании с одинаковыми
// названиями получают разные slug.
package slugify

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// suffixLen длина случайного hex-суффикса в символах.
const suffixLen = 4

// Base возвращает детерминированную базовую часть slug для названия.
func Base(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLower(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// New возвращает slug вида "acme-corp-8f3a": база из названия плюс
// случайный суффикс из suffixLen hex-символов.
func New(name string) (string, error) {
	const op = "slugify.New"
	buf := make([]byte, (suffixLen+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	suffix := hex.EncodeToString(buf)[:suffixLen]

	base := Base(name)
	if base == "" {
		return suffix, nil
	}
	return base + "-" + suffix, nil
}

package utils

import (
	"regexp"
	"strings"
)

// Capitalize 首字母大写，其余小写
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// CapitalizeWords 逐词首字母大写 (列表页展示用)
func CapitalizeWords(sentence string) string {
	words := strings.Split(sentence, " ")
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 由商品名生成 URL slug
// "Paracetamol 500mg (Strip)" -> "paracetamol-500mg-strip"
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugInvalid.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

package util

import (
	"regexp"
	"strings"
)

var searchDisallowed = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// SanitizeSearchTerm 仅保留字母、数字和空格, 并去除首尾空白
func SanitizeSearchTerm(term string) string {
	return strings.TrimSpace(searchDisallowed.ReplaceAllString(term, ""))
}

// ClampPage 页码从 1 开始, 非正数视为 1
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

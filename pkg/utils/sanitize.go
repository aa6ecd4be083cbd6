package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every tag and attribute. Policies are safe for
// concurrent use once built.
var strictPolicy = bluemonday.StrictPolicy()

// Sanitize 去除用户输入中的所有HTML标签与属性，并裁剪首尾空白。
// 输出中的 & < > " ' 以实体形式保留，重复调用结果不变。
func Sanitize(text string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(text))
}

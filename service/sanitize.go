package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer 去掉用户输入中的 HTML，保留纯文本
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// maxSanitizeRounds 每轮至少剥掉一层实体编码，超过轮数时返回转义后的结果
const maxSanitizeRounds = 8

// Text 反复清洗并解码实体，直到结果不再变化，解码后不会再出现标签
func (s *Sanitizer) Text(in string) string {
	if in == "" {
		return ""
	}
	out := in
	for i := 0; i < maxSanitizeRounds; i++ {
		next := html.UnescapeString(s.policy.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	return strings.TrimSpace(s.policy.Sanitize(out))
}

// Optional nil 或清洗后为空时返回 nil
func (s *Sanitizer) Optional(in *string) *string {
	if in == nil {
		return nil
	}
	out := s.Text(*in)
	if out == "" {
		return nil
	}
	return &out
}

package extractor

import (
	"context"
	"strings"
	"unicode/utf8"
)

// PlainTextExtractor 处理 .txt 上传, 仅校验UTF-8有效性
type PlainTextExtractor struct{}

var _ TextExtractor = (*PlainTextExtractor)(nil)

// NewPlainTextExtractor 创建纯文本提取器
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract 直接返回文件内容, 非法UTF-8视为不可读
func (e *PlainTextExtractor) Extract(_ context.Context, data []byte, filename string) (string, error) {
	if !utf8.Valid(data) {
		return "", NewUnreadableError(filename, "文件不是有效的UTF-8文本")
	}
	// 去掉可能存在的BOM
	text := strings.TrimPrefix(string(data), "\uFEFF")
	return text, nil
}

package extractor

import (
	"context"
)

// TextExtractor 文本提取器接口
// 输入上传文件的字节与原始文件名，返回解码后的纯文本。
// 失败时返回本包定义的类型化错误，调用方通过 errors.Is 区分失败原因。
type TextExtractor interface {
	// Extract 从文件字节中提取纯文本
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

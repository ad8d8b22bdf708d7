package extractor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"resume-score-go/internal/logger"
)

// CompositeExtractor 按文件扩展名分派到具体提取器
// PDF优先走本地Eino解析, 失败(且非类型化失败)时回退到Tika;
// DOCX只能走Tika, 未配置Tika服务器时返回解码器不可用;
// TXT走纯文本路径。其余扩展名一律拒绝。
type CompositeExtractor struct {
	pdf       TextExtractor // 本地PDF解析, 可为nil
	tika      TextExtractor // Tika回退, 可为nil
	plaintext TextExtractor
	maxBytes  int64
}

// CompositeOption 组合提取器的配置选项
type CompositeOption func(*CompositeExtractor)

// WithPDFExtractor 配置本地PDF提取器
func WithPDFExtractor(pdf TextExtractor) CompositeOption {
	return func(c *CompositeExtractor) {
		c.pdf = pdf
	}
}

// WithTikaFallback 配置Tika回退提取器
func WithTikaFallback(tika TextExtractor) CompositeOption {
	return func(c *CompositeExtractor) {
		c.tika = tika
	}
}

// WithMaxFileSize 配置单文件大小上限(字节), 0表示不限制
func WithMaxFileSize(maxBytes int64) CompositeOption {
	return func(c *CompositeExtractor) {
		c.maxBytes = maxBytes
	}
}

var _ TextExtractor = (*CompositeExtractor)(nil)

// NewCompositeExtractor 创建组合提取器
func NewCompositeExtractor(options ...CompositeOption) *CompositeExtractor {
	c := &CompositeExtractor{
		plaintext: NewPlainTextExtractor(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Extract 校验文件后分派到对应的提取器
func (c *CompositeExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", NewEmptyFileError(filename)
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return "", NewFileTooLargeError(filename,
			fmt.Sprintf("%d 字节, 上限 %d 字节", len(data), c.maxBytes))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return c.extractPDF(ctx, data, filename)
	case ".docx", ".doc":
		if c.tika == nil {
			return "", NewDecoderUnavailableError(filename, "未配置Tika服务器, 无法解析Word文档")
		}
		return c.tika.Extract(ctx, data, filename)
	case ".txt":
		return c.plaintext.Extract(ctx, data, filename)
	default:
		return "", NewUnsupportedTypeError(filename, fmt.Sprintf("扩展名: %q", ext))
	}
}

// extractPDF 本地解析优先, 必要时回退Tika
func (c *CompositeExtractor) extractPDF(ctx context.Context, data []byte, filename string) (string, error) {
	if c.pdf == nil && c.tika == nil {
		return "", NewDecoderUnavailableError(filename, "未配置任何PDF提取器")
	}

	if c.pdf != nil {
		text, err := c.pdf.Extract(ctx, data, filename)
		if err == nil {
			return text, nil
		}
		// 加密文档换解析器也解不开, 直接上报; 扫描件同理
		if errors.Is(err, ErrPasswordProtected) || errors.Is(err, ErrScannedDocument) || c.tika == nil {
			return "", err
		}
		logger.Warn().Err(err).Str("filename", filename).Msg("本地PDF解析失败, 回退到Tika")
	}

	return c.tika.Extract(ctx, data, filename)
}

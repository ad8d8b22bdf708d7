package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// 常见上传类型的Content-Type
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
}

// TikaExtractor 是基于Apache Tika服务器的通用文档提取器
// PDF走不通时的回退路径, 也是DOCX的唯一解码路径。
type TikaExtractor struct {
	// Tika服务器地址，例如 http://localhost:9998
	ServerURL string
	// HTTP客户端，可配置超时等参数
	Client *http.Client
	// 是否提取链接注释文本
	extractAnnotations bool
	// 日志记录
	logger *log.Logger
}

// TikaOption 定义配置选项函数
type TikaOption func(*TikaExtractor)

// WithAnnotations 配置是否提取PDF链接注释文本
func WithAnnotations(extract bool) TikaOption {
	return func(e *TikaExtractor) {
		e.extractAnnotations = extract
	}
}

// WithTikaLogger 配置自定义日志记录器
func WithTikaLogger(logger *log.Logger) TikaOption {
	return func(e *TikaExtractor) {
		e.logger = logger
	}
}

// WithTimeout 配置HTTP客户端超时时间
func WithTimeout(timeout time.Duration) TikaOption {
	return func(e *TikaExtractor) {
		e.Client.Timeout = timeout
	}
}

// 确保TikaExtractor实现了TextExtractor接口
var _ TextExtractor = (*TikaExtractor)(nil)

// NewTikaExtractor 创建一个新的Tika文档提取器
func NewTikaExtractor(serverURL string, options ...TikaOption) *TikaExtractor {
	// 设置默认的HTTP客户端，包含合理的超时设置
	client := &http.Client{
		Timeout: 60 * time.Second,
	}

	extractor := &TikaExtractor{
		ServerURL:          serverURL,
		Client:             client,
		extractAnnotations: true, // 默认提取注释文本
		logger:             log.New(os.Stderr, "[Tika] ", log.LstdFlags),
	}

	// 应用选项
	for _, option := range options {
		option(extractor)
	}

	return extractor
}

// Extract 将文件字节发送到Tika服务器并取回纯文本
func (e *TikaExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	startTime := time.Now()
	e.logger.Printf("开始通过Tika提取文本 (文件: %s, %.2f MB)", filename, float64(len(data))/1024/1024)

	// 构建请求URL - 纯文本模式
	url := fmt.Sprintf("%s/tika", e.ServerURL)

	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(data))
	if err != nil {
		return "", NewUnreadableError(filename, fmt.Sprintf("创建HTTP请求失败: %v", err))
	}

	// 设置头信息
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		req.Header.Set("Content-Type", ct)
	} else {
		req.Header.Set("Content-Type", "application/octet-stream")
	}
	req.Header.Set("Accept", "text/plain")
	if filename != "" {
		req.Header.Set("X-Tika-Resource-Name", filename)
	}

	// 根据配置决定是否提取注释文本
	if !e.extractAnnotations {
		req.Header.Set("X-Tika-PDFExtractAnnotationText", "false")
	}

	// 发送请求
	resp, err := e.Client.Do(req)
	if err != nil {
		return "", NewDecoderUnavailableError(filename, fmt.Sprintf("发送请求到Tika服务器失败: %v", err))
	}
	defer resp.Body.Close()

	// 检查响应状态
	if resp.StatusCode != http.StatusOK {
		// 422: Tika识别出加密或不可解析的文档
		if resp.StatusCode == http.StatusUnprocessableEntity {
			return "", NewPasswordProtectedError(filename,
				fmt.Sprintf("tika服务器返回状态码: %d", resp.StatusCode))
		}
		return "", NewUnreadableError(filename,
			fmt.Sprintf("tika服务器返回错误状态码: %d", resp.StatusCode))
	}

	// 读取响应内容
	textBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewUnreadableError(filename, fmt.Sprintf("读取Tika响应失败: %v", err))
	}

	text := string(textBytes)
	if len(strings.TrimSpace(text)) < minExtractableChars {
		return "", NewScannedDocumentError(filename,
			fmt.Sprintf("仅提取到 %d 个字符", len(strings.TrimSpace(text))))
	}

	e.logger.Printf("Tika提取完成: 提取了 %d 个字符 (用时 %.2f秒)", len(text), time.Since(startTime).Seconds())
	return text, nil
}

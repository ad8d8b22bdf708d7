package extractor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrUnsupportedType    = errors.New("不支持的文件类型")
	ErrEmptyFile          = errors.New("文件内容为空")
	ErrFileTooLarge       = errors.New("文件超出大小限制")
	ErrPasswordProtected  = errors.New("文件已加密, 无法解析")
	ErrScannedDocument    = errors.New("扫描件或纯图片文档, 无法提取文本")
	ErrDecoderUnavailable = errors.New("所需解码器不可用")
	ErrUnreadable         = errors.New("文件内容不可读")
)

// ExtractError 包含详细错误信息的自定义错误
type ExtractError struct {
	Filename string
	Op       string
	BaseErr  error
	Detail   string
}

func (e *ExtractError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s): %s", e.BaseErr, e.Op, e.Filename, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s)", e.BaseErr, e.Op, e.Filename)
}

func (e *ExtractError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ExtractError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewUnsupportedTypeError(filename, detail string) error {
	return &ExtractError{
		Filename: filename,
		Op:       "dispatch",
		BaseErr:  ErrUnsupportedType,
		Detail:   detail,
	}
}

func NewEmptyFileError(filename string) error {
	return &ExtractError{
		Filename: filename,
		Op:       "precheck",
		BaseErr:  ErrEmptyFile,
	}
}

func NewFileTooLargeError(filename, detail string) error {
	return &ExtractError{
		Filename: filename,
		Op:       "precheck",
		BaseErr:  ErrFileTooLarge,
		Detail:   detail,
	}
}

func NewPasswordProtectedError(filename, detail string) error {
	return &ExtractError{
		Filename: filename,
		Op:       "decode",
		BaseErr:  ErrPasswordProtected,
		Detail:   detail,
	}
}

func NewScannedDocumentError(filename, detail string) error {
	return &ExtractError{
		Filename: filename,
		Op:       "decode",
		BaseErr:  ErrScannedDocument,
		Detail:   detail,
	}
}

func NewDecoderUnavailableError(filename, detail string) error {
	return &ExtractError{
		Filename: filename,
		Op:       "dispatch",
		BaseErr:  ErrDecoderUnavailable,
		Detail:   detail,
	}
}

func NewUnreadableError(filename, detail string) error {
	return &ExtractError{
		Filename: filename,
		Op:       "decode",
		BaseErr:  ErrUnreadable,
		Detail:   detail,
	}
}

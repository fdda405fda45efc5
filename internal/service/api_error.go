package service

import (
	"encoding/json"
	"fmt"
)

// ErrorKind 按响应状态码分类后的错误类别
// 分类表是封闭的：表外状态码和网络层失败一律归入 KindGeneric
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindInvalidData
	KindSessionExpired
	KindForbidden
	KindServerError
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidData:
		return "invalid_data"
	case KindSessionExpired:
		return "session_expired"
	case KindForbidden:
		return "forbidden"
	case KindServerError:
		return "server_error"
	default:
		return "generic"
	}
}

// statusKinds 状态码 → 错误类别映射表
var statusKinds = map[int]ErrorKind{
	400: KindInvalidData,
	401: KindSessionExpired,
	403: KindForbidden,
	500: KindServerError,
}

// ClassifyStatus 按状态码分类错误
func ClassifyStatus(statusCode int) ErrorKind {
	if kind, ok := statusKinds[statusCode]; ok {
		return kind
	}
	return KindGeneric
}

// APIError 后端调用失败（已分类）
type APIError struct {
	StatusCode int
	Kind       ErrorKind
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d kind=%s detail=%s", e.StatusCode, e.Kind, e.Detail)
}

// UserMessage 转换为面向用户的提示文案
func (e *APIError) UserMessage() string {
	switch e.Kind {
	case KindInvalidData:
		return "Invalid data: " + e.detailOrDefault()
	case KindSessionExpired:
		return "Session expired. Please log in again."
	case KindForbidden:
		return "You are not authorized to perform this action."
	case KindServerError:
		return "Server error: " + e.detailOrDefault()
	default:
		return e.detailOrDefault()
	}
}

func (e *APIError) detailOrDefault() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "Failed to save glucose test results"
}

// extractDetail 从错误响应体提取服务端说明
// 依次尝试 message / error / data.error 三个字段
func extractDetail(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Data    struct {
			Error string `json:"error"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Data.Error
}

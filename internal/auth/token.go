package auth

import (
	"errors"
	"os"
	"strings"
)

// CookieName 登录流程写入的认证 cookie 名
const CookieName = "authToken"

// ErrNoToken 认证 token 缺失（未登录或会话已清除）
var ErrNoToken = errors.New("auth token not found")

// TokenSource 提供当前会话的 bearer token
// 出站调用前读取一次；缺失时调用方必须在发起请求前中止
type TokenSource interface {
	Token() (string, error)
}

// CookieFileTokenSource 从 cookie 文件读取 token
// 文件内容为 "name=value; name2=value2" 形式的 cookie 行
type CookieFileTokenSource struct {
	path string
}

func NewCookieFileTokenSource(path string) *CookieFileTokenSource {
	return &CookieFileTokenSource{path: path}
}

func (s *CookieFileTokenSource) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}
	for _, part := range strings.Split(string(data), ";") {
		part = strings.TrimSpace(part)
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		if name == CookieName && value != "" {
			return value, nil
		}
	}
	return "", ErrNoToken
}

// StaticTokenSource 固定 token（测试和本地调试用）
type StaticTokenSource string

func (s StaticTokenSource) Token() (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

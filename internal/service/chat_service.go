package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 聊天机器人相关错误
var (
	ErrChatTokenMissing = errors.New("chat bot token not configured")
	ErrChatUnauthorized = errors.New("chat bot token rejected")
	ErrChatRateLimited  = errors.New("chat bot rate limited")
)

// httpDoer 抽象 HTTP 客户端，便于测试注入。
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	chatModel       = "gpt-4o-mini"
	chatTemperature = 0.7
	chatMaxTokens   = 1000
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ChatService 将访客消息转发至 OpenAI 聊天接口，预设提示词来自后台配置。
type ChatService struct {
	settings *SettingsService
	http     httpDoer
	baseURL  string
}

// NewChatService 构造 ChatService
func NewChatService(gdb *gorm.DB) *ChatService {
	return &ChatService{
		settings: NewSettingsService(gdb),
		http:     &http.Client{Timeout: 30 * time.Second},
		baseURL:  "https://api.openai.com/v1",
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，传 nil 时恢复默认。
func (s *ChatService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 30 * time.Second}
		return
	}
	s.http = client
}

// SetBaseURL 覆盖接口地址，测试时指向本地桩服务。
func (s *ChatService) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// SendMessage 以后台预设作为 system 提示词转发用户消息，返回模型回复。
func (s *ChatService) SendMessage(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", invalid("Введите сообщение")
	}

	settings, err := s.settings.GetChatBot()
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(settings.Token)
	if token == "" {
		return "", ErrChatTokenMissing
	}

	messages := make([]chatMessage, 0, 2)
	if preset := strings.TrimSpace(settings.Preset); preset != "" {
		messages = append(messages, chatMessage{Role: "system", Content: preset})
	}
	messages = append(messages, chatMessage{Role: "user", Content: message})

	payload := chatCompletionRequest{
		Model:       chatModel,
		Messages:    messages,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("构造请求失败: %w", err)
	}

	endpoint := strings.TrimRight(s.baseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("创建 OpenAI 请求失败: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	client := s.http
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("请求 OpenAI 接口失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("读取 OpenAI 响应失败: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return "", ErrChatUnauthorized
	case http.StatusTooManyRequests:
		return "", ErrChatRateLimited
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("解析 OpenAI 响应失败: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		errMsg := strings.TrimSpace(completion.Error.Message)
		if errMsg == "" {
			errMsg = resp.Status
		}
		return "", fmt.Errorf("OpenAI 接口返回错误：%s", errMsg)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("OpenAI 接口未返回结果")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Umami 相关错误
var (
	ErrUmamiKeyMissing = errors.New("umami api key not configured")
	ErrUmamiUpstream   = errors.New("umami upstream error")
)

// UmamiService 代理 Umami Cloud 的统计接口，密钥保存在后台配置中不外泄。
type UmamiService struct {
	settings *SettingsService
	http     httpDoer
	baseURL  string
}

// NewUmamiService 构造 UmamiService
func NewUmamiService(gdb *gorm.DB) *UmamiService {
	return &UmamiService{
		settings: NewSettingsService(gdb),
		http:     &http.Client{Timeout: 15 * time.Second},
		baseURL:  "https://api.umami.is/v1",
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，传 nil 时恢复默认。
func (s *UmamiService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 15 * time.Second}
		return
	}
	s.http = client
}

// SetBaseURL 覆盖接口地址，测试时指向本地桩服务。
func (s *UmamiService) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// Stats 代理 /websites/{id}/stats，原样透传上游 JSON。
func (s *UmamiService) Stats(ctx context.Context, startAt, endAt string) (json.RawMessage, error) {
	if strings.TrimSpace(startAt) == "" || strings.TrimSpace(endAt) == "" {
		return nil, invalid("startAt and endAt required")
	}
	query := url.Values{}
	query.Set("startAt", startAt)
	query.Set("endAt", endAt)
	return s.proxy(ctx, "stats", query)
}

// Metrics 代理 /websites/{id}/metrics，type 缺省为 country。
func (s *UmamiService) Metrics(ctx context.Context, startAt, endAt, metricType, limit string) (json.RawMessage, error) {
	if strings.TrimSpace(startAt) == "" || strings.TrimSpace(endAt) == "" {
		return nil, invalid("startAt and endAt required")
	}
	if strings.TrimSpace(metricType) == "" {
		metricType = "country"
	}
	query := url.Values{}
	query.Set("startAt", startAt)
	query.Set("endAt", endAt)
	query.Set("type", metricType)
	if strings.TrimSpace(limit) != "" {
		query.Set("limit", limit)
	}
	return s.proxy(ctx, "metrics", query)
}

func (s *UmamiService) proxy(ctx context.Context, endpoint string, query url.Values) (json.RawMessage, error) {
	settings, err := s.settings.GetUmami()
	if err != nil {
		return nil, err
	}
	apiKey := strings.TrimSpace(settings.APIKey)
	if apiKey == "" {
		return nil, ErrUmamiKeyMissing
	}

	target := fmt.Sprintf("%s/websites/%s/%s?%s", strings.TrimRight(s.baseURL, "/"), settings.WebsiteID, endpoint, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create umami request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-umami-api-key", apiKey)

	client := s.http
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUmamiUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read umami response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status %d", ErrUmamiUpstream, resp.StatusCode)
	}
	return json.RawMessage(body), nil
}

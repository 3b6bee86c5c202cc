// Package mlink 封装外部联盟平台（MLink）的 HTTP 客户端。
package mlink

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/config"

	"github.com/go-resty/resty/v2"
)

// tokenEarlyExpiry 提前视为过期的安全窗口
const tokenEarlyExpiry = 60 * time.Second

// Envelope 联盟平台统一响应结构
type Envelope struct {
	Data      interface{} `json:"data"`
	IsSuccess bool        `json:"isSuccess"`
	Message   string      `json:"message"`
	Type      int         `json:"type"`
}

// tokenEnvelope 取令牌接口响应
type tokenEnvelope struct {
	Data struct {
		AccessToken string `json:"accessToken"`
		Expiration  string `json:"expiration"`
	} `json:"data"`
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	Type      int    `json:"type"`
}

// GenerateLinkRequest 联盟平台链接签发请求
type GenerateLinkRequest struct {
	InfluencerID   string `json:"influencerID"`
	InfluencerName string `json:"influencerName"`
	CampaignID     uint   `json:"campaignID"`
}

// Client 联盟平台客户端，进程内共享登录态。
type Client struct {
	cfg  *config.MLinkConfig
	http *resty.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient 创建联盟平台客户端
func NewClient(cfg *config.MLinkConfig) *Client {
	timeout := 30 * time.Second
	if cfg != nil && cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	baseURL := "https://api.mlink.com.tr"
	if cfg != nil && strings.TrimSpace(cfg.BaseURL) != "" {
		baseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Client{cfg: cfg, http: httpClient}
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.cfg != nil && c.cfg.Enabled
}

// ensureToken 确保持有有效令牌，过期前 60 秒即视为过期。
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiresAt) {
		return c.token, nil
	}

	var result tokenEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"username": c.cfg.Username,
			"password": c.cfg.Password,
		}).
		SetResult(&result).
		Post("/Account/GetTokenV2")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("mlink 登录失败: http %d", resp.StatusCode())
	}
	if !result.IsSuccess {
		return "", fmt.Errorf("mlink 登录失败: %s", result.Message)
	}

	expiresAt, err := time.Parse(time.RFC3339, result.Data.Expiration)
	if err != nil {
		return "", fmt.Errorf("mlink 令牌过期时间解析失败: %w", err)
	}

	c.token = result.Data.AccessToken
	c.expiresAt = expiresAt.Add(-tokenEarlyExpiry)
	return c.token, nil
}

// GetCampaigns 透传查询联盟活动列表
func (c *Client) GetCampaigns(ctx context.Context, params map[string]string) (*Envelope, error) {
	return c.get(ctx, "/Affiliate/GetCampaigns", params)
}

// GetReport 透传查询联盟结算报表
func (c *Client) GetReport(ctx context.Context, params map[string]string) (*Envelope, error) {
	return c.get(ctx, "/Affiliate/GetReport", params)
}

// GenerateLink 透传联盟链接签发
func (c *Client) GenerateLink(ctx context.Context, body GenerateLinkRequest) (*Envelope, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	var result Envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		SetResult(&result).
		Put("/Affiliate/GenerateLink")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mlink 请求失败: http %d", resp.StatusCode())
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) (*Envelope, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	var result Envelope
	request := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&result)
	if len(params) > 0 {
		request = request.SetQueryParams(params)
	}
	resp, err := request.Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mlink 请求失败: http %d", resp.StatusCode())
	}
	return &result, nil
}

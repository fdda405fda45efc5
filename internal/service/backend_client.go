package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/auth"
	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/models"
)

// 后端固定端点
const (
	glucoseTestPath = "/api/test-glucosa"
	devicesPath     = "/api/connection-status/all-devices-status"
)

// statusSuccess 响应体中的成功标记
const statusSuccess = "Success"

// APIResponse 后端统一响应信封
type APIResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BackendClient 后端 API 客户端（bearer token 认证）
// token 缺失时在发起请求前返回 auth.ErrNoToken
type BackendClient struct {
	httpClient *resty.Client
	tokens     auth.TokenSource
	logger     *zap.Logger
}

// NewBackendClient 创建后端客户端
func NewBackendClient(baseURL string, timeout time.Duration, tokens auth.TokenSource, logger *zap.Logger) *BackendClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &BackendClient{
		httpClient: client,
		tokens:     tokens,
		logger:     logger,
	}
}

// FetchDevices 拉取设备目录（设备名下拉选项）
// 信封不带成功标记或 data 形状异常时降级为空列表，不中断页面
func (c *BackendClient) FetchDevices(ctx context.Context) ([]models.Device, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}

	var response APIResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&response).
		Get(devicesPath)
	if err != nil {
		c.logger.Error("Fetch devices failed",
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to fetch devices: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Fetch devices returned error status",
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Kind:       ClassifyStatus(resp.StatusCode()),
			Detail:     extractDetail(resp.Body()),
		}
	}

	if response.Status != statusSuccess || len(response.Data) == 0 {
		c.logger.Warn("Unexpected device data format, using empty list",
			zap.String("status", response.Status),
		)
		return []models.Device{}, nil
	}

	var devices []models.Device
	if err := json.Unmarshal(response.Data, &devices); err != nil {
		c.logger.Warn("Failed to unmarshal device list, using empty list",
			zap.Error(err),
		)
		return []models.Device{}, nil
	}

	c.logger.Info("Devices loaded",
		zap.Int("device_count", len(devices)),
	)
	return devices, nil
}

// SaveGlucoseTest 提交血糖结果
// 非 2xx 或信封缺少成功标记都视为失败，返回已分类的 *APIError
func (c *BackendClient) SaveGlucoseTest(ctx context.Context, test *models.GlucoseTest) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}

	var response APIResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(test).
		SetResult(&response).
		Post(glucoseTestPath)
	if err != nil {
		c.logger.Error("Save glucose test failed",
			zap.Error(err),
			zap.String("lab_number", test.LabNumber),
		)
		return fmt.Errorf("failed to save glucose test: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Save glucose test returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("lab_number", test.LabNumber),
			zap.ByteString("response_body", resp.Body()),
		)
		return &APIError{
			StatusCode: resp.StatusCode(),
			Kind:       ClassifyStatus(resp.StatusCode()),
			Detail:     extractDetail(resp.Body()),
		}
	}

	if response.Status != statusSuccess {
		c.logger.Error("Save glucose test response missing success marker",
			zap.String("status", response.Status),
			zap.String("message", response.Message),
		)
		return &APIError{
			StatusCode: resp.StatusCode(),
			Kind:       KindGeneric,
			Detail:     response.Message,
		}
	}

	c.logger.Info("Glucose test saved",
		zap.String("lab_number", test.LabNumber),
		zap.Int64("patient_id", test.PatientID),
	)
	return nil
}

package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/auth"
	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/models"
	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/store"
)

// 提交成功 / 会话过期后延迟跳转的默认等待
const (
	defaultSuccessNavDelay = 1000 * time.Millisecond
	defaultLoginNavDelay   = 1500 * time.Millisecond
)

// dateTimeRe 组装后的提交时间必须精确匹配 "YYYY-MM-DD HH:mm"
var dateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

// GlucoseEntryService 血糖录入页核心流程
// 串联患者加载、表单状态机和提交工作流；所有失败都在边界处
// 转成用户提示，不向上层传播
type GlucoseEntryService struct {
	form      *FormState
	loader    *PatientLoader
	handoff   *store.HandoffStore
	client    *BackendClient
	notifier  Notifier
	navigator Navigator
	logger    *zap.Logger

	mu        sync.Mutex
	patient   *models.Patient
	labNumber string
	devices   []models.Device
	loading   bool

	successNavDelay time.Duration
	loginNavDelay   time.Duration
}

// NewGlucoseEntryService 创建录入页服务
func NewGlucoseEntryService(
	form *FormState,
	loader *PatientLoader,
	handoff *store.HandoffStore,
	client *BackendClient,
	notifier Notifier,
	navigator Navigator,
	logger *zap.Logger,
) *GlucoseEntryService {
	return &GlucoseEntryService{
		form:            form,
		loader:          loader,
		handoff:         handoff,
		client:          client,
		notifier:        notifier,
		navigator:       navigator,
		logger:          logger,
		successNavDelay: defaultSuccessNavDelay,
		loginNavDelay:   defaultLoginNavDelay,
	}
}

// Open 页面进入：带检验单号时加载患者，然后拉取设备目录
// 患者加载一定先于表单就绪完成（成功、缺失或无效三种结局之一）
func (s *GlucoseEntryService) Open(ctx context.Context, labNumber string) {
	s.mu.Lock()
	s.labNumber = labNumber
	s.mu.Unlock()

	s.form.AwaitPatient()
	if labNumber != "" {
		s.loadPatient(ctx)
	}
	s.fetchDevices(ctx)
}

// Patient 当前患者上下文（未加载时为 nil）
func (s *GlucoseEntryService) Patient() *models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patient
}

// LabNumber 路由携带的检验单号（仅展示和返回导航用）
func (s *GlucoseEntryService) LabNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.labNumber
}

// Devices 设备目录（拉取失败时为空）
func (s *GlucoseEntryService) Devices() []models.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devices
}

// Loading 患者加载指示器
func (s *GlucoseEntryService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Form 表单状态机
func (s *GlucoseEntryService) Form() *FormState {
	return s.form
}

// loadPatient 从交接存储加载患者，结束时无条件清除加载指示器
func (s *GlucoseEntryService) loadPatient(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	patient, err := s.loader.Load(ctx)
	switch {
	case errors.Is(err, ErrNoPatientSelected):
		s.notifier.Error("No patient selected. Please select a patient first.")
	case errors.Is(err, ErrInvalidPatientData):
		s.notifier.Error("Invalid patient data")
	case err != nil:
		s.logger.Error("Patient load failed",
			zap.Error(err),
		)
		s.notifier.Error("Failed to load patient data")
	default:
		s.mu.Lock()
		s.patient = patient
		s.mu.Unlock()
		s.form.PatientReady()
	}
}

// fetchDevices 拉取设备目录，失败不阻塞录入
func (s *GlucoseEntryService) fetchDevices(ctx context.Context) {
	devices, err := s.client.FetchDevices(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNoToken) {
			s.notifier.Error("No token found. Please log in again.")
		} else {
			s.notifier.Error("Failed to fetch devices. Please try again.")
		}
		devices = nil
	}
	s.mu.Lock()
	s.devices = devices
	s.mu.Unlock()
}

// Submit 提交当前草稿
// 前置条件按序检查，第一个失败即中止且不发起网络调用；
// 在途提交期间的重复调用是无操作
func (s *GlucoseEntryService) Submit(ctx context.Context) {
	patient := s.Patient()
	if patient == nil {
		s.notifier.Error("Please select a patient first")
		return
	}

	if !s.form.BeginSubmit() {
		return
	}

	attemptID := uuid.NewString()
	draft := s.form.Draft()

	value := strings.TrimSpace(draft.GlucoseValue)
	if value == "" {
		s.notifier.Error("Please enter glucose value")
		s.form.FinishSubmit(false)
		return
	}

	if draft.DateTime == "" {
		s.notifier.Error("Please select date and time")
		s.form.FinishSubmit(false)
		return
	}

	// 分钟精度的 "YYYY-MM-DDTHH:mm" → "YYYY-MM-DD HH:mm"
	formattedDateTime := strings.Replace(draft.DateTime, "T", " ", 1)
	if !dateTimeRe.MatchString(formattedDateTime) {
		s.logger.Error("Invalid datetime format",
			zap.String("attempt_id", attemptID),
			zap.String("date_time", formattedDateTime),
		)
		s.notifier.Error("Invalid date time format")
		s.form.FinishSubmit(false)
		return
	}

	test := &models.GlucoseTest{
		DateTime:     formattedDateTime,
		GlucosValue:  value,
		Unit:         draft.Unit,
		PatientID:    patient.PatientID,
		DeviceName:   draft.DeviceName,
		Note:         strings.TrimSpace(draft.Note),
		PatientCode:  patient.PatientCode,
		LabNumber:    string(patient.LabNumber),
		Metode:       models.MetodeElektrokimia,
		IsValidation: 0,
	}
	if test.DeviceName == "" {
		test.DeviceName = models.DeviceManualInput
	}

	s.logger.Info("Submitting glucose test",
		zap.String("attempt_id", attemptID),
		zap.Int64("patient_id", test.PatientID),
		zap.String("lab_number", test.LabNumber),
		zap.String("date_time", test.DateTime),
	)

	s.form.MarkSubmitting()
	if err := s.client.SaveGlucoseTest(ctx, test); err != nil {
		s.form.FinishSubmit(false)
		s.reportSubmitError(attemptID, err)
		return
	}

	s.notifier.Success("Glucose test result saved successfully")
	s.form.FinishSubmit(true)

	if err := s.handoff.Remove(ctx); err != nil {
		s.logger.Warn("Failed to clear patient handoff entry",
			zap.String("attempt_id", attemptID),
			zap.Error(err),
		)
	}
	s.mu.Lock()
	s.patient = nil
	s.mu.Unlock()

	time.AfterFunc(s.successNavDelay, func() {
		s.navigator.Push(RouteResults)
	})
}

// reportSubmitError 提交失败的分类提示
// 401 额外安排延迟跳转到登录页；其余类别不导航，草稿保留
func (s *GlucoseEntryService) reportSubmitError(attemptID string, err error) {
	if errors.Is(err, auth.ErrNoToken) {
		s.notifier.Error("Authentication token is missing. Please log in again.")
		return
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		s.logger.Error("Save glucose test rejected",
			zap.String("attempt_id", attemptID),
			zap.Int("status_code", apiErr.StatusCode),
			zap.String("kind", apiErr.Kind.String()),
			zap.String("detail", apiErr.Detail),
		)
		s.notifier.Error(apiErr.UserMessage())
		if apiErr.Kind == KindSessionExpired {
			time.AfterFunc(s.loginNavDelay, func() {
				s.navigator.Push(RouteLogin)
			})
		}
		return
	}

	s.logger.Error("Save glucose test failed",
		zap.String("attempt_id", attemptID),
		zap.Error(err),
	)
	s.notifier.Error("Failed to save glucose test results")
}

// Back 返回检验单列表：清除交接存储后导航
func (s *GlucoseEntryService) Back(ctx context.Context) {
	if err := s.handoff.Remove(ctx); err != nil {
		s.logger.Warn("Failed to clear patient handoff entry",
			zap.Error(err),
		)
	}
	s.navigator.Push(RouteLabOrders)
}

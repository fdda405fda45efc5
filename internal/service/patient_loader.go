package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/models"
	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/store"
)

var (
	// ErrNoPatientSelected 交接存储中没有患者记录
	ErrNoPatientSelected = errors.New("no patient selected")
	// ErrInvalidPatientData 患者记录无法解析或缺少必需的标识字段
	ErrInvalidPatientData = errors.New("invalid patient data")
)

// PatientLoader 页面进入时从交接存储读取已选患者
// 只读取一次；校验失败时不产生部分患者上下文（fail closed）
type PatientLoader struct {
	handoff *store.HandoffStore
	logger  *zap.Logger
}

func NewPatientLoader(handoff *store.HandoffStore, logger *zap.Logger) *PatientLoader {
	return &PatientLoader{
		handoff: handoff,
		logger:  logger,
	}
}

// Load 读取并校验患者记录
// 返回 ErrNoPatientSelected / ErrInvalidPatientData 或完整患者
func (l *PatientLoader) Load(ctx context.Context) (*models.Patient, error) {
	raw, err := l.handoff.Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			l.logger.Warn("No patient data found in handoff store")
			return nil, ErrNoPatientSelected
		}
		return nil, fmt.Errorf("failed to read handoff store: %w", err)
	}

	var patient models.Patient
	if err := json.Unmarshal([]byte(raw), &patient); err != nil {
		l.logger.Error("Failed to parse patient data",
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatientData, err)
	}

	if patient.ID == 0 {
		l.logger.Error("Invalid patient data: missing id",
			zap.String("patient_code", patient.PatientCode),
		)
		return nil, fmt.Errorf("%w: missing id", ErrInvalidPatientData)
	}

	l.logger.Info("Patient loaded from handoff store",
		zap.Int64("patient_id", patient.PatientID),
		zap.String("patient_code", patient.PatientCode),
		zap.String("name", patient.Name),
	)
	return &patient, nil
}

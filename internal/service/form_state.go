package service

import (
	"strings"
	"sync"
	"time"

	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/models"
)

// State 录入表单所处阶段
type State int

const (
	StateUninitialized State = iota
	StateAwaitingPatient
	StateReady
	StateValidating
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateAwaitingPatient:
		return "awaiting_patient"
	case StateReady:
		return "ready"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "uninitialized"
	}
}

// draftTimeLayout 时间字段的本地分钟精度格式（与 datetime-local 输入一致）
const draftTimeLayout = "2006-01-02T15:04"

// Draft 录入中的血糖读数草稿
type Draft struct {
	DateTime     string
	GlucoseValue string
	Unit         string
	DeviceName   string
	Note         string
}

// FormState 表单状态机
// 字段修改只在 Ready 阶段生效；BeginSubmit 兼作互斥闩，
// 同一时刻至多一次在途提交，重复提交请求是无操作
type FormState struct {
	mu    sync.Mutex
	state State
	draft Draft
	now   func() time.Time
}

func NewFormState() *FormState {
	return &FormState{
		state: StateUninitialized,
		now:   time.Now,
	}
}

func (f *FormState) defaultDraft() Draft {
	return Draft{
		DateTime: f.now().Format(draftTimeLayout),
		Unit:     models.UnitMgDL,
	}
}

// State 当前阶段
func (f *FormState) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft 当前草稿的副本
func (f *FormState) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// AwaitPatient 页面进入、患者加载期间
func (f *FormState) AwaitPatient() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateAwaitingPatient
}

// PatientReady 患者上下文就绪，初始化默认草稿并开放编辑
func (f *FormState) PatientReady() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateReady
	f.draft = f.defaultDraft()
}

// SetDateTime 设置采样时间（仅 Ready 阶段生效）
func (f *FormState) SetDateTime(value string) {
	f.setField(func(d *Draft) { d.DateTime = value })
}

// SetGlucoseValue 设置血糖值，允许自由文本（如 "120" 或 "High"）
func (f *FormState) SetGlucoseValue(value string) {
	f.setField(func(d *Draft) { d.GlucoseValue = value })
}

// SetUnit 设置单位，枚举外的值忽略
func (f *FormState) SetUnit(unit string) {
	if !models.ValidUnit(unit) {
		return
	}
	f.setField(func(d *Draft) { d.Unit = unit })
}

// SetDeviceName 设置设备名，不影响单位和血糖值
func (f *FormState) SetDeviceName(name string) {
	f.setField(func(d *Draft) { d.DeviceName = name })
}

// SetNote 设置备注
func (f *FormState) SetNote(note string) {
	f.setField(func(d *Draft) { d.Note = note })
}

func (f *FormState) setField(apply func(*Draft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateReady {
		return
	}
	apply(&f.draft)
}

// CanSubmit 提交按钮可用条件：血糖值和时间非空且没有在途提交
func (f *FormState) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateReady &&
		strings.TrimSpace(f.draft.GlucoseValue) != "" &&
		f.draft.DateTime != ""
}

// BeginSubmit 尝试进入校验阶段
// 只有 Ready 可以进入；已在提交流程中的重复调用返回 false（调用方无操作）
func (f *FormState) BeginSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateReady {
		return false
	}
	f.state = StateValidating
	return true
}

// MarkSubmitting 本地校验通过，进入在途提交阶段
func (f *FormState) MarkSubmitting() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateValidating {
		f.state = StateSubmitting
	}
}

// FinishSubmit 提交流程结束
// 成功：经 Submitted 自动回到带全新默认草稿的 Ready
// 失败：回到 Ready 且草稿保持原样，便于用户修正后重试
func (f *FormState) FinishSubmit(success bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateValidating && f.state != StateSubmitting {
		return
	}
	if success {
		f.state = StateSubmitted
		f.draft = f.defaultDraft()
	}
	f.state = StateReady
}

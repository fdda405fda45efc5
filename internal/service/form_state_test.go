package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/models"
)

var testNow = time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local)

func newTestForm() *FormState {
	f := NewFormState()
	f.now = func() time.Time { return testNow }
	return f
}

func readyForm() *FormState {
	f := newTestForm()
	f.AwaitPatient()
	f.PatientReady()
	return f
}

func TestFormState_InitialState(t *testing.T) {
	f := newTestForm()
	assert.Equal(t, StateUninitialized, f.State())
	assert.False(t, f.CanSubmit())
}

func TestFormState_PatientReadyInitializesDefaults(t *testing.T) {
	f := readyForm()

	assert.Equal(t, StateReady, f.State())
	draft := f.Draft()
	assert.Equal(t, "2024-05-01T08:30", draft.DateTime)
	assert.Equal(t, models.UnitMgDL, draft.Unit)
	assert.Empty(t, draft.GlucoseValue)
	assert.Empty(t, draft.DeviceName)
	assert.Empty(t, draft.Note)
}

func TestFormState_SettersIgnoredBeforeReady(t *testing.T) {
	f := newTestForm()
	f.AwaitPatient()

	f.SetGlucoseValue("120")
	f.SetNote("should not stick")

	assert.Empty(t, f.Draft().GlucoseValue)
	assert.Empty(t, f.Draft().Note)
}

func TestFormState_SetUnitRejectsUnknown(t *testing.T) {
	f := readyForm()

	f.SetUnit("g/L")
	assert.Equal(t, models.UnitMgDL, f.Draft().Unit)

	f.SetUnit(models.UnitMmolL)
	assert.Equal(t, models.UnitMmolL, f.Draft().Unit)
}

func TestFormState_SetDeviceNameDoesNotTouchUnitOrValue(t *testing.T) {
	f := readyForm()
	f.SetGlucoseValue("110")
	f.SetUnit(models.UnitMmolL)

	f.SetDeviceName("Accu-Chek")

	draft := f.Draft()
	assert.Equal(t, "Accu-Chek", draft.DeviceName)
	assert.Equal(t, "110", draft.GlucoseValue)
	assert.Equal(t, models.UnitMmolL, draft.Unit)
}

func TestFormState_CanSubmit(t *testing.T) {
	f := readyForm()
	assert.False(t, f.CanSubmit(), "empty value blocks submit")

	f.SetGlucoseValue("   ")
	assert.False(t, f.CanSubmit(), "whitespace value blocks submit")

	f.SetGlucoseValue("120")
	assert.True(t, f.CanSubmit())

	f.SetDateTime("")
	assert.False(t, f.CanSubmit(), "empty timestamp blocks submit")

	f.SetDateTime("2024-05-01T08:30")
	require.True(t, f.BeginSubmit())
	assert.False(t, f.CanSubmit(), "in-flight submission blocks submit")
}

func TestFormState_BeginSubmitIsExclusive(t *testing.T) {
	f := readyForm()
	f.SetGlucoseValue("120")

	require.True(t, f.BeginSubmit())
	assert.Equal(t, StateValidating, f.State())

	// 已在提交流程中，重复请求是无操作
	assert.False(t, f.BeginSubmit())

	f.MarkSubmitting()
	assert.Equal(t, StateSubmitting, f.State())
	assert.False(t, f.BeginSubmit())
}

func TestFormState_BeginSubmitRequiresReady(t *testing.T) {
	f := newTestForm()
	assert.False(t, f.BeginSubmit())

	f.AwaitPatient()
	assert.False(t, f.BeginSubmit())
}

func TestFormState_FinishSubmitFailureKeepsDraft(t *testing.T) {
	f := readyForm()
	f.SetGlucoseValue("120")
	f.SetNote("before lunch")

	require.True(t, f.BeginSubmit())
	f.MarkSubmitting()
	f.FinishSubmit(false)

	assert.Equal(t, StateReady, f.State())
	draft := f.Draft()
	assert.Equal(t, "120", draft.GlucoseValue)
	assert.Equal(t, "before lunch", draft.Note)
	assert.True(t, f.CanSubmit(), "user can retry without re-entering data")
}

func TestFormState_FinishSubmitSuccessResetsDraft(t *testing.T) {
	f := readyForm()
	f.SetGlucoseValue("120")
	f.SetDeviceName("Accu-Chek")
	f.SetNote("before lunch")
	f.SetUnit(models.UnitMmolL)

	require.True(t, f.BeginSubmit())
	f.MarkSubmitting()

	// 提交期间时间前进，重置后的时间取重置时刻
	f.now = func() time.Time { return testNow.Add(2 * time.Minute) }
	f.FinishSubmit(true)

	assert.Equal(t, StateReady, f.State())
	draft := f.Draft()
	assert.Equal(t, "2024-05-01T08:32", draft.DateTime)
	assert.Equal(t, models.UnitMgDL, draft.Unit)
	assert.Empty(t, draft.GlucoseValue)
	assert.Empty(t, draft.DeviceName)
	assert.Empty(t, draft.Note)
}

func TestFormState_FinishSubmitOutsideSubmissionIsNoop(t *testing.T) {
	f := readyForm()
	f.SetGlucoseValue("120")

	f.FinishSubmit(true)

	assert.Equal(t, StateReady, f.State())
	assert.Equal(t, "120", f.Draft().GlucoseValue)
}

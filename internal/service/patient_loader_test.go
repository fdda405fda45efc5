package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/store"
)

type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func newTestLoader(kv *fakeKV) *PatientLoader {
	return NewPatientLoader(store.NewHandoffStore(kv), zap.NewNop())
}

func TestPatientLoader_Load(t *testing.T) {
	kv := newFakeKV()
	kv.data[store.HandoffKey] = `{
		"id": 7, "patient_id": 42, "patient_code": "P1",
		"name": "Budi Santoso", "gender": "Laki-laki",
		"nik": "3501234567890001", "lab_number": "LN9"
	}`

	patient, err := newTestLoader(kv).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), patient.ID)
	assert.Equal(t, int64(42), patient.PatientID)
	assert.Equal(t, "P1", patient.PatientCode)
	assert.Equal(t, "Budi Santoso", patient.Name)
}

func TestPatientLoader_Absent(t *testing.T) {
	patient, err := newTestLoader(newFakeKV()).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoPatientSelected)
	assert.Nil(t, patient)
}

func TestPatientLoader_MalformedJSON(t *testing.T) {
	kv := newFakeKV()
	kv.data[store.HandoffKey] = `{"id": 7, "name":`

	patient, err := newTestLoader(kv).Load(context.Background())
	assert.ErrorIs(t, err, ErrInvalidPatientData)
	assert.Nil(t, patient)
}

func TestPatientLoader_MissingID(t *testing.T) {
	kv := newFakeKV()
	kv.data[store.HandoffKey] = `{"patient_id": 42, "patient_code": "P1", "name": "Budi"}`

	// 缺少必需的 id：不产生部分患者上下文
	patient, err := newTestLoader(kv).Load(context.Background())
	assert.ErrorIs(t, err, ErrInvalidPatientData)
	assert.Nil(t, patient)
}

func TestPatientLoader_LabNumberArrayNormalized(t *testing.T) {
	kv := newFakeKV()
	kv.data[store.HandoffKey] = `{"id": 7, "lab_number": ["LN9"]}`

	patient, err := newTestLoader(kv).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "LN9", string(patient.LabNumber))
}

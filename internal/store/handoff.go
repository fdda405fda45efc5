package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Rinaldi91/rsud-amri-tambunan-admin/internal/models"
)

// HandoffKey 选择患者页写入的固定键（与前端 sessionStorage 键一致）
const HandoffKey = "selectedPatientData"

// HandoffStore 跨页面传递已选患者的会话级存储
// 同一时刻最多保存一条序列化的患者记录，不设过期（生命周期跟随会话）
type HandoffStore struct {
	kv KV
}

func NewHandoffStore(kv KV) *HandoffStore {
	return &HandoffStore{kv: kv}
}

// Put 序列化并写入患者记录（覆盖旧值）
func (h *HandoffStore) Put(ctx context.Context, p *models.Patient) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal patient: %w", err)
	}
	return h.kv.Set(ctx, HandoffKey, string(data), 0)
}

// Get 读取序列化的患者记录，不存在时返回 ErrMiss
func (h *HandoffStore) Get(ctx context.Context) (string, error) {
	return h.kv.Get(ctx, HandoffKey)
}

// Remove 清除患者记录（提交成功或用户返回时调用）
func (h *HandoffStore) Remove(ctx context.Context) error {
	return h.kv.Del(ctx, HandoffKey)
}

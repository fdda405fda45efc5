package models

import "fmt"

// Device 设备目录中的测量设备记录
type Device struct {
	ID         int64  `json:"id"`
	DeviceID   string `json:"deviceId"`
	Timestamp  string `json:"timestamp"`
	Status     string `json:"status"`
	Details    string `json:"details"`
	DeviceType string `json:"deviceType"`
}

// Label 下拉选项展示文本
func (d *Device) Label() string {
	return fmt.Sprintf("%s (%s)", d.DeviceType, d.DeviceID)
}

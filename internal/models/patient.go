package models

import (
	"encoding/json"
	"fmt"
)

// LabNumber 检验单号
// 上游有时以标量下发，有时以单元素数组下发，解码时统一归一化为标量
type LabNumber string

func (l *LabNumber) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("invalid lab_number array: %w", err)
		}
		if len(list) == 0 {
			*l = ""
			return nil
		}
		*l = LabNumber(list[0])
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid lab_number: %w", err)
	}
	*l = LabNumber(s)
	return nil
}

// Patient 在上一页面（检验单列表）选中的患者记录
// 进入录入页后视为只读，提交成功后随交接存储一起销毁
type Patient struct {
	ID           int64     `json:"id"`
	PatientCode  string    `json:"patient_code"`
	PatientID    int64     `json:"patient_id"`
	NIK          string    `json:"nik"`
	NoRM         string    `json:"no_rm"`
	Name         string    `json:"name"`
	Gender       string    `json:"gender"`
	Barcode      string    `json:"barcode,omitempty"`
	PlaceOfBirth string    `json:"place_of_birth"`
	DateOfBirth  string    `json:"date_of_birth"`
	Address      string    `json:"address"`
	NumberPhone  string    `json:"number_phone"`
	Email        string    `json:"email"`
	LabNumber    LabNumber `json:"lab_number"`
}

// BarcodeValue 条码内容：优先使用病历号，缺失时退回到条码字段
func (p *Patient) BarcodeValue() string {
	if p.NoRM != "" {
		return p.NoRM
	}
	return p.Barcode
}

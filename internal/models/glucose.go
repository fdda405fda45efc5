package models

// 血糖录入的固定取值
const (
	UnitMgDL  = "mg/dL"
	UnitMmolL = "mmol/L"

	// MetodeElektrokimia 每条结果固定记录的检测方法
	MetodeElektrokimia = "Elektrokimia"

	// DeviceManualInput 未选择设备时的默认设备名
	DeviceManualInput = "Manual Input"
)

// Units 单位枚举（下拉选项顺序）
var Units = []string{UnitMgDL, UnitMmolL}

// ValidUnit 单位是否在枚举内
func ValidUnit(unit string) bool {
	for _, u := range Units {
		if u == unit {
			return true
		}
	}
	return false
}

// GlucoseTest 提交到后端的血糖结果载荷
type GlucoseTest struct {
	DateTime     string `json:"date_time"`
	GlucosValue  string `json:"glucos_value"`
	Unit         string `json:"unit"`
	PatientID    int64  `json:"patient_id"`
	DeviceName   string `json:"device_name"`
	Note         string `json:"note"`
	PatientCode  string `json:"patient_code"`
	LabNumber    string `json:"lab_number"`
	Metode       string `json:"metode"`
	IsValidation int    `json:"is_validation"`
}

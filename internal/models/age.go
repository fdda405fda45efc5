package models

import (
	"fmt"
	"time"
)

// CalculateAge 根据出生日期计算年龄展示文本："X tahun Y bulan Z hari"
// 月取整月差对 12 取余，天取总天数对 30 取余（与前端展示口径一致）
func CalculateAge(dateOfBirth string, now time.Time) string {
	birth, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		// 上游偶尔带时间部分
		birth, err = time.Parse(time.RFC3339, dateOfBirth)
		if err != nil {
			return ""
		}
	}
	if birth.After(now) {
		return ""
	}

	years := now.Year() - birth.Year()
	months := years*12 + int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}

	days := int(now.Sub(birth).Hours()/24) % 30

	return fmt.Sprintf("%d tahun %d bulan %d hari", years, months%12, days)
}

package domain

import "time"

const day = 24 * time.Hour

// Aging 账龄分类结果
type Aging struct {
	DaysOverdue int         `json:"days_overdue"`
	Bucket      AgingBucket `json:"bucket"`
}

// Classify 计算逾期天数与账龄区间
// 按整日截断 (不四舍五入), 未到期一律为 0 天
func Classify(dueDate, now time.Time) Aging {
	days := 0
	if now.After(dueDate) {
		days = int(now.Sub(dueDate) / day)
	}
	return Aging{DaysOverdue: days, Bucket: BucketFor(days)}
}

// BucketFor 逾期天数 -> 账龄区间
func BucketFor(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 0:
		return BucketCurrent
	case daysOverdue <= 30:
		return Bucket1To30
	case daysOverdue <= 60:
		return Bucket31To60
	case daysOverdue <= 90:
		return Bucket61To90
	default:
		return Bucket90Plus
	}
}

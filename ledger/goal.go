package ledger

import (
	"math"
	"time"

	"moneymate/models"
)

// SavingsPool 共享储蓄池：所有储蓄类账目的净和（包含达成目标时写入的负数冲抵）。
// 所有未达成的目标共用这一个余额，达成任何一个目标都会消耗其他目标的进度。
func SavingsPool(txs []models.Transaction) float64 {
	return SumByType(txs, models.TypeSavings)
}

// ProgressPercent 目标进度百分比，封顶 100，避免进度条溢出
func ProgressPercent(pool, target float64) int {
	if target <= 0 {
		return 0
	}
	p := math.Round(pool / target * 100)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return int(p)
}

// RawProgress 未封顶的进度百分比，用于识别超额储蓄
func RawProgress(pool, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return pool / target * 100
}

// DaysRemaining 距截止日期的剩余日历天数，已过期返回 0。
// 日期格式不合法时同样返回 0。
// 两端统一换算到 UTC 零点再求差，夏令时切换不会让天数少算一天。
func DaysRemaining(deadline string, now time.Time) int {
	d, err := time.Parse("2006-01-02", deadline)
	if err != nil {
		return 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(today).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

package ledger

import (
	"math"
	"sort"

	"moneymate/models"
)

// MonthAmount 某月的金额合计
type MonthAmount struct {
	Month    string  `json:"month"`     // 展示用，如 "Jan 2024"
	RawMonth string  `json:"raw_month"` // YYYY-MM
	Amount   float64 `json:"amount"`
}

// CategoryAmount 某类别的金额合计及占比
type CategoryAmount struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage int     `json:"percentage"`
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// displayMonth 把 YYYY-MM 转为 "Jan 2024" 形式，无法解析时原样返回
func displayMonth(rawMonth string) string {
	if len(rawMonth) != 7 || rawMonth[4] != '-' {
		return rawMonth
	}
	idx := int(rawMonth[5]-'0')*10 + int(rawMonth[6]-'0')
	if idx < 1 || idx > 12 {
		return rawMonth
	}
	return monthNames[idx-1] + " " + rawMonth[:4]
}

// MonthlySeries 按月份（YYYY-MM 前缀）聚合指定类型的账目，按月份升序返回
func MonthlySeries(txs []models.Transaction, txType string) []MonthAmount {
	byMonth := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != txType || len(tx.Date) < 7 {
			continue
		}
		byMonth[tx.Date[:7]] += tx.Amount
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	series := make([]MonthAmount, 0, len(months))
	for _, m := range months {
		series = append(series, MonthAmount{
			Month:    displayMonth(m),
			RawMonth: m,
			Amount:   byMonth[m],
		})
	}
	return series
}

// CategoryBreakdown 支出按类别聚合并计算占比，按金额降序返回。
// 第二个返回值为支出总额。
func CategoryBreakdown(txs []models.Transaction) ([]CategoryAmount, float64) {
	byCategory := make(map[string]float64)
	var total float64
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		byCategory[tx.Category] += tx.Amount
		total += tx.Amount
	}

	breakdown := make([]CategoryAmount, 0, len(byCategory))
	for cat, amount := range byCategory {
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(amount / total * 100))
		}
		breakdown = append(breakdown, CategoryAmount{
			Category:   cat,
			Amount:     amount,
			Percentage: percentage,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown, total
}

package api

import (
	"time"

	"moneymate/database"
	"moneymate/ledger"
	"moneymate/middleware"
	"moneymate/models"

	"github.com/gin-gonic/gin"
)

// ReportHandler 报表处理器
type ReportHandler struct{}

// NewReportHandler 创建报表处理器
func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

// monthOrDefault 读取 month 参数，为空时返回当前月份
func monthOrDefault(c *gin.Context) (string, bool) {
	month := c.Query("month")
	if month == "" {
		return time.Now().Format("2006-01"), true
	}
	if !validMonth(month) {
		return "", false
	}
	return month, true
}

// monthExpenses 查询某月的全部支出记录
func monthExpenses(userID uint, month string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := database.DB.
		Where("user_id = ? AND type = ? AND date LIKE ?", userID, models.TypeExpense, month+"%").
		Find(&txs).Error
	return txs, err
}

// BudgetAdherence 预算执行报表
// @Summary 预算执行报表
// @Description 对比某月各类别的预算与实际支出，给出剩余额度、使用百分比和超支状态
// @Tags 报表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 (2024-05)，默认当前月"
// @Success 200 {object} Response{data=[]ledger.AdherenceRow} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/reports/budget-adherence [get]
func (h *ReportHandler) BudgetAdherence(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	month, ok := monthOrDefault(c)
	if !ok {
		BadRequest(c, "月份格式错误，应为: 2006-01")
		return
	}

	// 预算按类别表连接取出类别名，支出记录里只存名字
	var lines []ledger.BudgetLine
	err := database.DB.Model(&models.Budget{}).
		Select("budgets.id AS budget_id, categories.name AS category, budgets.amount").
		Joins("JOIN categories ON categories.id = budgets.category_id").
		Where("budgets.user_id = ? AND budgets.month = ?", userID, month).
		Order("budgets.id ASC").
		Scan(&lines).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询预算失败"))
		return
	}

	expenses, err := monthExpenses(userID, month)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	Success(c, ledger.Adherence(lines, expenses, month))
}

// rangeOrDefault 读取日期区间参数，为空时取最近6个月
func rangeOrDefault(c *gin.Context) (string, string) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || !validDate(start) {
		start = time.Now().AddDate(0, -6, 0).Format("2006-01-02")
	}
	if end == "" || !validDate(end) {
		end = time.Now().Format("2006-01-02")
	}
	return start, end
}

// typedRange 查询某类型在日期区间内的记录
func typedRange(userID uint, txType, start, end string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := database.DB.
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?", userID, txType, start, end).
		Find(&txs).Error
	return txs, err
}

// MonthlySavings 月度储蓄趋势
// @Summary 月度储蓄趋势
// @Description 按月汇总储蓄净额（含负储蓄抵扣），默认最近6个月
// @Tags 报表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]ledger.MonthAmount} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/reports/monthly-savings [get]
func (h *ReportHandler) MonthlySavings(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	start, end := rangeOrDefault(c)

	txs, err := typedRange(userID, models.TypeSavings, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, ledger.MonthlySeries(txs, models.TypeSavings))
}

// MonthlySpending 月度支出趋势
// @Summary 月度支出趋势
// @Description 按月汇总支出总额，默认最近6个月
// @Tags 报表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]ledger.MonthAmount} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/reports/monthly-spending [get]
func (h *ReportHandler) MonthlySpending(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	start, end := rangeOrDefault(c)

	txs, err := typedRange(userID, models.TypeExpense, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, ledger.MonthlySeries(txs, models.TypeExpense))
}

// SpendingByCategoryResponse 按类别支出报表返回
type SpendingByCategoryResponse struct {
	Month      string                  `json:"month"`
	Total      float64                 `json:"total"`
	Categories []ledger.CategoryAmount `json:"categories"`
}

// SpendingByCategory 按类别支出分布
// @Summary 按类别支出分布
// @Description 统计某月支出按类别的金额与占比，默认当前月
// @Tags 报表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份 (2024-05)，默认当前月"
// @Success 200 {object} Response{data=SpendingByCategoryResponse} "获取成功"
// @Failure 400 {object} Response "月份格式错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/reports/spending-by-category [get]
func (h *ReportHandler) SpendingByCategory(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	month, ok := monthOrDefault(c)
	if !ok {
		BadRequest(c, "月份格式错误，应为: 2006-01")
		return
	}

	expenses, err := monthExpenses(userID, month)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	categories, total := ledger.CategoryBreakdown(expenses)
	Success(c, SpendingByCategoryResponse{
		Month:      month,
		Total:      total,
		Categories: categories,
	})
}

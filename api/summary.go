package api

import (
	"time"

	"moneymate/database"
	"moneymate/ledger"
	"moneymate/middleware"
	"moneymate/models"

	"github.com/gin-gonic/gin"
)

// SummaryHandler 财务概览处理器
type SummaryHandler struct{}

// NewSummaryHandler 创建财务概览处理器
func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

// GetSummary 获取财务概览
// @Summary 获取财务概览
// @Description 统计总收入、总支出、总储蓄、净余额以及当月收支。可按日期区间筛选
// @Tags 概览
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=ledger.Summary} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if start := c.Query("start_date"); start != "" && validDate(start) {
		query = query.Where("date >= ?", start)
	}
	if end := c.Query("end_date"); end != "" && validDate(end) {
		query = query.Where("date <= ?", end)
	}

	var txs []models.Transaction
	if err := query.Find(&txs).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	currentMonth := time.Now().Format("2006-01")
	Success(c, ledger.Summarize(txs, currentMonth))
}

package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"moneymate/database"
	"moneymate/middleware"
	"moneymate/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportRange 解析导出区间参数并查询账目
func exportRange(c *gin.Context, userID uint) ([]models.Transaction, string, string, bool) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	if startDate == "" || endDate == "" {
		BadRequest(c, "请提供开始日期和结束日期")
		return nil, "", "", false
	}
	if !validDate(startDate) {
		BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
		return nil, "", "", false
	}
	if !validDate(endDate) {
		BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
		return nil, "", "", false
	}

	var txs []models.Transaction
	if err := database.DB.Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate).
		Order("date DESC, id DESC").
		Find(&txs).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return nil, "", "", false
	}

	return txs, startDate, endDate, true
}

// ExportCSV 导出账目记录为 CSV
// @Summary 导出账目记录为 CSV
// @Description 根据日期范围导出账目记录为 CSV 文件
// @Tags 导出
// @Accept json
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	txs, startDate, endDate, ok := exportRange(c, userID)
	if !ok {
		return
	}

	// 生成 CSV
	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	// 写入表头
	headers := []string{"ID", "金额", "类型", "类别", "日期", "描述", "创建时间"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 写入数据
	for _, tx := range txs {
		row := []string{
			fmt.Sprintf("%d", tx.ID),
			fmt.Sprintf("%.2f", tx.Amount),
			tx.Type,
			tx.Category,
			tx.Date,
			tx.Description,
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 设置响应头
	filename := fmt.Sprintf("transactions_%s_%s.csv", startDate, endDate)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出账目记录为 JSON
// @Summary 导出账目记录为 JSON
// @Description 根据日期范围导出账目记录为 JSON 格式，附带汇总信息
// @Tags 导出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {object} Response "导出成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	txs, startDate, endDate, ok := exportRange(c, userID)
	if !ok {
		return
	}

	// 计算汇总信息
	var totalIncome, totalExpenses, totalSavings float64
	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			totalIncome += tx.Amount
		case models.TypeExpense:
			totalExpenses += tx.Amount
		case models.TypeSavings:
			totalSavings += tx.Amount
		}
	}

	Success(c, gin.H{
		"start_date":     startDate,
		"end_date":       endDate,
		"total_count":    len(txs),
		"total_income":   totalIncome,
		"total_expenses": totalExpenses,
		"total_savings":  totalSavings,
		"transactions":   txs,
	})
}

// ExportExcel 导出账目记录为 Excel
// @Summary 导出账目记录为 Excel
// @Description 根据日期范围导出账目记录为 xlsx 文件
// @Tags 导出
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	txs, startDate, endDate, ok := exportRange(c, userID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "账目记录"
	index, err := f.NewSheet(sheet)
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// 表头
	headers := []string{"ID", "金额", "类型", "类别", "日期", "描述", "创建时间"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	// 数据行
	for rowIdx, tx := range txs {
		values := []interface{}{
			tx.ID,
			tx.Amount,
			tx.Type,
			tx.Category,
			tx.Date,
			tx.Description,
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.xlsx", startDate, endDate)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

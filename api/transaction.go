package api

import (
	"strconv"
	"strings"
	"time"

	"moneymate/database"
	"moneymate/middleware"
	"moneymate/models"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 账目记录处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建账目记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// CreateTransactionRequest 创建账目请求
type CreateTransactionRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"99.99"`
	Type        string  `json:"type" binding:"required" example:"expense"`
	Category    string  `json:"category" binding:"required" example:"Food"`
	Date        string  `json:"date" binding:"required" example:"2024-05-10"`
	Description string  `json:"description" example:"Lunch"`
}

// UpdateTransactionRequest 更新账目请求
type UpdateTransactionRequest struct {
	Amount      float64 `json:"amount" binding:"omitempty,gt=0" example:"99.99"`
	Type        string  `json:"type" example:"expense"`
	Category    string  `json:"category" example:"Food"`
	Date        string  `json:"date" example:"2024-05-10"`
	Description string  `json:"description" example:"Lunch"`
}

// TransactionListRequest 账目列表请求
type TransactionListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	Type      string `form:"type" example:"expense"`
	Category  string `form:"category" example:"Food"`
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
}

// validDate 校验 YYYY-MM-DD 日期
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Create 创建账目记录
// @Summary 创建账目记录
// @Description 创建一条新的账目记录（收入/支出/储蓄），金额必须为正数
// @Tags 账目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "账目信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if !models.IsValidType(req.Type) {
		BadRequest(c, "无效的交易类型，应为: income/expense/savings")
		return
	}
	if !validDate(req.Date) {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	// 校验类别存在（用户自己的类别）
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		BadRequest(c, "类别不能为空")
		return
	}
	var cat models.Category
	if err := database.DB.Where("user_id = ? AND name = ?", userID, req.Category).First(&cat).Error; err != nil {
		BadRequest(c, "无效的类别，请先创建该类别")
		return
	}

	tx := models.Transaction{
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	}

	if err := database.DB.Create(&tx).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建账目失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", tx)
}

// List 获取账目列表
// @Summary 获取账目列表
// @Description 获取当前用户的账目列表，支持分页和按类型/类别/日期筛选
// @Tags 账目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param type query string false "类型筛选 (income/expense/savings)"
// @Param category query string false "类别筛选"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	// ISO 日期字符串可直接按字典序比较
	if req.StartDate != "" && validDate(req.StartDate) {
		query = query.Where("date >= ?", req.StartDate)
	}
	if req.EndDate != "" && validDate(req.EndDate) {
		query = query.Where("date <= ?", req.EndDate)
	}

	// 获取总数
	var total int64
	query.Count(&total)

	// 获取列表
	var txs []models.Transaction
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC, id DESC").Offset(offset).Limit(req.PageSize).Find(&txs).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     txs,
	})
}

// Get 获取单条账目记录
// @Summary 获取单条账目记录
// @Description 根据ID获取账目详情
// @Tags 账目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "账目ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var tx models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	Success(c, tx)
}

// Update 更新账目记录
// @Summary 更新账目记录
// @Description 原地更新指定的账目记录
// @Tags 账目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "账目ID"
// @Param request body UpdateTransactionRequest true "账目信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var tx models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 更新字段
	updates := make(map[string]interface{})
	if req.Amount > 0 {
		updates["amount"] = req.Amount
	}
	if req.Type != "" {
		if !models.IsValidType(req.Type) {
			BadRequest(c, "无效的交易类型，应为: income/expense/savings")
			return
		}
		updates["type"] = req.Type
	}
	if req.Category != "" {
		req.Category = strings.TrimSpace(req.Category)
		var cat models.Category
		if err := database.DB.Where("user_id = ? AND name = ?", userID, req.Category).First(&cat).Error; err != nil {
			BadRequest(c, "无效的类别，请先创建该类别")
			return
		}
		updates["category"] = req.Category
	}
	if req.Date != "" {
		if !validDate(req.Date) {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		updates["date"] = req.Date
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}

	if err := database.DB.Model(&tx).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	// 重新获取更新后的记录
	database.DB.First(&tx, tx.ID)
	SuccessWithMessage(c, "更新成功", tx)
}

// Delete 删除账目记录
// @Summary 删除账目记录
// @Description 删除指定的账目记录
// @Tags 账目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "账目ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var tx models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if err := database.DB.Delete(&tx).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

package api

import (
	"regexp"
	"strconv"

	"moneymate/database"
	"moneymate/middleware"
	"moneymate/models"

	"github.com/gin-gonic/gin"
)

// BudgetHandler 预算处理器
type BudgetHandler struct{}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// CreateBudgetRequest 创建预算请求
type CreateBudgetRequest struct {
	Month      string  `json:"month" binding:"required" example:"2024-05"`
	CategoryID uint    `json:"category_id" binding:"required" example:"1"`
	Amount     float64 `json:"amount" binding:"required,gt=0" example:"300"`
}

// UpdateBudgetRequest 更新预算请求
type UpdateBudgetRequest struct {
	Month      string  `json:"month" example:"2024-05"`
	CategoryID uint    `json:"category_id" example:"1"`
	Amount     float64 `json:"amount" binding:"omitempty,gt=0" example:"300"`
}

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// validMonth 校验 YYYY-MM 月份
func validMonth(s string) bool {
	return monthPattern.MatchString(s)
}

// Create 创建预算
// @Summary 创建预算
// @Description 为指定月份和类别创建预算，金额必须为正数。同月同类别允许多条预算并存
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if !validMonth(req.Month) {
		BadRequest(c, "月份格式错误，应为: 2006-01")
		return
	}

	// 类别必须属于当前用户
	var category models.Category
	if err := database.DB.Where("id = ? AND user_id = ?", req.CategoryID, userID).First(&category).Error; err != nil {
		BadRequest(c, "无效的类别")
		return
	}

	budget := models.Budget{
		UserID:     userID,
		Month:      req.Month,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
	}

	if err := database.DB.Create(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建预算失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", budget)
}

// List 获取预算列表
// @Summary 获取预算列表
// @Description 获取当前用户的预算，可按月份筛选
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query string false "月份筛选 (2024-05)"
// @Success 200 {object} Response{data=[]models.Budget} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if month := c.Query("month"); month != "" {
		if !validMonth(month) {
			BadRequest(c, "月份格式错误，应为: 2006-01")
			return
		}
		query = query.Where("month = ?", month)
	}

	var budgets []models.Budget
	if err := query.Order("month DESC, id ASC").Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询预算失败"))
		return
	}

	Success(c, budgets)
}

// Update 更新预算
// @Summary 更新预算
// @Description 更新指定预算的月份、类别或金额
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Param request body UpdateBudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "预算不存在")
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := make(map[string]interface{})
	if req.Month != "" {
		if !validMonth(req.Month) {
			BadRequest(c, "月份格式错误，应为: 2006-01")
			return
		}
		updates["month"] = req.Month
	}
	if req.CategoryID > 0 {
		var category models.Category
		if err := database.DB.Where("id = ? AND user_id = ?", req.CategoryID, userID).First(&category).Error; err != nil {
			BadRequest(c, "无效的类别")
			return
		}
		updates["category_id"] = req.CategoryID
	}
	if req.Amount > 0 {
		updates["amount"] = req.Amount
	}

	if err := database.DB.Model(&budget).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新预算失败"))
		return
	}

	database.DB.First(&budget, budget.ID)
	SuccessWithMessage(c, "更新成功", budget)
}

// Delete 删除预算
// @Summary 删除预算
// @Description 删除指定的预算
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "预算不存在")
		return
	}

	if err := database.DB.Delete(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除预算失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

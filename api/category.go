package api

import (
	"strconv"
	"strings"

	"moneymate/database"
	"moneymate/middleware"
	"moneymate/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryRequest 类别请求
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50" example:"Food"`
	Type string `json:"type" example:"expense"`
}

// List 获取类别列表
// @Summary 获取类别列表
// @Description 获取当前用户的所有类别，首次访问时自动写入默认类别
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	// 老用户可能没有默认类别，补种一次
	if err := database.SeedCategoriesForUser(database.DB, userID); err != nil {
		InternalError(c, SafeErrorMessage(err, "初始化类别失败"))
		return
	}

	var categories []models.Category
	if err := database.DB.Where("user_id = ?", userID).Order("id ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询类别失败"))
		return
	}

	Success(c, categories)
}

// Create 创建类别
// @Summary 创建类别
// @Description 为当前用户创建一个新类别，同名类别不可重复
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "类别名称不能为空")
		return
	}

	// 默认按支出类别创建
	if req.Type == "" {
		req.Type = models.TypeExpense
	}
	if !models.IsValidType(req.Type) {
		BadRequest(c, "无效的类别类型，应为: income/expense/savings")
		return
	}

	// 检查同名类别
	var existing models.Category
	if err := database.DB.Where("user_id = ? AND name = ?", userID, req.Name).First(&existing).Error; err == nil {
		BadRequest(c, "类别已存在")
		return
	}

	category := models.Category{
		UserID: userID,
		Name:   req.Name,
		Type:   req.Type,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建类别失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", category)
}

// Update 更新类别
// @Summary 更新类别
// @Description 重命名类别。已有账目记录中的类别名不会跟随变更
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var category models.Category
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "类别名称不能为空")
		return
	}

	// 检查新名称是否和其他类别冲突
	var existing models.Category
	if err := database.DB.Where("user_id = ? AND name = ? AND id != ?", userID, req.Name, id).First(&existing).Error; err == nil {
		BadRequest(c, "类别已存在")
		return
	}

	if err := database.DB.Model(&category).Update("name", req.Name).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新类别失败"))
		return
	}

	category.Name = req.Name
	SuccessWithMessage(c, "更新成功", category)
}

// Delete 删除类别
// @Summary 删除类别
// @Description 删除类别。引用该类别的账目记录不会被删除，仍保留原类别名
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "类别不存在"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var category models.Category
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		NotFound(c, "类别不存在")
		return
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除类别失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

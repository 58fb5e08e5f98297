package api

import (
	"errors"
	"io"
	"log"
	"strconv"
	"time"

	"moneymate/config"
	"moneymate/database"
	"moneymate/ledger"
	"moneymate/middleware"
	"moneymate/models"
	"moneymate/service"

	"github.com/gin-gonic/gin"
)

// GoalHandler 储蓄目标处理器
type GoalHandler struct {
	email *service.EmailService
}

// NewGoalHandler 创建储蓄目标处理器
func NewGoalHandler(cfg *config.Config) *GoalHandler {
	return &GoalHandler{email: service.NewEmailService(&cfg.Email)}
}

// CreateGoalRequest 创建储蓄目标请求
type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=100" example:"New Laptop"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0" example:"1500"`
	Deadline     string  `json:"deadline" binding:"required" example:"2024-12-31"`
}

// UpdateGoalRequest 更新储蓄目标请求
type UpdateGoalRequest struct {
	Name         string  `json:"name" example:"New Laptop"`
	TargetAmount float64 `json:"target_amount" binding:"omitempty,gt=0" example:"1500"`
	Deadline     string  `json:"deadline" example:"2024-12-31"`
}

// AchieveGoalRequest 达成储蓄目标请求
type AchieveGoalRequest struct {
	ExpenseCategory string `json:"expense_category" example:"Electronics"`
	Description     string `json:"description" example:"Bought the laptop"`
}

// GoalView 储蓄目标视图，带有共享储蓄池计算出的进度
type GoalView struct {
	models.SavingsGoal
	CurrentSavings  float64 `json:"current_savings"`
	ProgressPercent int     `json:"progress_percent"`
	ProgressRaw     float64 `json:"progress_raw"`
	DaysRemaining   int     `json:"days_remaining"`
}

// goalView 基于储蓄池构造目标视图
func goalView(goal models.SavingsGoal, pool float64, now time.Time) GoalView {
	return GoalView{
		SavingsGoal:     goal,
		CurrentSavings:  pool,
		ProgressPercent: ledger.ProgressPercent(pool, goal.TargetAmount),
		ProgressRaw:     ledger.RawProgress(pool, goal.TargetAmount),
		DaysRemaining:   ledger.DaysRemaining(goal.Deadline, now),
	}
}

// savingsPool 计算用户当前的储蓄池余额
func savingsPool(userID uint) (float64, error) {
	var txs []models.Transaction
	if err := database.DB.Where("user_id = ? AND type = ?", userID, models.TypeSavings).Find(&txs).Error; err != nil {
		return 0, err
	}
	return ledger.SavingsPool(txs), nil
}

// List 获取储蓄目标列表
// @Summary 获取储蓄目标列表
// @Description 获取当前用户的所有储蓄目标。所有目标共享同一个储蓄池，进度按各自目标金额折算
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]GoalView} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings-goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var goals []models.SavingsGoal
	if err := database.DB.Where("user_id = ?", userID).Order("id ASC").Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询储蓄目标失败"))
		return
	}

	pool, err := savingsPool(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "计算储蓄余额失败"))
		return
	}

	now := time.Now()
	views := make([]GoalView, 0, len(goals))
	for _, goal := range goals {
		views = append(views, goalView(goal, pool, now))
	}

	Success(c, views)
}

// Get 获取单个储蓄目标
// @Summary 获取单个储蓄目标
// @Description 根据ID获取储蓄目标详情及进度
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response{data=GoalView} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/savings-goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var goal models.SavingsGoal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}

	pool, err := savingsPool(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "计算储蓄余额失败"))
		return
	}

	Success(c, goalView(goal, pool, time.Now()))
}

// Create 创建储蓄目标
// @Summary 创建储蓄目标
// @Description 创建新的储蓄目标，目标金额必须为正数
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=models.SavingsGoal} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings-goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if !validDate(req.Deadline) {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	goal := models.SavingsGoal{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建储蓄目标失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", goal)
}

// Update 更新储蓄目标
// @Summary 更新储蓄目标
// @Description 更新储蓄目标的名称、目标金额或截止日期
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body UpdateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=models.SavingsGoal} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/savings-goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var goal models.SavingsGoal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.TargetAmount > 0 {
		updates["target_amount"] = req.TargetAmount
	}
	if req.Deadline != "" {
		if !validDate(req.Deadline) {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		updates["deadline"] = req.Deadline
	}

	if err := database.DB.Model(&goal).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新储蓄目标失败"))
		return
	}

	database.DB.First(&goal, goal.ID)
	SuccessWithMessage(c, "更新成功", goal)
}

// Delete 删除储蓄目标
// @Summary 删除储蓄目标
// @Description 删除储蓄目标。已达成目标产生的账目记录不会被回滚
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/savings-goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var goal models.SavingsGoal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}

	if err := database.DB.Delete(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除储蓄目标失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// Achieve 达成储蓄目标
// @Summary 达成储蓄目标
// @Description 从共享储蓄池中兑现目标：生成一笔支出和一笔负储蓄，并将目标标记为已达成。整个操作在一个事务内完成
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body AchieveGoalRequest true "兑现信息"
// @Success 200 {object} Response{data=service.AchieveResult} "达成成功"
// @Failure 400 {object} Response "参数错误或储蓄余额不足"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "目标不存在"
// @Failure 409 {object} Response "目标已达成"
// @Router /api/v1/savings-goals/{id}/achieve [post]
func (h *GoalHandler) Achieve(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	// 两个字段都可选，空请求体等同于空对象，类别校验交给下层
	var req AchieveGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	result, err := service.AchieveGoal(database.DB, userID, uint(id), req.ExpenseCategory, req.Description)
	if err != nil {
		RespondLedgerError(c, err, "达成目标失败")
		return
	}

	h.notifyAchieved(userID, result)
	SuccessWithMessage(c, "目标达成", result)
}

// notifyAchieved 达成后给用户发通知邮件。
// 邮件服务未启用或用户没有邮箱时跳过，发送失败只记日志不影响主流程。
func (h *GoalHandler) notifyAchieved(userID uint, result *service.AchieveResult) {
	if h.email == nil || !h.email.Enabled() {
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil || user.Email == "" {
		return
	}

	go func() {
		if err := h.email.SendGoalAchievedEmail(user.Email, user.Username, result.GoalName, result.TargetAmount); err != nil {
			log.Printf("发送目标达成邮件失败(用户 %d): %v", userID, err)
		}
	}()
}

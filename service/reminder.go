package service

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"moneymate/config"
	"moneymate/ledger"
	"moneymate/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService 储蓄目标到期提醒
// 每天定时扫描未达成且临近截止日期的目标，给对应用户发提醒邮件。
type ReminderService struct {
	db    *gorm.DB
	email *EmailService
	cfg   *config.ReminderConfig
	cron  *cron.Cron
}

// NewReminderService 创建提醒服务
func NewReminderService(db *gorm.DB, email *EmailService, cfg *config.ReminderConfig) *ReminderService {
	return &ReminderService{
		db:    db,
		email: email,
		cfg:   cfg,
		cron:  cron.New(cron.WithLocation(time.Local)),
	}
}

// Start 注册每日任务并启动调度器
func (s *ReminderService) Start() error {
	spec, err := dailySpec(s.cfg.DailyAt)
	if err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("到期提醒已启动，每天 %s 扫描（提前 %d 天提醒）", s.cfg.DailyAt, s.cfg.WindowDays)
	return nil
}

// Stop 停止调度器，等待正在执行的任务结束
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunOnce 执行一轮扫描
func (s *ReminderService) RunOnce() {
	now := time.Now()
	cutoff := now.AddDate(0, 0, s.cfg.WindowDays).Format("2006-01-02")
	today := now.Format("2006-01-02")

	var goals []models.SavingsGoal
	if err := s.db.Where("achieved = ? AND deadline >= ? AND deadline <= ?", false, today, cutoff).
		Find(&goals).Error; err != nil {
		log.Printf("扫描储蓄目标失败: %v", err)
		return
	}

	for _, goal := range goals {
		var user models.User
		if err := s.db.First(&user, goal.UserID).Error; err != nil || user.Email == "" {
			continue
		}

		var savings []models.Transaction
		if err := s.db.Where("user_id = ? AND type = ?", goal.UserID, models.TypeSavings).
			Find(&savings).Error; err != nil {
			log.Printf("读取用户 %d 储蓄记录失败: %v", goal.UserID, err)
			continue
		}
		pool := ledger.SavingsPool(savings)
		daysLeft := ledger.DaysRemaining(goal.Deadline, now)

		if err := s.email.SendGoalReminderEmail(user.Email, user.Username, goal.Name, daysLeft, pool, goal.TargetAmount); err != nil {
			log.Printf("发送提醒邮件失败(用户 %d, 目标 %d): %v", goal.UserID, goal.ID, err)
		}
	}
}

// dailySpec 把 HH:MM 转成 cron 表达式
func dailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("时间格式错误，应为 HH:MM: %s", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("小时不合法: %s", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("分钟不合法: %s", parts[1])
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

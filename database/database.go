package database

import (
	"fmt"
	"log"

	"moneymate/config"
	"moneymate/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
// driver 支持 mysql 与 sqlite（默认 sqlite，便于单机部署）
func Init(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DBName,
			cfg.Database.Charset,
		)
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		path := cfg.Database.Path
		if path == "" {
			path = "moneymate.db"
		}
		dialector = sqlite.Open(path)
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Category{},
		&models.Budget{},
		&models.SavingsGoal{},
	); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}

// SeedCategoriesForUser 为没有任何类别的用户写入默认类别。
// 注册和首次读取类别列表时调用，已有类别的用户直接跳过。
func SeedCategoriesForUser(db *gorm.DB, userID uint) error {
	var count int64
	if err := db.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	cats := models.DefaultCategories()
	for i := range cats {
		cats[i].UserID = userID
	}
	if err := db.Create(&cats).Error; err != nil {
		return fmt.Errorf("写入默认类别失败: %w", err)
	}
	log.Printf("已为用户 %d 写入 %d 个默认类别", userID, len(cats))
	return nil
}

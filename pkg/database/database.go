package database

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, runMigration bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if runMigration {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		Seed(db)
	}

	return db, nil
}

// Migrate 创建或更新全部业务表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ProgrammingLanguage{},
		&model.Course{},
		&model.Flashcard{},
		&model.FlashcardProgress{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.QuizSession{},
		&model.VirtualPet{},
		&model.UserProgress{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Checkin{},
	)
}

// Seed 插入默认的语言目录与成就定义，已有数据时不重复插入
func Seed(db *gorm.DB) {
	var langCount int64
	db.Model(&model.ProgrammingLanguage{}).Count(&langCount)
	if langCount == 0 {
		defaultLanguages := []model.ProgrammingLanguage{
			{Name: "Python", Description: "适合初学者的通用语言", Color: "#3776AB", Difficulty: model.Beginner, IsActive: true},
			{Name: "JavaScript", Description: "网页开发的基础语言", Color: "#F7DF1E", Difficulty: model.Beginner, IsActive: true},
			{Name: "Scratch", Description: "积木式编程启蒙", Color: "#F9A825", Difficulty: model.Beginner, IsActive: true},
			{Name: "HTML & CSS", Description: "搭建自己的第一个网页", Color: "#E34F26", Difficulty: model.Beginner, IsActive: true},
		}
		for _, l := range defaultLanguages {
			db.Create(&l)
		}
	}

	var achCount int64
	db.Model(&model.Achievement{}).Count(&achCount)
	if achCount == 0 {
		defaultAchievements := []model.Achievement{
			{Name: "初来乍到", Description: "获得第一批100点XP", RequirementType: "xp", RequirementVal: 100, XPReward: 0, IsActive: true},
			{Name: "小有所成", Description: "累计获得500点XP", RequirementType: "xp", RequirementVal: 500, XPReward: 50, IsActive: true},
			{Name: "学霸养成", Description: "累计获得2000点XP", RequirementType: "xp", RequirementVal: 2000, XPReward: 100, IsActive: true},
			{Name: "三日之约", Description: "连续签到3天", RequirementType: "streak", RequirementVal: 3, XPReward: 30, IsActive: true},
			{Name: "七日坚持", Description: "连续签到7天", RequirementType: "streak", RequirementVal: 7, XPReward: 70, IsActive: true},
			{Name: "月度达人", Description: "连续签到30天", RequirementType: "streak", RequirementVal: 30, XPReward: 300, IsActive: true},
			{Name: "首战告捷", Description: "通过第一个测验", RequirementType: "quizzes_passed", RequirementVal: 1, XPReward: 20, IsActive: true},
			{Name: "测验高手", Description: "通过10个不同的测验", RequirementType: "quizzes_passed", RequirementVal: 10, XPReward: 100, IsActive: true},
			{Name: "记忆新星", Description: "完全掌握5张闪卡", RequirementType: "cards_mastered", RequirementVal: 5, XPReward: 25, IsActive: true},
			{Name: "闪卡大师", Description: "完全掌握50张闪卡", RequirementType: "cards_mastered", RequirementVal: 50, XPReward: 150, IsActive: true},
		}
		for _, a := range defaultAchievements {
			db.Create(&a)
		}
	}
}

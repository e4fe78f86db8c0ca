package repository

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/user/cinecritic/internal/apperr"
)

// InitDB 初始化数据库连接并迁移表结构
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		// 唯一约束冲突转为 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取连接池失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 自动迁移全部表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRecord{}, &movieRecord{}, &reviewRecord{}, &superReviewRecord{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// Repositories 仓库集合
type Repositories struct {
	DB          *gorm.DB
	User        *UserRepository
	Movie       *MovieRepository
	Review      *ReviewRepository
	SuperReview *SuperReviewRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:          db,
		User:        NewUserRepository(db),
		Movie:       NewMovieRepository(db),
		Review:      NewReviewRepository(db),
		SuperReview: NewSuperReviewRepository(db),
	}
}

// wrap 包装数据库错误，唯一约束冲突转为 Conflict
func wrap(err error, code, conflictMsg string, kv ...any) error {
	if err == nil {
		return nil
	}
	if conflictMsg != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(conflictMsg)
	}
	return oops.In("repository").Code(code).With(kv...).Wrap(err)
}

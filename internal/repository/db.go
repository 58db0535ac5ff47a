package repository

import (
	"fmt"

	"github.com/user/filmfest/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接并迁移表结构
func InitDB(databaseURL string) (*gorm.DB, error) {
	// TranslateError 让唯一索引冲突以 gorm.ErrDuplicatedKey 暴露出来，
	// 指派去重依赖这一点
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("表结构迁移失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 迁移评选流程涉及的全部表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Movie{},
		&model.MovieJury{},
		&model.Vote{},
		&model.VoteHistory{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB         *gorm.DB
	User       *UserRepository
	Movie      *MovieRepository
	Assignment *AssignmentRepository
	Vote       *VoteRepository
	Stats      *StatsRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:         db,
		User:       NewUserRepository(db),
		Movie:      NewMovieRepository(db),
		Assignment: NewAssignmentRepository(db),
		Vote:       NewVoteRepository(db),
		Stats:      NewStatsRepository(db),
	}
}

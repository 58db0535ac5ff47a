package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/filmfest/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 建一个内存 SQLite 库
// 连接数限制为 1：内存库的每个新连接都是一个独立的空库
func setupTestDB(t *testing.T) *Repositories {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))

	return NewRepositories(db)
}

// seedUser 造一个用户
func seedUser(t *testing.T, repos *Repositories, name string, role model.Role) *model.User {
	t.Helper()

	user, err := repos.User.Create(fmt.Sprintf("%s@test.local", name), name, "password-123", role)
	require.NoError(t, err)
	return user
}

// seedMovie 造一部影片
func seedMovie(t *testing.T, repos *Repositories, producerID int, title string) *model.Movie {
	t.Helper()

	movie := &model.Movie{
		Title:      title,
		ProducerID: producerID,
	}
	require.NoError(t, repos.Movie.Create(movie))
	return movie
}

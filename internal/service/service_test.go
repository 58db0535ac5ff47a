package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/filmfest/internal/model"
	"github.com/user/filmfest/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv 一套完整的服务和底层仓库
type testEnv struct {
	repos       *repository.Repositories
	selection   *SelectionService
	assignment  *AssignmentService
	voting      *VotingService
	aggregation *AggregationService
}

// setupEnv 内存 SQLite 上的全套服务
// 连接数限制为 1：内存库的每个新连接都是一个独立的空库
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrate(db))

	repos := repository.NewRepositories(db)
	return &testEnv{
		repos:       repos,
		selection:   NewSelectionService(repos),
		assignment:  NewAssignmentService(repos),
		voting:      NewVotingService(repos),
		aggregation: NewAggregationService(repos),
	}
}

func (e *testEnv) user(t *testing.T, name string, role model.Role) *model.User {
	t.Helper()

	user, err := e.repos.User.Create(fmt.Sprintf("%s@test.local", name), name, "password-123", role)
	require.NoError(t, err)
	return user
}

func (e *testEnv) movie(t *testing.T, producerID int, title string) *model.Movie {
	t.Helper()

	movie := &model.Movie{Title: title, ProducerID: producerID}
	require.NoError(t, e.repos.Movie.Create(movie))
	return movie
}

func (e *testEnv) actorFor(user *model.User) Actor {
	return Actor{ID: user.ID, Role: user.Role}
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/filmfest/internal/model"
)

func TestTransitionIsAdminOnly(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	jury := env.user(t, "jury", model.RoleJury)
	movie := env.movie(t, producer.ID, "长夜")

	// 制片人不能自己推进状态
	_, err := env.selection.Transition(movie.ID, "candidate", env.actorFor(producer))
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.selection.Transition(movie.ID, "candidate", env.actorFor(jury))
	require.ErrorIs(t, err, ErrUnauthorized)

	updated, err := env.selection.Transition(movie.ID, "candidate", env.actorFor(admin))
	require.NoError(t, err)
	assert.Equal(t, model.StatusCandidate, updated.SelectionStatus)
}

func TestTransitionIsPermissive(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	movie := env.movie(t, producer.ID, "回声")

	// 状态机不限制跳转路径：refused 也能直接改成 awarded
	for _, target := range []string{"refused", "awarded", "submitted", "finalist"} {
		updated, err := env.selection.Transition(movie.ID, target, env.actorFor(admin))
		require.NoError(t, err)
		assert.Equal(t, model.SelectionStatus(target), updated.SelectionStatus)
	}
}

func TestTransitionValidation(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	movie := env.movie(t, producer.ID, "空谷")

	_, err := env.selection.Transition(movie.ID, "banana", env.actorFor(admin))
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = env.selection.Transition(movie.ID+999, "candidate", env.actorFor(admin))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBulkTransitionReportsPartialFailure(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	movieA := env.movie(t, producer.ID, "影片A")
	movieB := env.movie(t, producer.ID, "影片B")
	missing := movieB.ID + 999

	results := env.selection.BulkTransition([]int{movieA.ID, missing, movieB.ID}, "refused", env.actorFor(admin))
	require.Len(t, results, 3)

	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].OK)

	// 失败的那条不影响其余影片落库
	a, err := env.repos.Movie.FindByID(movieA.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRefused, a.SelectionStatus)
	b, err := env.repos.Movie.FindByID(movieB.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRefused, b.SelectionStatus)
}

func TestDeleteMovieRequiresAdmin(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	producer := env.user(t, "producer", model.RoleProducer)
	admin := env.user(t, "admin", model.RoleAdmin)
	movie := env.movie(t, producer.ID, "待删除")

	require.ErrorIs(t, env.selection.DeleteMovie(movie.ID, env.actorFor(producer)), ErrUnauthorized)
	require.NoError(t, env.selection.DeleteMovie(movie.ID, env.actorFor(admin)))
	require.ErrorIs(t, env.selection.DeleteMovie(movie.ID, env.actorFor(admin)), ErrNotFound)
}

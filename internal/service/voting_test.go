package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/filmfest/internal/model"
)

func TestVoteRequiresAssignment(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	producer := env.user(t, "producer", model.RoleProducer)
	jury := env.user(t, "jury", model.RoleJury)
	movie := env.movie(t, producer.ID, "未指派")

	_, err := env.voting.CastOrUpdate(movie.ID, jury.ID, "YES", "", env.actorFor(jury))
	require.ErrorIs(t, err, ErrNotAssigned)

	// 失败的投票什么都不写
	count, err := env.repos.Vote.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestVoteAuthorization(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	jury := env.user(t, "jury", model.RoleJury)
	other := env.user(t, "other", model.RoleJury)
	movie := env.movie(t, producer.ID, "授权测试")

	_, err := env.assignment.Assign(movie.ID, jury.ID, env.actorFor(admin))
	require.NoError(t, err)

	// 只有被指派的评委本人能投
	_, err = env.voting.CastOrUpdate(movie.ID, jury.ID, "YES", "", env.actorFor(producer))
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.voting.CastOrUpdate(movie.ID, jury.ID, "YES", "", env.actorFor(other))
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.voting.CastOrUpdate(movie.ID, jury.ID, "MAYBE", "", env.actorFor(jury))
	require.ErrorIs(t, err, ErrInvalidEvaluation)

	_, err = env.voting.CastOrUpdate(movie.ID, jury.ID, "YES", "", env.actorFor(jury))
	require.NoError(t, err)
}

func TestAssignmentGuards(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	jury := env.user(t, "jury", model.RoleJury)
	movie := env.movie(t, producer.ID, "指派守卫")

	// 目标不是评委
	_, err := env.assignment.Assign(movie.ID, producer.ID, env.actorFor(admin))
	require.ErrorIs(t, err, ErrRoleMismatch)

	// 目标不存在
	_, err = env.assignment.Assign(movie.ID, jury.ID+999, env.actorFor(admin))
	require.ErrorIs(t, err, ErrNotFound)
	_, err = env.assignment.Assign(movie.ID+999, jury.ID, env.actorFor(admin))
	require.ErrorIs(t, err, ErrNotFound)

	// 非管理员不能指派
	_, err = env.assignment.Assign(movie.ID, jury.ID, env.actorFor(producer))
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.assignment.Assign(movie.ID, jury.ID, env.actorFor(admin))
	require.NoError(t, err)

	// 重复指派
	_, err = env.assignment.Assign(movie.ID, jury.ID, env.actorFor(admin))
	require.ErrorIs(t, err, ErrDuplicateAssignment)

	// 首位评委到位后影片进入 assigned
	updated, err := env.repos.Movie.FindByID(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAssigned, updated.SelectionStatus)
}

// 评审场景：J1 投 YES、J2 投 NO，随后 J1 改投 TO_DISCUSS
func TestRevoteScenario(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	j1 := env.user(t, "j1", model.RoleJury)
	j2 := env.user(t, "j2", model.RoleJury)
	movie := env.movie(t, producer.ID, "影片A")

	_, err := env.assignment.Assign(movie.ID, j1.ID, env.actorFor(admin))
	require.NoError(t, err)
	_, err = env.assignment.Assign(movie.ID, j2.ID, env.actorFor(admin))
	require.NoError(t, err)

	_, err = env.voting.CastOrUpdate(movie.ID, j1.ID, "YES", "节奏很好", env.actorFor(j1))
	require.NoError(t, err)
	_, err = env.voting.CastOrUpdate(movie.ID, j2.ID, "NO", "", env.actorFor(j2))
	require.NoError(t, err)

	dist, err := env.aggregation.VoteDistribution()
	require.NoError(t, err)
	assert.EqualValues(t, 1, dist.Yes)
	assert.EqualValues(t, 1, dist.No)
	assert.EqualValues(t, 0, dist.ToDiscuss)

	// J1 改投
	vote, err := env.voting.CastOrUpdate(movie.ID, j1.ID, "TO_DISCUSS", "想再聊聊", env.actorFor(j1))
	require.NoError(t, err)
	assert.Equal(t, 1, vote.ModificationCount)

	dist, err = env.aggregation.VoteDistribution()
	require.NoError(t, err)
	assert.EqualValues(t, 0, dist.Yes)
	assert.EqualValues(t, 1, dist.No)
	assert.EqualValues(t, 1, dist.ToDiscuss)

	// 历史里记着改票前的 YES
	history, err := env.voting.History(vote.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.EvaluationYes, history[0].Note)
	assert.Equal(t, "节奏很好", history[0].Comments)
}

// 50 个并发改票最终收敛到 modification_count == 49，
// 不会出现第二行投票，也不会丢失或重复历史
func TestConcurrentRevotesReconcile(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	jury := env.user(t, "jury", model.RoleJury)
	movie := env.movie(t, producer.ID, "并发改票")

	_, err := env.assignment.Assign(movie.ID, jury.ID, env.actorFor(admin))
	require.NoError(t, err)

	evals := []string{"YES", "NO", "TO_DISCUSS"}
	actor := env.actorFor(jury)

	const total = 50
	var wg sync.WaitGroup
	errs := make(chan error, total)
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.voting.CastOrUpdate(movie.ID, jury.ID, evals[i%len(evals)], "", actor)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	votes, err := env.repos.Vote.ListByMovie(movie.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, total-1, votes[0].ModificationCount)

	histCount, err := env.repos.Vote.CountHistory(votes[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, total-1, histCount)
}

func TestVoteHistoryNotFound(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	_, err := env.voting.History(12345)
	require.ErrorIs(t, err, ErrNotFound)
}

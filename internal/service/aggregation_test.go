package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/filmfest/internal/model"
)

func TestScoreForMissingMovie(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	_, err := env.aggregation.ScoreFor(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLeaderboardThroughServices(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	strong := env.movie(t, producer.ID, "高分片")
	weak := env.movie(t, producer.ID, "低分片")

	for i := 0; i < 3; i++ {
		jury := env.user(t, fmt.Sprintf("jury%d", i), model.RoleJury)
		_, err := env.assignment.Assign(strong.ID, jury.ID, env.actorFor(admin))
		require.NoError(t, err)
		_, err = env.assignment.Assign(weak.ID, jury.ID, env.actorFor(admin))
		require.NoError(t, err)

		_, err = env.voting.CastOrUpdate(strong.ID, jury.ID, "YES", "", env.actorFor(jury))
		require.NoError(t, err)
		_, err = env.voting.CastOrUpdate(weak.ID, jury.ID, "NO", "", env.actorFor(jury))
		require.NoError(t, err)
	}

	entries, err := env.aggregation.Leaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, strong.ID, entries[0].MovieID)
	assert.EqualValues(t, 6, entries[0].Score)
	assert.Equal(t, weak.ID, entries[1].MovieID)
	assert.EqualValues(t, 0, entries[1].Score)

	// limit 截断
	entries, err = env.aggregation.Leaderboard(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, strong.ID, entries[0].MovieID)
}

func TestVoteTrendFillsMissingDays(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	jury := env.user(t, "jury", model.RoleJury)
	movie := env.movie(t, producer.ID, "趋势测试")

	_, err := env.assignment.Assign(movie.ID, jury.ID, env.actorFor(admin))
	require.NoError(t, err)
	_, err = env.voting.CastOrUpdate(movie.ID, jury.ID, "YES", "", env.actorFor(jury))
	require.NoError(t, err)

	trend, err := env.aggregation.VoteTrend(7)
	require.NoError(t, err)
	require.Len(t, trend, 7)

	// 票都是今天投的，总数对得上，没投票的日期补零
	var total int64
	for _, p := range trend {
		total += p.Count
		assert.NotEmpty(t, p.Date)
	}
	assert.EqualValues(t, 1, total)

	// 日期升序且无空洞
	for i := 1; i < len(trend); i++ {
		prev, err := time.Parse("2006-01-02", trend[i-1].Date)
		require.NoError(t, err)
		cur, err := time.Parse("2006-01-02", trend[i].Date)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur)
	}
}

func TestPlatformCounters(t *testing.T) {
	t.Parallel()
	env := setupEnv(t)

	admin := env.user(t, "admin", model.RoleAdmin)
	producer := env.user(t, "producer", model.RoleProducer)
	jury := env.user(t, "jury", model.RoleJury)

	movieA := env.movie(t, producer.ID, "甲")
	env.movie(t, producer.ID, "乙")

	_, err := env.assignment.Assign(movieA.ID, jury.ID, env.actorFor(admin))
	require.NoError(t, err)
	_, err = env.voting.CastOrUpdate(movieA.ID, jury.ID, "TO_DISCUSS", "", env.actorFor(jury))
	require.NoError(t, err)

	counters, err := env.aggregation.PlatformCounters()
	require.NoError(t, err)
	assert.EqualValues(t, 1, counters.TotalVotes)
	assert.EqualValues(t, 1, counters.MoviesByStatus[model.StatusAssigned])
	assert.EqualValues(t, 1, counters.MoviesByStatus[model.StatusSubmitted])
}

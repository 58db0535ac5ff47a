package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/filmfest/internal/model"
)

func TestFirstVoteHasNoHistory(t *testing.T) {
	t.Parallel()
	repos := setupTestDB(t)

	producer := seedUser(t, repos, "producer", model.RoleProducer)
	jury := seedUser(t, repos, "jury", model.RoleJury)
	movie := seedMovie(t, repos, producer.ID, "铁皮鼓手")

	vote, err := repos.Vote.CastOrUpdate(movie.ID, jury.ID, model.EvaluationYes, "很有张力")
	require.NoError(t, err)
	assert.Equal(t, 0, vote.ModificationCount)
	assert.Equal(t, model.EvaluationYes, vote.Evaluation)

	count, err := repos.Vote.CountHistory(vote.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestSequentialRevotes(t *testing.T) {
	t.Parallel()
	repos := setupTestDB(t)

	producer := seedUser(t, repos, "producer", model.RoleProducer)
	jury := seedUser(t, repos, "jury", model.RoleJury)
	movie := seedMovie(t, repos, producer.ID, "第七次告别")

	// 连投 N 次，modification_count 应为 N-1，历史行数也是 N-1
	const n = 5
	evals := []model.Evaluation{
		model.EvaluationYes,
		model.EvaluationNo,
		model.EvaluationToDiscuss,
		model.EvaluationNo,
		model.EvaluationYes,
	}

	var voteID int
	for i := 0; i < n; i++ {
		vote, err := repos.Vote.CastOrUpdate(movie.ID, jury.ID, evals[i], fmt.Sprintf("第 %d 次", i+1))
		require.NoError(t, err)
		assert.Equal(t, i, vote.ModificationCount)
		voteID = vote.ID
	}

	// 自始至终只有一行投票
	votes, err := repos.Vote.ListByMovie(movie.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, n-1, votes[0].ModificationCount)
	assert.Equal(t, model.EvaluationYes, votes[0].Evaluation)

	// 历史按时间顺序保存旧值：每行是对应那次修改之前的评价
	history, err := repos.Vote.ListHistory(voteID)
	require.NoError(t, err)
	require.Len(t, history, n-1)
	for i, snapshot := range history {
		assert.Equal(t, evals[i], snapshot.Note)
		assert.Equal(t, fmt.Sprintf("第 %d 次", i+1), snapshot.Comments)
	}
}

func TestMovieDeleteCascades(t *testing.T) {
	t.Parallel()
	repos := setupTestDB(t)

	producer := seedUser(t, repos, "producer", model.RoleProducer)
	jury := seedUser(t, repos, "jury", model.RoleJury)
	movie := seedMovie(t, repos, producer.ID, "即将删除")

	_, err := repos.Assignment.Create(movie.ID, jury.ID)
	require.NoError(t, err)

	_, err = repos.Vote.CastOrUpdate(movie.ID, jury.ID, model.EvaluationYes, "")
	require.NoError(t, err)
	_, err = repos.Vote.CastOrUpdate(movie.ID, jury.ID, model.EvaluationNo, "改主意了")
	require.NoError(t, err)

	require.NoError(t, repos.Movie.Delete(movie.ID))

	gone, err := repos.Movie.FindByID(movie.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	for table, dest := range map[string]interface{}{
		"votes":          &model.Vote{},
		"vote_histories": &model.VoteHistory{},
		"movies_juries":  &model.MovieJury{},
	} {
		var count int64
		require.NoError(t, repos.DB.Model(dest).Where("id_movie = ?", movie.ID).Count(&count).Error)
		assert.EqualValues(t, 0, count, "表 %s 应该被级联清空", table)
	}
}

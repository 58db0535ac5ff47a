package repository

import (
	"time"

	"github.com/user/filmfest/internal/model"
	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Distribution 全站投票分布，每次调用直接扫 votes 表，不做缓存
func (r *StatsRepository) Distribution() (*model.VoteDistribution, error) {
	type row struct {
		Evaluation model.Evaluation `gorm:"column:evaluation"`
		Count      int64            `gorm:"column:count"`
	}
	var rows []row
	err := r.db.Model(&model.Vote{}).
		Select("evaluation, COUNT(*) AS count").
		Group("evaluation").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := &model.VoteDistribution{}
	for _, row := range rows {
		switch row.Evaluation {
		case model.EvaluationYes:
			dist.Yes = row.Count
		case model.EvaluationNo:
			dist.No = row.Count
		case model.EvaluationToDiscuss:
			dist.ToDiscuss = row.Count
		}
	}
	return dist, nil
}

// TrendSince 自 since 起按天统计投票数，只返回有票的日期
// CAST(DATE(...) AS TEXT) 在 Postgres 和 SQLite 下都输出 YYYY-MM-DD
func (r *StatsRepository) TrendSince(since time.Time) ([]model.TrendPoint, error) {
	var points []model.TrendPoint
	err := r.db.Model(&model.Vote{}).
		Select("CAST(DATE(created_at) AS TEXT) AS date, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Find(&points).Error
	return points, err
}

const scoreExpr = "COALESCE(SUM(CASE v.evaluation WHEN 'YES' THEN 2 WHEN 'TO_DISCUSS' THEN 1 ELSE 0 END), 0)"

// ScoreFor 汇总单部影片的当前票数和加权分，只看 votes 表，不看历史
func (r *StatsRepository) ScoreFor(movieID int) (*model.MovieScore, error) {
	var score model.MovieScore
	err := r.db.Raw(`
		SELECT m.id_movie,
		       COALESCE(SUM(CASE v.evaluation WHEN 'YES' THEN 1 ELSE 0 END), 0)        AS yes_count,
		       COALESCE(SUM(CASE v.evaluation WHEN 'NO' THEN 1 ELSE 0 END), 0)         AS no_count,
		       COALESCE(SUM(CASE v.evaluation WHEN 'TO_DISCUSS' THEN 1 ELSE 0 END), 0) AS to_discuss_count,
		       `+scoreExpr+`                                                           AS score
		FROM movies m
		LEFT JOIN votes v ON v.id_movie = m.id_movie
		WHERE m.id_movie = ?
		GROUP BY m.id_movie
	`, movieID).Scan(&score).Error
	if err != nil {
		return nil, err
	}

	return &score, nil
}

// Leaderboard 排行榜：加权分降序，平分时按提交时间先后（再按 ID）保证顺序稳定
func (r *StatsRepository) Leaderboard(limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.db.Raw(`
		SELECT m.id_movie, m.title, m.selection_status,
		       COALESCE(SUM(CASE v.evaluation WHEN 'YES' THEN 1 ELSE 0 END), 0)        AS yes_count,
		       COALESCE(SUM(CASE v.evaluation WHEN 'NO' THEN 1 ELSE 0 END), 0)         AS no_count,
		       COALESCE(SUM(CASE v.evaluation WHEN 'TO_DISCUSS' THEN 1 ELSE 0 END), 0) AS to_discuss_count,
		       `+scoreExpr+`                                                           AS score
		FROM movies m
		LEFT JOIN votes v ON v.id_movie = m.id_movie
		GROUP BY m.id_movie, m.title, m.selection_status, m.created_at
		ORDER BY score DESC, m.created_at ASC, m.id_movie ASC
		LIMIT ?
	`, limit).Scan(&entries).Error
	return entries, err
}

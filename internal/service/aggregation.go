package service

import (
	"fmt"
	"time"

	"github.com/user/filmfest/internal/model"
	"github.com/user/filmfest/internal/repository"
	"golang.org/x/sync/singleflight"
)

// AggregationService 投票统计
// 所有统计都是 votes 表的纯函数，按需重算、不落库也不缓存，
// 读到的永远和当时的投票数据一致（数据量小，重算成本可以接受）
type AggregationService struct {
	repos *repository.Repositories
	sf    singleflight.Group // 合并同一时刻的重复排行榜查询
}

func NewAggregationService(repos *repository.Repositories) *AggregationService {
	return &AggregationService{repos: repos}
}

// ScoreFor 单部影片的票数汇总
func (s *AggregationService) ScoreFor(movieID int) (*model.MovieScore, error) {
	movie, err := s.repos.Movie.FindByID(movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNotFound
	}
	return s.repos.Stats.ScoreFor(movieID)
}

// Leaderboard 排行榜，加权分降序、平分按提交时间先后
// 并发请求用 singleflight 合并成一次查询
func (s *AggregationService) Leaderboard(limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	v, err, _ := s.sf.Do(fmt.Sprintf("leaderboard:%d", limit), func() (interface{}, error) {
		return s.repos.Stats.Leaderboard(limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.LeaderboardEntry), nil
}

// VoteDistribution 全站 YES/NO/TO_DISCUSS 分布
func (s *AggregationService) VoteDistribution() (*model.VoteDistribution, error) {
	return s.repos.Stats.Distribution()
}

// VoteTrend 最近 days 天的逐日投票数，没有票的日期补零
func (s *AggregationService) VoteTrend(days int) ([]model.TrendPoint, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	// 从 days-1 天前的零点开始，含今天共 days 天
	// 统一按 UTC 切天，和存储层的 DATE() 口径一致
	today := time.Now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	points, err := s.repos.Stats.TrendSince(since)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(points))
	for _, p := range points {
		counts[p.Date] = p.Count
	}

	trend := make([]model.TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		trend = append(trend, model.TrendPoint{Date: date, Count: counts[date]})
	}
	return trend, nil
}

// Counters 仪表盘计数：各状态影片数与投票总数
type Counters struct {
	MoviesByStatus map[model.SelectionStatus]int64 `json:"movies_by_status"`
	TotalVotes     int64                           `json:"total_votes"`
}

// PlatformCounters 平台级计数
func (s *AggregationService) PlatformCounters() (*Counters, error) {
	byStatus, err := s.repos.Movie.CountByStatus()
	if err != nil {
		return nil, err
	}
	votes, err := s.repos.Vote.Count()
	if err != nil {
		return nil, err
	}
	return &Counters{MoviesByStatus: byStatus, TotalVotes: votes}, nil
}

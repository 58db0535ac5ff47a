package service

import (
	"log"
	"time"
)

// DigestService 统计摘要服务
// 每天把投票分布和平台计数写进日志，方便运营巡检；不参与评选流程本身
type DigestService struct {
	agg *AggregationService
}

// NewDigestService 创建统计摘要服务
func NewDigestService(agg *AggregationService) *DigestService {
	return &DigestService{agg: agg}
}

// Start 启动定时摘要任务
func (s *DigestService) Start() {
	ticker := time.NewTicker(24 * time.Hour)

	// 启动时先跑一次
	go s.runDigest()

	go func() {
		for range ticker.C {
			s.runDigest()
		}
	}()
}

func (s *DigestService) runDigest() {
	dist, err := s.agg.VoteDistribution()
	if err != nil {
		log.Printf("[DigestService] 统计投票分布失败: %v", err)
		return
	}

	counters, err := s.agg.PlatformCounters()
	if err != nil {
		log.Printf("[DigestService] 统计平台计数失败: %v", err)
		return
	}

	log.Printf("[DigestService] 投票分布 YES=%d NO=%d TO_DISCUSS=%d，投票总数 %d",
		dist.Yes, dist.No, dist.ToDiscuss, counters.TotalVotes)
	for status, count := range counters.MoviesByStatus {
		log.Printf("[DigestService] 状态 %s 的影片 %d 部", status, count)
	}
}

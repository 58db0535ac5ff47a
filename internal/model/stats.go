package model

// VoteDistribution 全站投票分布（仪表盘用，JSON 形状固定）
type VoteDistribution struct {
	Yes       int64 `json:"yes"`
	No        int64 `json:"no"`
	ToDiscuss int64 `json:"toDiscuss"`
}

// TrendPoint 每日投票数（date 为 ISO8601 日期）
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// MovieScore 单部影片的票数汇总
// Score 为加权分：YES=2、TO_DISCUSS=1、NO=0
type MovieScore struct {
	MovieID   int   `json:"movie_id" gorm:"column:id_movie"`
	Yes       int64 `json:"yes" gorm:"column:yes_count"`
	No        int64 `json:"no" gorm:"column:no_count"`
	ToDiscuss int64 `json:"toDiscuss" gorm:"column:to_discuss_count"`
	Score     int64 `json:"score" gorm:"column:score"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	MovieID         int             `json:"movie_id" gorm:"column:id_movie"`
	Title           string          `json:"title" gorm:"column:title"`
	SelectionStatus SelectionStatus `json:"selection_status" gorm:"column:selection_status"`
	Yes             int64           `json:"yes" gorm:"column:yes_count"`
	No              int64           `json:"no" gorm:"column:no_count"`
	ToDiscuss       int64           `json:"toDiscuss" gorm:"column:to_discuss_count"`
	Score           int64           `json:"score" gorm:"column:score"`
}

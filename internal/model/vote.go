package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Evaluation 评委评价（投票值）
type Evaluation string

const (
	EvaluationYes       Evaluation = "YES"
	EvaluationNo        Evaluation = "NO"
	EvaluationToDiscuss Evaluation = "TO_DISCUSS"
)

// ParseEvaluation 解析评价值，未知值返回 false
func ParseEvaluation(s string) (Evaluation, bool) {
	switch Evaluation(s) {
	case EvaluationYes, EvaluationNo, EvaluationToDiscuss:
		return Evaluation(s), true
	}
	return "", false
}

func (e *Evaluation) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*e = Evaluation(v)
	case []byte:
		*e = Evaluation(v)
	default:
		return fmt.Errorf("cannot scan %T into Evaluation", value)
	}
	return nil
}

func (e Evaluation) Value() (driver.Value, error) {
	return string(e), nil
}

// Vote 投票记录
// 每个 (影片, 评委) 组合只有一条记录，由唯一索引保证；改票时更新原记录而不是新增
type Vote struct {
	ID                int        `json:"id" gorm:"column:id_vote;primaryKey"`
	MovieID           int        `json:"movie_id" gorm:"column:id_movie;uniqueIndex:idx_votes_pair"`
	JuryID            int        `json:"jury_id" gorm:"column:id_user;uniqueIndex:idx_votes_pair"`
	Evaluation        Evaluation `json:"evaluation" gorm:"type:varchar(16)"`
	Comments          string     `json:"comments"`
	ModificationCount int        `json:"modification_count" gorm:"column:modification_count;default:0"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (Vote) TableName() string {
	return "votes"
}

// VoteHistory 改票审计记录（只追加，不更新）
// 每次改票前把旧值快照进来；首次投票不产生快照，
// 因此任一投票的历史行数恒等于它的 modification_count
type VoteHistory struct {
	ID      int `json:"id" gorm:"column:id_vote_history;primaryKey"`
	VoteID  int `json:"vote_id" gorm:"column:id_vote;index"`
	JuryID  int `json:"jury_id" gorm:"column:id_user"`
	MovieID int `json:"movie_id" gorm:"column:id_movie;index"`
	// Note 沿用历史库表的列名，内容就是改票前的 Evaluation
	Note      Evaluation `json:"note" gorm:"column:note;type:varchar(16)"`
	Comments  string     `json:"comments"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName 指定表名
func (VoteHistory) TableName() string {
	return "vote_histories"
}

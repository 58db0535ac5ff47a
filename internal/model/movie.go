package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// SelectionStatus 影片评选状态
type SelectionStatus string

const (
	StatusSubmitted SelectionStatus = "submitted"  // 初始状态：影片已提交
	StatusAssigned  SelectionStatus = "assigned"   // 已指派评委
	StatusToDiscuss SelectionStatus = "to_discuss" // 评委意见分歧，待讨论
	StatusCandidate SelectionStatus = "candidate"  // 入围候选
	StatusSelected  SelectionStatus = "selected"   // 正式入选
	StatusFinalist  SelectionStatus = "finalist"   // 决选名单
	StatusAwarded   SelectionStatus = "awarded"    // 获奖
	StatusRefused   SelectionStatus = "refused"    // 落选
)

// ParseSelectionStatus 解析评选状态，未知值返回 false
func ParseSelectionStatus(s string) (SelectionStatus, bool) {
	switch SelectionStatus(s) {
	case StatusSubmitted, StatusAssigned, StatusToDiscuss, StatusCandidate,
		StatusSelected, StatusFinalist, StatusAwarded, StatusRefused:
		return SelectionStatus(s), true
	}
	return "", false
}

func (s *SelectionStatus) Scan(value any) error {
	if value == nil {
		*s = StatusSubmitted
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = SelectionStatus(v)
	case []byte:
		*s = SelectionStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into SelectionStatus", value)
	}
	return nil
}

func (s SelectionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Movie 影片模型（参赛作品）
type Movie struct {
	ID              int             `json:"id" gorm:"column:id_movie;primaryKey"`
	Title           string          `json:"title" gorm:"size:255;index"`
	Description     string          `json:"description"`
	Year            string          `json:"year" gorm:"size:8"`
	Duration        string          `json:"duration" gorm:"size:32"`
	Poster          string          `json:"poster"`
	VideoURL        string          `json:"video_url" gorm:"column:video_url"`
	Genres          pq.StringArray  `json:"genres" gorm:"type:text[]"`
	SelectionStatus SelectionStatus `json:"selection_status" gorm:"column:selection_status;type:varchar(20);default:'submitted';index"`
	ProducerID      int             `json:"producer_id" gorm:"column:id_user;index"`
	// AssignedJuryID 旧版单评委字段，已被 movies_juries 关联表取代，仅为兼容历史数据保留
	AssignedJuryID  *int      `json:"assigned_jury_id,omitempty" gorm:"column:assigned_jury_id"`
	JuryComment     string    `json:"jury_comment" gorm:"column:jury_comment"`
	AdminComment    string    `json:"admin_comment" gorm:"column:admin_comment"`
	StatusChangedAt time.Time `json:"status_changed_at" gorm:"column:status_changed_at"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time `json:"updated_at"`

	Producer *User `json:"producer,omitempty" gorm:"foreignKey:ProducerID"` // 关联查询时填充
}

// TableName 指定表名
func (Movie) TableName() string {
	return "movies"
}

// MovieJury 影片与评委的指派关系
// (id_movie, id_user) 组合唯一，由数据库唯一索引保证（并发指派也不会产生重复行）
type MovieJury struct {
	ID        int       `json:"id" gorm:"column:id_movie_jury;primaryKey"`
	MovieID   int       `json:"movie_id" gorm:"column:id_movie;uniqueIndex:idx_movies_juries_pair"`
	JuryID    int       `json:"jury_id" gorm:"column:id_user;uniqueIndex:idx_movies_juries_pair"`
	CreatedAt time.Time `json:"created_at"`

	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
	Jury  *User  `json:"jury,omitempty" gorm:"foreignKey:JuryID"`
}

// TableName 指定表名
func (MovieJury) TableName() string {
	return "movies_juries"
}

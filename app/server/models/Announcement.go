package models

import "time"

type Announcement struct {
	ID  string `gorm:"column:id;primaryKey;type:varchar(36)"` // 公告 ID
	Seq uint64 `gorm:"column:seq;autoIncrement"`              // 插入顺序，只用于 created_at 相同时排序

	// 公告内容
	Title   string `gorm:"column:title;type:varchar(200);not null"` // 标题
	Content string `gorm:"column:content;type:text;not null"`       // 正文

	// 作者信息
	AuthorID   string `gorm:"column:author_id;type:varchar(36);index;not null"` // 作者 ID ，删除时按此鉴权
	AuthorName string `gorm:"column:author_name;not null"`                      // 创建时的用户名快照，只用于展示

	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

package model

import "time"

const TableNameNote = "notes"

// Note mapped to table <notes>
type Note struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"column:title;size:255;not null;index:idx_notes_title" json:"title"`
	Content     string     `gorm:"column:content;type:text;not null" json:"content"`
	Creator     *string    `gorm:"column:creator;size:255" json:"creator"`
	TimeCreated time.Time  `gorm:"column:time_created;autoCreateTime;not null" json:"time_created"`
	TimeUpdated *time.Time `gorm:"column:time_updated" json:"time_updated"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}

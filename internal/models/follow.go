package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID. The composite
// unique index makes a duplicate follow a conflict at the database too.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"not null;uniqueIndex:idx_follows_edge,priority:1"`
	FollowingID uint      `json:"following_id" gorm:"not null;index;uniqueIndex:idx_follows_edge,priority:2"`
	CreatedAt   time.Time `json:"created_at"`
}

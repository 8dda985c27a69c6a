package model

// IDSequence holds the last value handed out for an identifier class.
type IDSequence struct {
	Name  string `gorm:"primaryKey;size:32"`
	Value int64  `gorm:"not null"`
}

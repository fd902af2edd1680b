package models

import "time"

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `gorm:"size:80;not null" json:"name"`
	Email string `gorm:"size:120;uniqueIndex;not null" json:"email"`

	Reviews []Review `gorm:"foreignKey:UserID" json:"-"`
}

type Book struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title  string `gorm:"size:120;not null" json:"title"`
	Author string `gorm:"size:120;not null" json:"author"`
	Genre  string `gorm:"size:80;not null" json:"genre"`

	Reviews []Review `gorm:"foreignKey:BookID" json:"reviews,omitempty"`
}

type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Content string `gorm:"type:text;not null" json:"content"`
	Rating  int    `gorm:"not null" json:"rating"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`

	BookID uint  `gorm:"not null;index" json:"book_id"`
	Book   *Book `gorm:"foreignKey:BookID" json:"-"`
}

const (
	MinRating = 1
	MaxRating = 5
)

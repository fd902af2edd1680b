package models

type CreateUserRequest struct {
	Name  string `json:"name" form:"name" binding:"required,max=80,no_html"`
	Email string `json:"email" form:"email" binding:"required,max=120"`
}

type CreateBookRequest struct {
	Title  string `json:"title" form:"title" binding:"required,max=120"`
	Author string `json:"author" form:"author" binding:"required,max=120"`
	Genre  string `json:"genre" form:"genre" binding:"required,max=80"`
}

// UpdateBookRequest carries a partial update; nil fields keep their value.
type UpdateBookRequest struct {
	Title  *string `json:"title" binding:"omitempty,max=120"`
	Author *string `json:"author" binding:"omitempty,max=120"`
	Genre  *string `json:"genre" binding:"omitempty,max=80"`
}

type CreateReviewRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
	Rating  *int   `json:"rating" form:"rating" binding:"required"`
	UserID  uint   `json:"user_id" form:"user_id" binding:"required"`
	BookID  uint   `json:"book_id" form:"book_id" binding:"required"`
}

type UpdateReviewRequest struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

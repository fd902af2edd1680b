package models

const (
	unknownBookTitle = "Unknown Book"
	unknownUserName  = "Unknown User"
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type BookResponse struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

type BookReviewResponse struct {
	ID      uint        `json:"id"`
	Content string      `json:"content"`
	Rating  int         `json:"rating"`
	User    UserSummary `json:"user"`
}

type BookDetailResponse struct {
	BookResponse
	Reviews []BookReviewResponse `json:"reviews"`
}

type ReviewResponse struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
	UserID  uint   `json:"user_id"`
	BookID  uint   `json:"book_id"`
}

// ReviewBookRef and ReviewUserRef describe the related rows of a review in
// listings. ID is nil when the related row no longer exists.
type ReviewBookRef struct {
	ID    *uint  `json:"id"`
	Title string `json:"title"`
}

type ReviewUserRef struct {
	ID   *uint  `json:"id"`
	Name string `json:"name"`
}

type ReviewListItem struct {
	ID      uint          `json:"id"`
	Content string        `json:"content"`
	Rating  int           `json:"rating"`
	Book    ReviewBookRef `json:"book"`
	User    ReviewUserRef `json:"user"`
}

func NewUserResponse(user User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}

func NewUserResponses(users []User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, NewUserResponse(user))
	}
	return result
}

func NewBookResponse(book Book) BookResponse {
	return BookResponse{ID: book.ID, Title: book.Title, Author: book.Author, Genre: book.Genre}
}

func NewBookReviewResponse(review Review) BookReviewResponse {
	summary := UserSummary{ID: review.UserID, Name: unknownUserName}
	if review.User != nil {
		summary.Name = review.User.Name
	}
	return BookReviewResponse{
		ID:      review.ID,
		Content: review.Content,
		Rating:  review.Rating,
		User:    summary,
	}
}

func NewBookReviewResponses(reviews []Review) []BookReviewResponse {
	result := make([]BookReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, NewBookReviewResponse(review))
	}
	return result
}

func NewBookDetailResponse(book Book) BookDetailResponse {
	return BookDetailResponse{
		BookResponse: NewBookResponse(book),
		Reviews:      NewBookReviewResponses(book.Reviews),
	}
}

func NewBookDetailResponses(books []Book) []BookDetailResponse {
	result := make([]BookDetailResponse, 0, len(books))
	for _, book := range books {
		result = append(result, NewBookDetailResponse(book))
	}
	return result
}

func NewReviewResponse(review Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		Content: review.Content,
		Rating:  review.Rating,
		UserID:  review.UserID,
		BookID:  review.BookID,
	}
}

func NewReviewListItem(review Review) ReviewListItem {
	item := ReviewListItem{
		ID:      review.ID,
		Content: review.Content,
		Rating:  review.Rating,
		Book:    ReviewBookRef{Title: unknownBookTitle},
		User:    ReviewUserRef{Name: unknownUserName},
	}
	if review.Book != nil {
		id := review.Book.ID
		item.Book = ReviewBookRef{ID: &id, Title: review.Book.Title}
	}
	if review.User != nil {
		id := review.User.ID
		item.User = ReviewUserRef{ID: &id, Name: review.User.Name}
	}
	return item
}

func NewReviewListItems(reviews []Review) []ReviewListItem {
	result := make([]ReviewListItem, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, NewReviewListItem(review))
	}
	return result
}

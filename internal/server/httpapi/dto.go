package httpapi

import (
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

type signupRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createItemRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Quantity string `json:"quantity" binding:"required,max=100"`
	Category string `json:"category" binding:"max=100"`
}

type itemPath struct {
	ID int64 `uri:"id"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type itemResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Quantity  string    `json:"quantity"`
	Category  string    `json:"category"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.UserName, Email: u.Email, CreatedAt: u.CreatedAt}
}

func newUserResponses(us []*models.User) []userResponse {
	out := make([]userResponse, 0, len(us))
	for _, u := range us {
		out = append(out, newUserResponse(u))
	}
	return out
}

func newItemResponse(it *models.Item) itemResponse {
	return itemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Quantity:  it.Quantity,
		Category:  it.Category,
		UserID:    it.UserID,
		CreatedAt: it.CreatedAt,
	}
}

func newItemResponses(items []*models.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, newItemResponse(it))
	}
	return out
}

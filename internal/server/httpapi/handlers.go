package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, messageResponse{Message: "PantryKeeper API is running"})
}

func (s *Server) handleFavicon(c *gin.Context) {
	c.JSON(http.StatusOK, messageResponse{Message: "No favicon"})
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	// the validator counts runes, bcrypt counts bytes
	if len(req.Password) > auth.MaxPasswordBytes {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{
			Detail: "Validation error",
			Errors: []fieldError{{Field: "password", Message: "must be at most 72 bytes"}},
		})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			unauthorized(c, detailBadLogin)
			return
		}
		writeError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: common.TokenType})
}

func (s *Server) handleMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, s.logger, common.ErrMissingCredentials)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

func (s *Server) handleListItems(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, s.logger, common.ErrMissingCredentials)
		return
	}

	items, err := s.items.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, newItemResponses(items))
}

func (s *Server) handleCreateItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, s.logger, common.ErrMissingCredentials)
		return
	}

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	item, err := s.items.Create(c.Request.Context(), user.ID, req.Name, req.Quantity, req.Category)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusCreated, newItemResponse(item))
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, s.logger, common.ErrMissingCredentials)
		return
	}

	var path itemPath
	if err := c.ShouldBindUri(&path); err != nil {
		writeBindError(c, err)
		return
	}

	deleted, err := s.items.DeleteForOwner(c.Request.Context(), path.ID, user.ID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	if !deleted {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Detail: detailItemNotFound})
		return
	}

	c.Status(http.StatusNoContent)
}

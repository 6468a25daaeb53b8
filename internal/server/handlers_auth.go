package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentialsPayload struct {
	Email    string `json:"email" form:"email"`
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

func (s *Server) signup(c *gin.Context) {
	var payload credentialsPayload
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, session, err := s.auth.Signup(c.Request.Context(), payload.Email, payload.Name, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	s.setSessionCookie(c, session.Token)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": publicUser(user)})
}

func (s *Server) login(c *gin.Context) {
	var payload credentialsPayload
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, session, err := s.auth.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	s.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": publicUser(user)})
}

func (s *Server) logout(c *gin.Context) {
	token, _ := c.Cookie(SessionCookie)
	if err := s.auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": publicUser(currentUser(c))})
}

func (s *Server) forgotPassword(c *gin.Context) {
	var payload struct {
		Email string `json:"email" form:"email"`
	}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.auth.RequestPasswordReset(c.Request.Context(), payload.Email); err != nil {
		respondError(c, err)
		return
	}
	// Same response whether or not the account exists.
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) resetPassword(c *gin.Context) {
	var payload struct {
		Token    string `json:"token" form:"token"`
		Password string `json:"password" form:"password"`
	}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.auth.ResetPassword(c.Request.Context(), payload.Token, payload.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/model"
)

// SessionCookie names the cookie carrying the opaque session token.
const SessionCookie = "taskboard_session"

const ctxUserKey = "current_user"

// requireUser resolves the session cookie to a user and aborts with an
// unauthorized signal otherwise: 401 for JSON callers, a redirect to /login
// for browser form posts.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user *model.User
		if token, err := c.Cookie(SessionCookie); err == nil {
			user, err = s.auth.Authenticate(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		}

		if user == nil {
			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			} else {
				c.Redirect(http.StatusSeeOther, "/login")
				c.Abort()
			}
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// currentUser returns the user resolved by requireUser.
func currentUser(c *gin.Context) *model.User {
	return c.MustGet(ctxUserKey).(*model.User)
}

// wantsJSON distinguishes API callers from browser form posts.
func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookie, token, int(s.sessionTTL.Seconds()), "/", "", false, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

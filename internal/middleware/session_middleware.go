package middleware

import (
	"context"
	"strings"

	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/shared/apperror"
	"go-employee-admin/internal/shared/contextutil"
	"go-employee-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// SessionAuthenticator resolves a session token to the session it names.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Session, error)
}

// SessionMiddleware requires a session token in the Authorization header
// (Bearer) or in cookieName, and puts the session on the request context.
func SessionMiddleware(auth SessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			token = ""
		}
		if token == "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie
			}
		}

		if token == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		sess, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set("session_id", sess.ID)
		c.Set("employee_id", sess.EmployeeID)
		c.Request = c.Request.WithContext(contextutil.WithSession(c.Request.Context(), sess))

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
	c.Abort()
}

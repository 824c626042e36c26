package server

import (
	"strings"

	"github.com/atriumhq/atrium/internal/config"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHeader carries the caller's tenant on every API request.
const AccountHeader = "X-Atrium-Account"

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags each request with an ID, reusing the caller's
// when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set("request_id", id)
		c.Next()
	}
}

// TenantMiddleware resolves the active account from the account header,
// falling back to the configured default. This is the only place a default
// account exists; below the HTTP boundary every operation requires an
// explicit tenant.
func TenantMiddleware(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := snowflake.ParseInt64(cfg.DefaultAccountID)
		if header := strings.TrimSpace(c.GetHeader(AccountHeader)); header != "" {
			parsed, err := snowflake.ParseString(header)
			if err != nil {
				AbortWithError(c, errInvalidAccountHeader)
				return
			}
			accountID = parsed
		}

		ctx := tenantctx.WithAccountID(c.Request.Context(), accountID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

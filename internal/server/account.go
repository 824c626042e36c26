package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getAccount(c *gin.Context) {
	account, err := s.accounts.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) listAccountUsers(c *gin.Context) {
	users, err := s.accounts.Users(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// testCleanup wipes the active account's data rows. Registered outside
// production only; integration suites call it between scenarios.
func (s *Server) testCleanup(c *gin.Context) {
	account, err := s.accounts.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tables := []string{
		"deals",
		"metric_values",
		"metrics",
		"investor_investments",
		"investments",
		"investors",
		"board_members",
		"employments",
		"person_tags",
		"company_tags",
		"people",
	}
	for _, table := range tables {
		if err := s.db.WithContext(c.Request.Context()).
			Exec("DELETE FROM "+table+" WHERE account_id = ?", account.ID).Error; err != nil {
			AbortWithError(c, err)
			return
		}
	}
	// The account's own company row survives; everything else under the
	// tenant is gone.
	if err := s.db.WithContext(c.Request.Context()).
		Exec("DELETE FROM companies WHERE account_id = ? AND id <> ?", account.ID, account.CompanyID).Error; err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

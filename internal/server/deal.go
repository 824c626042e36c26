package server

import (
	"net/http"

	dealdomain "github.com/atriumhq/atrium/internal/deal/domain"
	"github.com/gin-gonic/gin"
)

type dealPayload struct {
	Name         string `json:"name"`
	CompanyID    string `json:"companyId"`
	InvestmentID string `json:"investmentId"`
	ReferrerID   string `json:"referrerId"`
	OwnerID      string `json:"ownerId"`
	Date         string `json:"date"`
	Source       string `json:"source"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Stage        string `json:"stage"`
}

func (s *Server) createDeal(c *gin.Context) {
	var payload dealPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, dealdomain.ErrInvalidName)
		return
	}

	record, err := s.deals.Create(c.Request.Context(), dealdomain.CreateDealRequest{
		Name:         payload.Name,
		CompanyID:    payload.CompanyID,
		InvestmentID: payload.InvestmentID,
		ReferrerID:   payload.ReferrerID,
		OwnerID:      payload.OwnerID,
		Date:         payload.Date,
		Source:       payload.Source,
		Type:         payload.Type,
		Status:       payload.Status,
		Stage:        payload.Stage,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record.View())
}

func (s *Server) listDeals(c *gin.Context) {
	resp, err := s.deals.List(c.Request.Context(), dealdomain.ListDealRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size"),
		Stage:     c.Query("stage"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deals":           resp.Deals,
		"next_page_token": resp.NextPageToken,
		"has_more":        resp.HasMore,
	})
}

func (s *Server) getDeal(c *gin.Context) {
	record, err := s.deals.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record.View())
}

func (s *Server) updateDeal(c *gin.Context) {
	var payload dealPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, dealdomain.ErrInvalidID)
		return
	}

	record, err := s.deals.Update(c.Request.Context(), c.Param("id"), dealdomain.UpdateDealRequest{
		Name:         payload.Name,
		CompanyID:    payload.CompanyID,
		InvestmentID: payload.InvestmentID,
		ReferrerID:   payload.ReferrerID,
		OwnerID:      payload.OwnerID,
		Date:         payload.Date,
		Source:       payload.Source,
		Type:         payload.Type,
		Status:       payload.Status,
		Stage:        payload.Stage,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record.View())
}

func (s *Server) deleteDeal(c *gin.Context) {
	if err := s.deals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

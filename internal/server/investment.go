package server

import (
	"net/http"

	investmentdomain "github.com/atriumhq/atrium/internal/investment/domain"
	investordomain "github.com/atriumhq/atrium/internal/investor/domain"
	"github.com/gin-gonic/gin"
)

type investmentPayload struct {
	CompanyID          string   `json:"companyId" binding:"required"`
	Series             string   `json:"series" binding:"required"`
	Date               string   `json:"date"`
	Raised             *float64 `json:"raised"`
	PreMoney           *float64 `json:"preMoney"`
	PostMoney          *float64 `json:"postMoney"`
	SharePrice         *float64 `json:"sharePrice"`
	PreferenceMultiple *float64 `json:"preferenceMultiple"`
	PreferenceDollars  *float64 `json:"preferenceDollars"`
	ConversionRatio    *float64 `json:"conversionRatio"`
	Seniority          *int     `json:"seniority"`
	Notes              string   `json:"notes"`
}

func (s *Server) upsertInvestment(c *gin.Context) {
	var payload investmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, investmentdomain.ErrInvalidSeries)
		return
	}

	investment, err := s.investments.Upsert(c.Request.Context(), investmentdomain.UpsertInvestmentRequest{
		CompanyID:          payload.CompanyID,
		Series:             payload.Series,
		Date:               payload.Date,
		Raised:             payload.Raised,
		PreMoney:           payload.PreMoney,
		PostMoney:          payload.PostMoney,
		SharePrice:         payload.SharePrice,
		PreferenceMultiple: payload.PreferenceMultiple,
		PreferenceDollars:  payload.PreferenceDollars,
		ConversionRatio:    payload.ConversionRatio,
		Seniority:          payload.Seniority,
		Notes:              payload.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, investment)
}

func (s *Server) getInvestment(c *gin.Context) {
	investment, err := s.investments.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, investment)
}

func (s *Server) deleteInvestment(c *gin.Context) {
	if err := s.investments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type participantPayload struct {
	Investor  string   `json:"investor" binding:"required"`
	Date      string   `json:"date"`
	Invested  *float64 `json:"invested"`
	Ownership *float64 `json:"ownership"`
	Shares    *float64 `json:"shares"`
	Lead      *bool    `json:"lead"`
}

func (s *Server) addParticipant(c *gin.Context) {
	var payload participantPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, investmentdomain.ErrInvalidInvestor)
		return
	}

	row, err := s.investments.AddParticipant(c.Request.Context(), investmentdomain.AddParticipantRequest{
		InvestmentID: c.Param("id"),
		Investor:     payload.Investor,
		Date:         payload.Date,
		Invested:     payload.Invested,
		Ownership:    payload.Ownership,
		Shares:       payload.Shares,
		Lead:         payload.Lead,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (s *Server) removeParticipant(c *gin.Context) {
	if err := s.investments.RemoveParticipant(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type investorPayload struct {
	Name      string `json:"name" binding:"required"`
	Type      string `json:"type"`
	PersonID  string `json:"personId"`
	CompanyID string `json:"companyId"`
}

func (s *Server) createInvestor(c *gin.Context) {
	var payload investorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, investordomain.ErrInvalidName)
		return
	}
	if payload.Type == "" {
		payload.Type = investordomain.TypeCompany
	}

	investor, err := s.investors.Create(c.Request.Context(), investordomain.CreateInvestorRequest{
		Name:      payload.Name,
		Type:      payload.Type,
		PersonID:  payload.PersonID,
		CompanyID: payload.CompanyID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, investor.View())
}

func (s *Server) listInvestors(c *gin.Context) {
	resp, err := s.investors.List(c.Request.Context(), investordomain.ListInvestorRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size"),
		Name:      c.Query("name"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]investordomain.View, 0, len(resp.Investors))
	for i := range resp.Investors {
		views = append(views, resp.Investors[i].View())
	}
	c.JSON(http.StatusOK, gin.H{
		"investors":       views,
		"next_page_token": resp.NextPageToken,
		"has_more":        resp.HasMore,
	})
}

func (s *Server) getInvestor(c *gin.Context) {
	investor, err := s.investors.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	total, err := s.investors.TotalInvestment(c.Request.Context(), investor.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view := investor.View()
	c.JSON(http.StatusOK, gin.H{
		"id":              view.ID,
		"name":            view.Name,
		"type":            view.Type,
		"personId":        view.PersonID,
		"companyId":       view.CompanyID,
		"totalInvestment": total,
	})
}

func (s *Server) deleteInvestor(c *gin.Context) {
	if err := s.investors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) investorPortfolio(c *gin.Context) {
	cards, err := s.portfolio.Portfolio(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolio": cards})
}

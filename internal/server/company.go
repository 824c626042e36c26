package server

import (
	"net/http"
	"strconv"

	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	"github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}

type companyPayload struct {
	Name                string `json:"name"`
	Segment             string `json:"segment"`
	Sector              string `json:"sector"`
	Location            string `json:"location"`
	LogoURL             string `json:"logoUrl"`
	Website             string `json:"website"`
	Description         string `json:"description"`
	CrunchbaseID        string `json:"crunchbaseId"`
	CrunchbasePermalink string `json:"crunchbasePermalink"`
}

func (s *Server) createCompany(c *gin.Context) {
	var payload companyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, companydomain.ErrInvalidName)
		return
	}

	company, err := s.companies.Create(c.Request.Context(), companydomain.CreateCompanyRequest{
		Name:                payload.Name,
		Segment:             payload.Segment,
		Sector:              payload.Sector,
		Location:            payload.Location,
		LogoURL:             payload.LogoURL,
		Website:             payload.Website,
		Description:         payload.Description,
		CrunchbaseID:        payload.CrunchbaseID,
		CrunchbasePermalink: payload.CrunchbasePermalink,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company.View())
}

func (s *Server) listCompanies(c *gin.Context) {
	resp, err := s.companies.List(c.Request.Context(), companydomain.ListCompanyRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size"),
		Name:      c.Query("name"),
		Sector:    c.Query("sector"),
		Segment:   c.Query("segment"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]companydomain.View, 0, len(resp.Companies))
	for i := range resp.Companies {
		views = append(views, resp.Companies[i].View())
	}
	c.JSON(http.StatusOK, gin.H{
		"companies":       views,
		"next_page_token": resp.NextPageToken,
		"has_more":        resp.HasMore,
	})
}

func (s *Server) getCompany(c *gin.Context) {
	company, err := s.companies.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, company.View())
}

func (s *Server) updateCompany(c *gin.Context) {
	var payload companyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, companydomain.ErrInvalidName)
		return
	}

	company, err := s.companies.Update(c.Request.Context(), c.Param("id"), companydomain.UpdateCompanyRequest{
		Name:                payload.Name,
		Segment:             payload.Segment,
		Sector:              payload.Sector,
		Location:            payload.Location,
		LogoURL:             payload.LogoURL,
		Website:             payload.Website,
		Description:         payload.Description,
		CrunchbasePermalink: payload.CrunchbasePermalink,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, company.View())
}

func (s *Server) deleteCompany(c *gin.Context) {
	if err := s.companies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listCompanyTags(c *gin.Context) {
	tags, err := s.companies.Tags(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	names := make([]string, 0, len(tags))
	for i := range tags {
		names = append(names, tags[i].Tag)
	}
	c.JSON(http.StatusOK, gin.H{"tags": names})
}

func (s *Server) addCompanyTag(c *gin.Context) {
	var payload tagPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, companydomain.ErrInvalidTag)
		return
	}
	if err := s.companies.AddTag(c.Request.Context(), c.Param("id"), payload.Tag); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) removeCompanyTag(c *gin.Context) {
	if err := s.companies.RemoveTag(c.Request.Context(), c.Param("id"), c.Param("tag")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listCompanyInvestments(c *gin.Context) {
	views, err := s.investments.ListByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": views})
}

func (s *Server) companyTeam(c *gin.Context) {
	views, err := s.portfolio.Team(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": views})
}

func (s *Server) companyBoard(c *gin.Context) {
	views, err := s.portfolio.Board(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": views})
}

func (s *Server) companyCard(c *gin.Context) {
	card, err := s.portfolio.Card(c.Request.Context(), c.Param("id"), c.Query("investor"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

package server

import (
	"net/http"

	boardmemberdomain "github.com/atriumhq/atrium/internal/boardmember/domain"
	employmentdomain "github.com/atriumhq/atrium/internal/employment/domain"
	"github.com/gin-gonic/gin"
)

type employmentPayload struct {
	PersonID  string `json:"personId"`
	Company   string `json:"company"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Current   bool   `json:"current"`
	Notes     string `json:"notes"`
}

func (s *Server) createEmployment(c *gin.Context) {
	var payload employmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, employmentdomain.ErrInvalidPerson)
		return
	}

	record, err := s.employments.Create(c.Request.Context(), employmentdomain.CreateEmploymentRequest{
		PersonID:  payload.PersonID,
		Company:   payload.Company,
		Title:     payload.Title,
		Location:  payload.Location,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		Current:   payload.Current,
		Notes:     payload.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record.View())
}

func (s *Server) updateEmployment(c *gin.Context) {
	var payload employmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, employmentdomain.ErrInvalidID)
		return
	}

	record, err := s.employments.Update(c.Request.Context(), c.Param("id"), employmentdomain.UpdateEmploymentRequest{
		Company:   payload.Company,
		Title:     payload.Title,
		Location:  payload.Location,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		Notes:     payload.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record.View())
}

func (s *Server) deleteEmployment(c *gin.Context) {
	if err := s.employments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type currentEmploymentPayload struct {
	PersonID  string `json:"personId" binding:"required"`
	CompanyID string `json:"companyId" binding:"required"`
	Title     string `json:"title"`
}

func (s *Server) setCurrentEmployment(c *gin.Context) {
	var payload currentEmploymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, employmentdomain.ErrInvalidPerson)
		return
	}

	employment, err := s.employments.SetCurrent(c.Request.Context(), payload.PersonID, payload.CompanyID, payload.Title)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, employment)
}

type boardMemberPayload struct {
	PersonID  string `json:"personId"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Notes     string `json:"notes"`
}

func (s *Server) createBoardMember(c *gin.Context) {
	var payload boardMemberPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, boardmemberdomain.ErrInvalidPerson)
		return
	}

	record, err := s.boardMembers.Create(c.Request.Context(), boardmemberdomain.CreateBoardMemberRequest{
		PersonID:  payload.PersonID,
		Company:   payload.Company,
		Location:  payload.Location,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		Notes:     payload.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	latest, err := s.people.LatestEmployment(c.Request.Context(), record.PersonID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record.View(latest))
}

func (s *Server) updateBoardMember(c *gin.Context) {
	var payload boardMemberPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, boardmemberdomain.ErrInvalidID)
		return
	}

	record, err := s.boardMembers.Update(c.Request.Context(), c.Param("id"), boardmemberdomain.UpdateBoardMemberRequest{
		Company:   payload.Company,
		Location:  payload.Location,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		Notes:     payload.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	latest, err := s.people.LatestEmployment(c.Request.Context(), record.PersonID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record.View(latest))
}

func (s *Server) deleteBoardMember(c *gin.Context) {
	if err := s.boardMembers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

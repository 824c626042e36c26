package server

import (
	"net/http"

	persondomain "github.com/atriumhq/atrium/internal/person/domain"
	"github.com/gin-gonic/gin"
)

type createPersonPayload struct {
	FirstName   string         `json:"firstName" binding:"required"`
	LastName    string         `json:"lastName" binding:"required"`
	Email       string         `json:"email"`
	Company     string         `json:"company"`
	Title       string         `json:"title"`
	Location    string         `json:"location"`
	Gender      string         `json:"gender"`
	Race        string         `json:"race"`
	Website     string         `json:"website"`
	PhotoURL    string         `json:"photoUrl"`
	LinkedinURL string         `json:"linkedinUrl"`
	Links       map[string]any `json:"links"`
}

type updatePersonPayload struct {
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Email       string         `json:"email"`
	Location    string         `json:"location"`
	Gender      string         `json:"gender"`
	Race        string         `json:"race"`
	Website     string         `json:"website"`
	PhotoURL    string         `json:"photoUrl"`
	LinkedinURL string         `json:"linkedinUrl"`
	Links       map[string]any `json:"links"`
}

func (s *Server) createPerson(c *gin.Context) {
	var payload createPersonPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, persondomain.ErrInvalidName)
		return
	}

	person, err := s.people.Create(c.Request.Context(), persondomain.CreatePersonRequest{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		Company:     payload.Company,
		Title:       payload.Title,
		Location:    payload.Location,
		Gender:      payload.Gender,
		Race:        payload.Race,
		Website:     payload.Website,
		PhotoURL:    payload.PhotoURL,
		LinkedinURL: payload.LinkedinURL,
		Links:       payload.Links,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.people.View(c.Request.Context(), &person)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (s *Server) listPeople(c *gin.Context) {
	resp, err := s.people.List(c.Request.Context(), persondomain.ListPersonRequest{
		PageToken: c.Query("page_token"),
		PageSize:  queryInt(c, "page_size"),
		Name:      c.Query("name"),
		Location:  c.Query("location"),
		Tag:       c.Query("tag"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]persondomain.View, 0, len(resp.People))
	for i := range resp.People {
		view, err := s.people.View(c.Request.Context(), &resp.People[i])
		if err != nil {
			AbortWithError(c, err)
			return
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{
		"people":          views,
		"next_page_token": resp.NextPageToken,
		"has_more":        resp.HasMore,
	})
}

func (s *Server) getPerson(c *gin.Context) {
	person, err := s.people.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.people.View(c.Request.Context(), &person)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) updatePerson(c *gin.Context) {
	var payload updatePersonPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, persondomain.ErrInvalidName)
		return
	}

	person, err := s.people.Update(c.Request.Context(), c.Param("id"), persondomain.UpdatePersonRequest{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		Location:    payload.Location,
		Gender:      payload.Gender,
		Race:        payload.Race,
		Website:     payload.Website,
		PhotoURL:    payload.PhotoURL,
		LinkedinURL: payload.LinkedinURL,
		Links:       payload.Links,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.people.View(c.Request.Context(), &person)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) deletePerson(c *gin.Context) {
	if err := s.people.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) personExperience(c *gin.Context) {
	records, err := s.people.Experience(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]any, 0, len(records))
	for i := range records {
		views = append(views, records[i].View())
	}
	c.JSON(http.StatusOK, gin.H{"experience": views})
}

type tagPayload struct {
	Tag string `json:"tag" binding:"required"`
}

func (s *Server) listPersonTags(c *gin.Context) {
	tags, err := s.people.Tags(c.Request.Context(), c.Param("id"))
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

func (s *Server) addPersonTag(c *gin.Context) {
	var payload tagPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, persondomain.ErrInvalidTag)
		return
	}
	if err := s.people.AddTag(c.Request.Context(), c.Param("id"), payload.Tag); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) removePersonTag(c *gin.Context) {
	if err := s.people.RemoveTag(c.Request.Context(), c.Param("id"), c.Param("tag")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

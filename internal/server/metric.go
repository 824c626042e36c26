package server

import (
	"net/http"

	metricdomain "github.com/atriumhq/atrium/internal/metric/domain"
	"github.com/gin-gonic/gin"
)

// ingestMetrics accepts the loose spreadsheet-shaped payload: a "metric" name
// plus date-keyed values, for example
//
//	{"metric": "Revenue", "2024-03-31": 1200, "2024-06-30": 1750}
//
// Optional "interval" and "estimated" keys select the variant. Every other
// key is treated as a date.
func (s *Server) ingestMetrics(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, metricdomain.ErrInvalidMetric)
		return
	}

	name, _ := payload["metric"].(string)
	interval, _ := payload["interval"].(string)
	estimated, _ := payload["estimated"].(bool)
	delete(payload, "metric")
	delete(payload, "interval")
	delete(payload, "estimated")

	metric, err := s.metrics.Ingest(c.Request.Context(), metricdomain.IngestRequest{
		CompanyID: c.Param("id"),
		Name:      name,
		Interval:  interval,
		Estimated: estimated,
		Values:    payload,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, metric)
}

func (s *Server) listCompanyMetrics(c *gin.Context) {
	views, err := s.metrics.ListByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": views})
}

func (s *Server) deleteMetric(c *gin.Context) {
	if err := s.metrics.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

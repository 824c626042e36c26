package server

import (
	"errors"
	"net/http"

	accountdomain "github.com/atriumhq/atrium/internal/account/domain"
	boardmemberdomain "github.com/atriumhq/atrium/internal/boardmember/domain"
	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	dealdomain "github.com/atriumhq/atrium/internal/deal/domain"
	employmentdomain "github.com/atriumhq/atrium/internal/employment/domain"
	investmentdomain "github.com/atriumhq/atrium/internal/investment/domain"
	investordomain "github.com/atriumhq/atrium/internal/investor/domain"
	metricdomain "github.com/atriumhq/atrium/internal/metric/domain"
	persondomain "github.com/atriumhq/atrium/internal/person/domain"
	portfoliodomain "github.com/atriumhq/atrium/internal/portfolio/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errInvalidAccountHeader marks a request whose account header failed to
// parse.
var errInvalidAccountHeader = errors.New("invalid_account")

// AbortWithError records err on the gin context; the error handling
// middleware translates it after the handler chain unwinds.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandlingMiddleware converts recorded errors into JSON responses.
func ErrorHandlingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status, code := mapError(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		c.JSON(status, errorResponse{Error: code})
	}
}

var notFoundErrs = []error{
	accountdomain.ErrNotFound,
	companydomain.ErrNotFound,
	persondomain.ErrNotFound,
	employmentdomain.ErrNotFound,
	boardmemberdomain.ErrNotFound,
	investordomain.ErrNotFound,
	investmentdomain.ErrNotFound,
	metricdomain.ErrNotFound,
	dealdomain.ErrNotFound,
	portfoliodomain.ErrNotFound,
}

var badRequestErrs = []error{
	companydomain.ErrInvalidName,
	companydomain.ErrInvalidID,
	companydomain.ErrInvalidTag,
	persondomain.ErrInvalidName,
	persondomain.ErrInvalidID,
	persondomain.ErrInvalidTag,
	employmentdomain.ErrInvalidPerson,
	employmentdomain.ErrInvalidCompany,
	employmentdomain.ErrInvalidID,
	boardmemberdomain.ErrInvalidPerson,
	boardmemberdomain.ErrInvalidCompany,
	boardmemberdomain.ErrInvalidID,
	investordomain.ErrInvalidName,
	investordomain.ErrInvalidType,
	investordomain.ErrInvalidID,
	investmentdomain.ErrInvalidCompany,
	investmentdomain.ErrInvalidSeries,
	investmentdomain.ErrInvalidInvestor,
	investmentdomain.ErrInvalidID,
	metricdomain.ErrInvalidCompany,
	metricdomain.ErrInvalidMetric,
	metricdomain.ErrInvalidID,
	dealdomain.ErrInvalidName,
	dealdomain.ErrInvalidID,
	dealdomain.ErrInvalidReference,
	portfoliodomain.ErrInvalidID,
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidAccountHeader),
		errors.Is(err, accountdomain.ErrInvalidAccount),
		errors.Is(err, companydomain.ErrInvalidAccount),
		errors.Is(err, persondomain.ErrInvalidAccount),
		errors.Is(err, employmentdomain.ErrInvalidAccount),
		errors.Is(err, boardmemberdomain.ErrInvalidAccount),
		errors.Is(err, investordomain.ErrInvalidAccount),
		errors.Is(err, investmentdomain.ErrInvalidAccount),
		errors.Is(err, metricdomain.ErrInvalidAccount),
		errors.Is(err, dealdomain.ErrInvalidAccount),
		errors.Is(err, portfoliodomain.ErrInvalidAccount):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, companydomain.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, investordomain.ErrProtected):
		return http.StatusConflict, err.Error()
	}
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			return http.StatusNotFound, err.Error()
		}
	}
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return http.StatusBadRequest, err.Error()
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

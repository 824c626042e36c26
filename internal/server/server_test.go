package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	accountrepository "github.com/atriumhq/atrium/internal/account/repository"
	accountservice "github.com/atriumhq/atrium/internal/account/service"
	boardmemberrepository "github.com/atriumhq/atrium/internal/boardmember/repository"
	boardmemberservice "github.com/atriumhq/atrium/internal/boardmember/service"
	companyrepository "github.com/atriumhq/atrium/internal/company/repository"
	companyservice "github.com/atriumhq/atrium/internal/company/service"
	"github.com/atriumhq/atrium/internal/config"
	dealrepository "github.com/atriumhq/atrium/internal/deal/repository"
	dealservice "github.com/atriumhq/atrium/internal/deal/service"
	employmentrepository "github.com/atriumhq/atrium/internal/employment/repository"
	employmentservice "github.com/atriumhq/atrium/internal/employment/service"
	investmentrepository "github.com/atriumhq/atrium/internal/investment/repository"
	investmentservice "github.com/atriumhq/atrium/internal/investment/service"
	investorrepository "github.com/atriumhq/atrium/internal/investor/repository"
	investorservice "github.com/atriumhq/atrium/internal/investor/service"
	metricrepository "github.com/atriumhq/atrium/internal/metric/repository"
	metricservice "github.com/atriumhq/atrium/internal/metric/service"
	"github.com/atriumhq/atrium/internal/migration"
	persondomain "github.com/atriumhq/atrium/internal/person/domain"
	personrepository "github.com/atriumhq/atrium/internal/person/repository"
	personservice "github.com/atriumhq/atrium/internal/person/service"
	portfolioservice "github.com/atriumhq/atrium/internal/portfolio/service"
	"github.com/atriumhq/atrium/internal/telemetry"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Prometheus collectors register once per process.
var testMetrics = telemetry.NewHTTPMetrics()

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	companies := companyservice.New(companyservice.Params{
		DB: conn, Log: log, GenID: node, Repo: companyrepository.Provide(),
	})
	employmentRepo := employmentrepository.Provide()
	people := personservice.New(personservice.Params{
		DB: conn, Log: log, GenID: node, Repo: personrepository.Provide(),
		Companies: companies, Employments: employmentRepo,
	})
	employments := employmentservice.New(employmentservice.Params{
		DB: conn, Log: log, GenID: node, Repo: employmentRepo, Companies: companies,
	})
	boardRepo := boardmemberrepository.Provide()
	boardMembers := boardmemberservice.New(boardmemberservice.Params{
		DB: conn, Log: log, GenID: node, Repo: boardRepo, Companies: companies,
	})
	investmentRepo := investmentrepository.Provide()
	investors := investorservice.New(investorservice.Params{
		DB: conn, Log: log, GenID: node, Repo: investorrepository.Provide(),
		Investments: investmentRepo,
	})
	investments := investmentservice.New(investmentservice.Params{
		DB: conn, Log: log, GenID: node, Repo: investmentRepo, Investors: investors,
	})
	metrics := metricservice.New(metricservice.Params{
		DB: conn, Log: log, GenID: node, Repo: metricrepository.Provide(),
	})
	deals := dealservice.New(dealservice.Params{
		DB: conn, Log: log, GenID: node, Repo: dealrepository.Provide(),
		Companies: companies, Investments: investments, People: people,
	})
	accounts := accountservice.New(accountservice.Params{
		DB: conn, Log: log, Repo: accountrepository.Provide(),
	})
	portfolio := portfolioservice.New(portfolioservice.Params{
		DB: conn, Log: log,
		Companies: companies, People: people, Investors: investors, Metrics: metrics,
		Investments: investmentRepo, Employments: employmentRepo, BoardMembers: boardRepo,
	})

	srv := New(Params{
		Config:       config.Config{Environment: "test"},
		Log:          log,
		DB:           conn,
		Metrics:      testMetrics,
		Accounts:     accounts,
		People:       people,
		Companies:    companies,
		Employments:  employments,
		BoardMembers: boardMembers,
		Investors:    investors,
		Investments:  investments,
		Metric:       metrics,
		Deals:        deals,
		Portfolio:    portfolio,
	})
	return srv, node.Generate().String()
}

func doRequest(t *testing.T, srv *Server, method, path, account, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if account != "" {
		req.Header.Set(AccountHeader, account)
	}
	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, req)
	return resp
}

func TestHealthNeedsNoAccount(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, srv, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestMissingAccountRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	// No configured default and no header leaves the request without a tenant.
	resp := doRequest(t, srv, http.MethodGet, "/v1/people", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "invalid_account", body.Error)

	resp = doRequest(t, srv, http.MethodGet, "/v1/people", "not-a-snowflake", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestPersonLifecycle(t *testing.T) {
	srv, account := newTestServer(t)

	resp := doRequest(t, srv, http.MethodPost, "/v1/people", account,
		`{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","company":"Acme","title":"CEO"}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created persondomain.View
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "Jane Doe", created.Name)
	assert.Equal(t, "Acme", created.Company)
	assert.Equal(t, "CEO", created.Title)

	id := created.ID.String()
	resp = doRequest(t, srv, http.MethodGet, "/v1/people/"+id, account, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, srv, http.MethodPatch, "/v1/people/"+id, account, `{"location":"Lisbon"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	var updated persondomain.View
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Lisbon", updated.Location)
	assert.Equal(t, "Jane Doe", updated.Name)

	// A different tenant cannot see the person.
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	resp = doRequest(t, srv, http.MethodGet, "/v1/people/"+id, node.Generate().String(), "")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doRequest(t, srv, http.MethodDelete, "/v1/people/"+id, account, "")
	require.Equal(t, http.StatusNoContent, resp.Code)
	resp = doRequest(t, srv, http.MethodGet, "/v1/people/"+id, account, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestValidationAndConflictStatuses(t *testing.T) {
	srv, account := newTestServer(t)

	// firstName is required.
	resp := doRequest(t, srv, http.MethodPost, "/v1/people", account, `{"lastName":"Doe"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, srv, http.MethodPost, "/v1/companies", account, `{"name":"Acme","crunchbaseId":"cb-1"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = doRequest(t, srv, http.MethodPost, "/v1/companies", account, `{"name":"Other","crunchbaseId":"cb-1"}`)
	require.Equal(t, http.StatusConflict, resp.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "conflict", body.Error)
}

func TestMetricIngestionEndpoint(t *testing.T) {
	srv, account := newTestServer(t)

	resp := doRequest(t, srv, http.MethodPost, "/v1/companies", account, `{"name":"Acme"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	var company struct {
		ID snowflake.ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &company))

	resp = doRequest(t, srv, http.MethodPost, "/v1/companies/"+company.ID.String()+"/metrics", account,
		`{"metric":"Revenue","2024-03-31":1200,"not-a-date":5}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, srv, http.MethodGet, "/v1/companies/"+company.ID.String()+"/metrics", account, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var listing struct {
		Metrics []struct {
			Name   string             `json:"name"`
			Values map[string]float64 `json:"values"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listing))
	require.Len(t, listing.Metrics, 1)
	assert.Equal(t, "Revenue", listing.Metrics[0].Name)
	assert.Equal(t, 1200.0, listing.Metrics[0].Values["2024-03-31"])
}

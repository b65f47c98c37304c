package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diillson/retail-report-go/internal/application/usecase"
	"github.com/diillson/retail-report-go/internal/domain/entity"
	"github.com/diillson/retail-report-go/internal/shared/types"
)

type mockService struct{ mock.Mock }

func (m *mockService) GenerateInsights(ds entity.Dataset, sel usecase.Selection) (entity.InsightReport, entity.KPISet, entity.Dataset, error) {
	args := m.Called(ds, sel)
	return args.Get(0).(entity.InsightReport), args.Get(1).(entity.KPISet), args.Get(2).(entity.Dataset), args.Error(3)
}

func (m *mockService) GenerateReport(ctx context.Context, ds entity.Dataset, sel usecase.Selection, preparedBy string) (*usecase.ReportResult, error) {
	args := m.Called(ds, sel, preparedBy)
	res, _ := args.Get(0).(*usecase.ReportResult)
	return res, args.Error(1)
}

func testDataset() entity.Dataset {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return entity.NewDataset([]entity.Record{
		{Date: day("2024-01-05"), Region: "North", ProductCategory: "Toys", Revenue: decimal.NewFromInt(500), UnitsSold: 2},
		{Date: day("2024-02-05"), Region: "South", ProductCategory: "Books", Revenue: decimal.NewFromInt(700), UnitsSold: 3},
	})
}

func testReport() entity.InsightReport {
	return entity.InsightReport{
		Insights: []entity.Insight{{Kind: entity.InsightTrend, Text: "Revenue grew by 40.00% from 2024-01 to 2024-02."}},
		Summary:  entity.ExecutiveSummary{Text: "Revenue is growing.", Trend: entity.TrendGrowing},
	}
}

func newTestServer(svc ReportService) *Server {
	return NewServer(svc, testDataset(), zerolog.Nop())
}

func do(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&mockService{})
	rec := do(t, s, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["records"])
}

func TestInsights_PassesQueryFilters(t *testing.T) {
	svc := &mockService{}
	ds := testDataset()
	sel := usecase.Selection{Region: "North", Category: "Toys", Search: "lis"}
	svc.On("GenerateInsights", ds, sel).
		Return(testReport(), entity.KPISet{TotalRecords: 1}, ds, nil).Once()

	s := newTestServer(svc)
	rec := do(t, s, "/api/v1/insights?region=North&category=Toys&search=lis")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Records   int                     `json:"records"`
		Insights  []entity.Insight        `json:"insights"`
		Anomalies []entity.AnomalyFlag    `json:"anomalies"`
		Summary   entity.ExecutiveSummary `json:"summary"`
		Monthly   []types.MonthlyRevenue  `json:"monthly"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Records)
	require.Len(t, body.Insights, 1)
	assert.Equal(t, "Revenue is growing.", body.Summary.Text)
	assert.NotNil(t, body.Anomalies)
	assert.Equal(t, []types.MonthlyRevenue{{Month: "2024-01", Revenue: 500}, {Month: "2024-02", Revenue: 700}}, body.Monthly)
	svc.AssertExpectations(t)
}

func TestInsights_EmptyListsEncodeAsArrays(t *testing.T) {
	svc := &mockService{}
	svc.On("GenerateInsights", mock.Anything, mock.Anything).
		Return(entity.InsightReport{}, entity.KPISet{}, entity.Dataset{}, nil)

	rec := do(t, newTestServer(svc), "/api/v1/insights?region=Nowhere")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"insights":[]`)
	assert.Contains(t, rec.Body.String(), `"anomalies":[]`)
}

func TestInsights_DomainErrorMapsTo422(t *testing.T) {
	svc := &mockService{}
	svc.On("GenerateInsights", mock.Anything, mock.Anything).
		Return(entity.InsightReport{}, entity.KPISet{}, entity.Dataset{}, fmt.Errorf("trend: %w", types.ErrDivisionUndefined))

	rec := do(t, newTestServer(svc), "/api/v1/insights")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "division undefined")
}

func TestInsightsMarkdown(t *testing.T) {
	svc := &mockService{}
	svc.On("GenerateInsights", mock.Anything, mock.Anything).
		Return(testReport(), entity.KPISet{}, testDataset(), nil)

	rec := do(t, newTestServer(svc), "/api/v1/insights/markdown")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Revenue grew by 40.00%")
}

func TestReport_ReturnsPDF(t *testing.T) {
	svc := &mockService{}
	content := []byte("%PDF-1.3 fake")
	svc.On("GenerateReport", testDataset(), usecase.Selection{Region: "South"}, "Ops").
		Return(&usecase.ReportResult{ID: "abc", Document: entity.RenderedDocument{Content: content, PageCount: 3}}, nil)

	rec := do(t, newTestServer(svc), "/api/v1/report?region=South&prepared_by=Ops")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "3", rec.Header().Get("X-Report-Pages"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "retail_report_abc.pdf")
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestReport_LayoutFailureIs500(t *testing.T) {
	svc := &mockService{}
	svc.On("GenerateReport", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &types.LayoutOverflowError{Index: 4, Kind: "image", Height: 400, Available: 260})

	rec := do(t, newTestServer(svc), "/api/v1/report")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "layout overflow")
}

func TestMetrics_CountsRequestsAndBuilds(t *testing.T) {
	svc := &mockService{}
	svc.On("GenerateInsights", mock.Anything, mock.Anything).
		Return(testReport(), entity.KPISet{}, testDataset(), nil)

	s := newTestServer(svc)
	do(t, s, "/api/v1/insights")
	do(t, s, "/api/v1/insights")

	rec := do(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `retail_report_builds_total{kind="insights",outcome="success"} 2`)
	assert.Contains(t, text, `retail_report_http_requests_total{code="200",route="/api/v1/insights"} 2`)
	assert.True(t, strings.Contains(text, "retail_report_build_duration_seconds_count"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(types.ErrInsufficientData))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(context.Canceled))
	assert.Equal(t, http.StatusInternalServerError, statusFor(types.ErrImageRender))
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s := newTestServer(&mockService{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

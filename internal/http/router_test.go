package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/revdash/internal/dashboard"
	"github.com/MrJamesThe3rd/revdash/internal/export"
	revhttp "github.com/MrJamesThe3rd/revdash/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/revdash/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/revdash/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/revdash/internal/http/importcsv"
	"github.com/MrJamesThe3rd/revdash/internal/importer"
	"github.com/MrJamesThe3rd/revdash/internal/metrics"
	"github.com/MrJamesThe3rd/revdash/internal/report"
)

const maxUpload = 1 << 20

const validCSV = "월,매출액,전년동월,증감률\n2024-02,\"200\",150,33.3\n2024-01,100,80,25\n"

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()

	var (
		reportService = report.NewService(importer.NewService(), metrics.New(reg))
		exportService = export.NewService()
	)

	renderer, err := dashboard.NewRenderer(dashboard.DefaultConfig(), exportService)
	require.NoError(t, err)

	return revhttp.New(
		revhttp.Options{CORSOrigins: []string{"*"}, Gatherer: reg},
		dashboardHandler.NewHandler(reportService, renderer, maxUpload),
		importHandler.NewHandler(reportService, maxUpload),
		exportHandler.NewHandler(exportService, reportService, maxUpload),
	)
}

// form builds a multipart body. An empty filename skips the file part.
func form(t *testing.T, filename, content string, useSample bool) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)

		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	if useSample {
		require.NoError(t, mw.WriteField("use_sample", "true"))
	}

	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, h http.Handler, path, filename, content string, useSample bool) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := form(t, filename, content, useSample)

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestDashboard(t *testing.T) {
	type testCase struct {
		name       string
		request    func(t *testing.T, h http.Handler) *httptest.ResponseRecorder
		wantStatus int
		contains   []string
		excludes   []string
	}

	tests := []testCase{
		{
			name: "Get Shows Sample",
			request: func(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
				return rec
			},
			wantStatus: http.StatusOK,
			contains:   []string{"이번 달 매출", "21,000,000 원", "기간: 2024-01 ~ 2024-05"},
		},
		{
			name: "Upload",
			request: func(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
				return post(t, h, "/", "data.csv", validCSV, false)
			},
			wantStatus: http.StatusOK,
			contains:   []string{"200 원", "기간: 2024-01 ~ 2024-02", "+33.3%"},
		},
		{
			name: "Sample Toggle Wins",
			request: func(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
				return post(t, h, "/", "data.csv", validCSV, true)
			},
			wantStatus: http.StatusOK,
			contains:   []string{"21,000,000 원"},
		},
		{
			name: "Missing Column",
			request: func(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
				return post(t, h, "/", "data.csv", "월,매출액,증감률\n2024-01,1,2\n", false)
			},
			wantStatus: http.StatusUnprocessableEntity,
			contains:   []string{"데이터 해석 오류: 필수 컬럼 누락: 전년동월"},
			excludes:   []string{"이번 달 매출", "<svg", "base64,"},
		},
		{
			name: "Header Only",
			request: func(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
				return post(t, h, "/", "data.csv", "월,매출액,전년동월,증감률\n", false)
			},
			wantStatus: http.StatusUnprocessableEntity,
			contains:   []string{"데이터 해석 오류: 데이터 행이 없습니다"},
			excludes:   []string{"이번 달 매출"},
		},
	}

	h := newRouter(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.request(t, h)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

			for _, s := range tt.contains {
				assert.Contains(t, rec.Body.String(), s)
			}

			for _, s := range tt.excludes {
				assert.NotContains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestImportAPI(t *testing.T) {
	h := newRouter(t)

	t.Run("Success", func(t *testing.T) {
		rec := post(t, h, "/api/v1/import", "data.csv", validCSV, false)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Source  string `json:"source"`
			Records []struct {
				Period     string   `json:"period"`
				Cumulative *float64 `json:"cumulative_revenue"`
				Month      int      `json:"period_month"`
			} `json:"records"`
			Summary struct {
				TotalRevenue float64 `json:"total_revenue"`
				MaxIndex     int     `json:"max_record_index"`
			} `json:"summary"`
			KPIs []dashboard.KPI `json:"kpis"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, "data.csv", resp.Source)
		require.Len(t, resp.Records, 2)
		assert.Equal(t, "2024-01", resp.Records[0].Period)
		assert.Equal(t, 1, resp.Records[0].Month)
		require.NotNil(t, resp.Records[1].Cumulative)
		assert.InDelta(t, 300, *resp.Records[1].Cumulative, 1e-9)
		assert.InDelta(t, 300, resp.Summary.TotalRevenue, 1e-9)
		assert.Equal(t, 1, resp.Summary.MaxIndex)
		require.Len(t, resp.KPIs, 4)
		assert.Equal(t, "300 원", resp.KPIs[2].Value)
	})

	t.Run("Overflowing Numbers", func(t *testing.T) {
		csv := "월,매출액,전년동월,증감률\n2024-01,1e400,1,1\n2024-02,5,1,1\n"

		rec := post(t, h, "/api/v1/import", "data.csv", csv, false)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Records []struct {
				Revenue *float64 `json:"revenue"`
			} `json:"records"`
			Summary struct {
				TotalRevenue *float64 `json:"total_revenue"`
			} `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		require.Len(t, resp.Records, 2)
		assert.Nil(t, resp.Records[0].Revenue)
		assert.NotNil(t, resp.Records[1].Revenue)
		assert.Nil(t, resp.Summary.TotalRevenue)
	})

	t.Run("Malformed Periods", func(t *testing.T) {
		csv := "월,매출액,전년동월,증감률\n2024/01,1,1,1\n24-02,1,1,1\n2024-03,1,1,1\n"

		rec := post(t, h, "/api/v1/import", "data.csv", csv, false)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, []any{"2024/01", "24-02"}, resp["samples"])
		assert.NotContains(t, resp, "missing")
	})

	t.Run("Missing Columns", func(t *testing.T) {
		rec := post(t, h, "/api/v1/import", "data.csv", "foo\n1\n", false)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, []any{"월", "매출액", "전년동월", "증감률"}, resp["missing"])
	})

	t.Run("Too Large", func(t *testing.T) {
		big := validCSV + strings.Repeat("2024-03,1,1,1\n", maxUpload/10)

		rec := post(t, h, "/api/v1/import", "data.csv", big, false)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestExportAPI(t *testing.T) {
	h := newRouter(t)

	t.Run("Clean CSV", func(t *testing.T) {
		rec := post(t, h, "/api/v1/export/clean.csv", "data.csv", validCSV, false)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="clean.csv"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
		assert.Contains(t, rec.Body.String(), "2024-02,200,150,33.3,300,2")
	})

	t.Run("Bundle From Sample", func(t *testing.T) {
		rec := post(t, h, "/api/v1/export/bundle.zip", "", "", true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
	})

	t.Run("Unknown Artifact", func(t *testing.T) {
		rec := post(t, h, "/api/v1/export/report.pdf", "", "", true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Validation Error", func(t *testing.T) {
		rec := post(t, h, "/api/v1/export/clean.csv", "data.csv", "foo\n1\n", false)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("Too Large", func(t *testing.T) {
		big := validCSV + strings.Repeat("2024-03,1,1,1\n", maxUpload/10)

		rec := post(t, h, "/api/v1/export/clean.csv", "data.csv", big, false)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestOperational(t *testing.T) {
	h := newRouter(t)

	t.Run("Health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("Metrics", func(t *testing.T) {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `revdash_report_builds_total{outcome="ok",source="sample"}`)
	})

	t.Run("CORS Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/import", nil)
		req.Header.Set("Origin", "http://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

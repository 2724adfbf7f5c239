package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"numerus/internal/numerology/handler"
	"numerus/internal/numerology/handler/mocks"
	"numerus/internal/numerology/models"
	"numerus/internal/numerology/service"
	id "numerus/pkg/domain"
	dErrors "numerus/pkg/domain-errors"
	"numerus/pkg/platform/middleware/version"
	"numerus/pkg/requestcontext"
	"numerus/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	svc    *mocks.MockService
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.svc = mocks.NewMockService(s.ctrl)
	h := handler.New(s.svc, slog.New(slog.NewTextHandler(io.Discard, nil)), 3)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func ptr[T any](v T) *T { return &v }

func sampleResult(system string) *models.AnalysisResult {
	return &models.AnalysisResult{
		System:     system,
		Input:      models.AnalysisInput{FullName: "Nguyen Van A", DateOfBirth: "2000-07-15"},
		Numbers:    models.Numbers{LifePath: 6},
		Disclaimer: "for entertainment",
	}
}

func (s *HandlerSuite) TestAnalyze() {
	s.Run("passes the request through and returns the result", func() {
		s.svc.EXPECT().
			Analyze(gomock.Any(), service.AnalyzeRequest{
				FullName:    "Nguyen Van A",
				DateOfBirth: "2000-07-15",
				System:      "chaldean",
				TargetYear:  ptr(2025),
				Trace:       true,
			}).
			DoAndReturn(func(ctx context.Context, _ service.AnalyzeRequest) (*models.AnalysisResult, error) {
				s.Equal(id.APIVersionV1, requestcontext.APIVersion(ctx))
				return sampleResult("chaldean"), nil
			})

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/analyze", map[string]any{
			"full_name":     "Nguyen Van A",
			"date_of_birth": " 2000-07-15 ",
			"system":        "chaldean",
			"target_year":   2025,
			"trace":         true,
		}))

		testutil.AssertStatusOK(s.T(), rr)
		s.Equal("v1", rr.Header().Get(version.HeaderAPIVersion))
		res := testutil.UnmarshalResponse[models.AnalysisResult](s.T(), rr)
		s.Equal("chaldean", res.System)
		s.Equal(6, res.Numbers.LifePath)
	})

	s.Run("empty name is allowed", func() {
		s.svc.EXPECT().
			Analyze(gomock.Any(), gomock.Cond(func(r service.AnalyzeRequest) bool { return r.FullName == "" })).
			Return(sampleResult("pythagorean"), nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/analyze", map[string]any{
			"full_name":     "",
			"date_of_birth": "2000-07-15",
		}))
		testutil.AssertStatusOK(s.T(), rr)
	})
}

func (s *HandlerSuite) TestAnalyzeValidation() {
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"date_of_birth":"2000-07-15"}`},
		{"missing date", `{"full_name":"A"}`},
		{"target year too small", `{"full_name":"A","date_of_birth":"2000-07-15","target_year":0}`},
		{"target year too large", `{"full_name":"A","date_of_birth":"2000-07-15","target_year":10000}`},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/v1/analyze", tc.body))
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
		})
	}

	s.Run("malformed JSON", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/v1/analyze", `{"full_name":`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})
}

func (s *HandlerSuite) TestAnalyzeServiceErrors() {
	cases := []struct {
		name   string
		err    error
		status int
		code   dErrors.Code
	}{
		{"invalid date", dErrors.New(dErrors.CodeValidation, "invalid date"), http.StatusBadRequest, dErrors.CodeValidation},
		{"unknown system", dErrors.New(dErrors.CodeBadRequest, "unknown system"), http.StatusBadRequest, dErrors.CodeBadRequest},
		{"store down", dErrors.New(dErrors.CodeUnavailable, "rule-set store unavailable"), http.StatusServiceUnavailable, dErrors.CodeUnavailable},
		{"misconfigured", dErrors.New(dErrors.CodeInternal, "rule-set is misconfigured"), http.StatusInternalServerError, dErrors.CodeInternal},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.svc.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/analyze", map[string]any{
				"full_name":     "A",
				"date_of_birth": "2000-07-15",
			}))
			testutil.AssertStatusAndError(s.T(), rr, tc.status, string(tc.code))
		})
	}
}

func (s *HandlerSuite) TestAnalyzeBatch() {
	s.Run("invalid entries fail alone and order is kept", func() {
		s.svc.EXPECT().
			AnalyzeBatch(gomock.Any(), gomock.Len(2)).
			DoAndReturn(func(_ context.Context, reqs []service.AnalyzeRequest) []service.BatchItem {
				s.Equal("First", reqs[0].FullName)
				s.Equal("Third", reqs[1].FullName)
				return []service.BatchItem{
					{Result: sampleResult("pythagorean")},
					{Err: dErrors.New(dErrors.CodeBadRequest, `unknown system "klingon"`)},
				}
			})

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/analyze/batch", map[string]any{
			"requests": []map[string]any{
				{"full_name": "First", "date_of_birth": "2000-07-15"},
				{"date_of_birth": "2000-07-15"},
				{"full_name": "Third", "date_of_birth": "2000-07-15", "system": "klingon"},
			},
		}))

		testutil.AssertStatusOK(s.T(), rr)
		var body struct {
			Results []map[string]any `json:"results"`
		}
		s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &body))
		s.Require().Len(body.Results, 3)
		s.Equal("pythagorean", body.Results[0]["system"])
		s.Equal("full_name is required", body.Results[1]["error"])
		s.Equal(`unknown system "klingon"`, body.Results[2]["error"])
	})

	s.Run("internal item errors are not leaked", func() {
		s.svc.EXPECT().
			AnalyzeBatch(gomock.Any(), gomock.Len(1)).
			Return([]service.BatchItem{{Err: errors.New("pq: connection refused")}})

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/analyze/batch", map[string]any{
			"requests": []map[string]any{{"full_name": "A", "date_of_birth": "2000-07-15"}},
		}))

		testutil.AssertStatusOK(s.T(), rr)
		s.JSONEq(`{"results":[{"error":"internal error"}]}`, rr.Body.String())
	})

	s.Run("empty batch", func() {
		s.svc.EXPECT().AnalyzeBatch(gomock.Any(), gomock.Len(0)).Return([]service.BatchItem{})

		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/v1/analyze/batch", `{"requests":[]}`))
		testutil.AssertStatusOK(s.T(), rr)
		s.JSONEq(`{"results":[]}`, rr.Body.String())
	})

	s.Run("too many entries", func() {
		item := map[string]any{"full_name": "A", "date_of_birth": "2000-07-15"}
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/analyze/batch", map[string]any{
			"requests": []map[string]any{item, item, item, item},
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("missing requests field", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/v1/analyze/batch", `{}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *HandlerSuite) TestSystems() {
	s.Run("lists systems", func() {
		s.svc.EXPECT().Systems(gomock.Any()).Return([]models.SystemInfo{
			{ID: "chaldean", Name: "Chaldean"},
			{ID: "pythagorean", Name: "Pythagorean"},
		}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/v1/systems"))
		testutil.AssertStatusOK(s.T(), rr)
		s.JSONEq(`{"systems":[{"id":"chaldean","name":"Chaldean"},{"id":"pythagorean","name":"Pythagorean"}]}`, rr.Body.String())
	})

	s.Run("store failure", func() {
		s.svc.EXPECT().Systems(gomock.Any()).Return(nil, dErrors.New(dErrors.CodeUnavailable, "rule-set store unavailable"))

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/v1/systems"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, string(dErrors.CodeUnavailable))
	})
}

func (s *HandlerSuite) TestExamples() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/v1/examples"))
	testutil.AssertStatusOK(s.T(), rr)

	res := testutil.UnmarshalResponse[handler.ExamplesResponse](s.T(), rr)
	s.Require().Len(res.Examples, 2)
	s.Equal("pythagorean", res.Examples[0].System)
	s.Equal("chaldean", res.Examples[1].System)
}

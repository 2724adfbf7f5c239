package analysis

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
}

// RegisterSteps registers analysis step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &analysisSteps{tc: tc}

	ctx.Step(`^I analyze "([^"]*)" born "([^"]*)" with system "([^"]*)" for year (\d+)$`, steps.analyzeFor)
	ctx.Step(`^I analyze "([^"]*)" born "([^"]*)" with system "([^"]*)" and trace enabled$`, steps.analyzeWithTrace)
	ctx.Step(`^the core numbers should be:$`, steps.coreNumbersShouldBe)
	ctx.Step(`^the karmic debt hits should include "([^"]*)"$`, steps.debtHitsShouldInclude)
}

type analysisSteps struct {
	tc TestContext
}

func (s *analysisSteps) analyzeFor(ctx context.Context, name, dob, system string, year int) error {
	return s.tc.POST("/v1/analyze", map[string]any{
		"full_name":     name,
		"date_of_birth": dob,
		"system":        system,
		"target_year":   year,
	})
}

func (s *analysisSteps) analyzeWithTrace(ctx context.Context, name, dob, system string) error {
	return s.tc.POST("/v1/analyze", map[string]any{
		"full_name":     name,
		"date_of_birth": dob,
		"system":        system,
		"trace":         true,
	})
}

func (s *analysisSteps) coreNumbersShouldBe(ctx context.Context, table *godog.Table) error {
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("analysis failed with status %d", status)
	}
	for _, row := range table.Rows[1:] {
		field, expected := row.Cells[0].Value, row.Cells[1].Value
		v, err := s.tc.GetResponseField("numbers." + field)
		if err != nil {
			return err
		}
		if got := fmt.Sprint(v); got != expected {
			return fmt.Errorf("expected %s to be %s, got %s", field, expected, got)
		}
	}
	return nil
}

func (s *analysisSteps) debtHitsShouldInclude(ctx context.Context, site string) error {
	v, err := s.tc.GetResponseField("trace.karmic_debt_hits")
	if err != nil {
		return err
	}
	hits, ok := v.([]any)
	if !ok {
		return fmt.Errorf("karmic_debt_hits is not an array")
	}
	for _, h := range hits {
		if hit, ok := h.(map[string]any); ok && hit["where"] == site {
			return nil
		}
	}
	return fmt.Errorf("no karmic debt hit at %q in %v", site, hits)
}

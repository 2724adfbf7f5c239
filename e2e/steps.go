package e2e

import (
	"github.com/cucumber/godog"

	"numerus/e2e/steps/analysis"
	"numerus/e2e/steps/common"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and assertions
	common.RegisterSteps(ctx, tc)

	// Analysis-specific steps
	analysis.RegisterSteps(ctx, tc)
}

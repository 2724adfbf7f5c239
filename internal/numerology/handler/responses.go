package handler

import (
	"encoding/json"

	"numerus/internal/numerology/models"
	"numerus/internal/numerology/service"
	dErrors "numerus/pkg/domain-errors"
)

// BatchItemResponse is either a full analysis result or {"error": "..."}.
type BatchItemResponse struct {
	Result *models.AnalysisResult
	Error  string
}

func (b BatchItemResponse) MarshalJSON() ([]byte, error) {
	if b.Result != nil {
		return json.Marshal(b.Result)
	}
	return json.Marshal(struct {
		Error string `json:"error"`
	}{Error: b.Error})
}

type BatchAnalyzeResponse struct {
	Results []BatchItemResponse `json:"results"`
}

func toBatchItemResponse(item service.BatchItem) BatchItemResponse {
	if item.Err != nil {
		msg := dErrors.MessageOf(item.Err)
		if dErrors.CodeOf(item.Err) == dErrors.CodeInternal {
			msg = "internal error"
		}
		return BatchItemResponse{Error: msg}
	}
	return BatchItemResponse{Result: item.Result}
}

type SystemsResponse struct {
	Systems []models.SystemInfo `json:"systems"`
}

// Example is a ready-to-send sample input.
type Example struct {
	Name   string `json:"name"`
	DOB    string `json:"dob"`
	System string `json:"system"`
}

type ExamplesResponse struct {
	Examples []Example `json:"examples"`
}

var examples = ExamplesResponse{Examples: []Example{
	{Name: "Nguyễn Văn A", DOB: "1990-01-15", System: "pythagorean"},
	{Name: "Trần Thị B", DOB: "1985-05-20", System: "chaldean"},
}}

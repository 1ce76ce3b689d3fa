package models

// AnalyzeRequest is the input of the analyze procedure.
type AnalyzeRequest struct {
	JDPath string `json:"jdPath"`
	CVPath string `json:"cvPath"`
}

// AnalyzeResponse carries the model's Markdown assessment verbatim.
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

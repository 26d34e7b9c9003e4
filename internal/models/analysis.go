package models

const UnknownMood = "unknown"

type AnalysisResult struct {
	Mood       string `json:"mood"`
	Response   string `json:"response"`
	Suggestion string `json:"suggestion"`
}

type FailureReason string

const (
	FailureNone        FailureReason = ""
	FailureUnavailable FailureReason = "unavailable"
	FailureCall        FailureReason = "call"
	FailureParse       FailureReason = "parse"
)

// Analysis is the outcome of one mood analysis. Result is always filled in,
// with fallback text when Failure is set.
type Analysis struct {
	Result  AnalysisResult
	Failure FailureReason
	Err     error
}

func (a Analysis) OK() bool {
	return a.Failure == FailureNone
}

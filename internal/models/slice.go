package models

// Slice names one independently-writable sub-part of a user record.
type Slice string

const (
	SliceAnalysis      Slice = "analysis"
	SliceStudyPlan     Slice = "studyPlan"
	SliceInterviewPrep Slice = "interviewPrep"
	SliceChat          Slice = "chatHistory"
)

// Valid reports whether s names a known slice.
func (s Slice) Valid() bool {
	switch s {
	case SliceAnalysis, SliceStudyPlan, SliceInterviewPrep, SliceChat:
		return true
	}
	return false
}

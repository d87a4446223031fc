package enums

import "fmt"

// ReportReason classifies a user-submitted problem report.
type ReportReason string

const (
	ReportReasonNotWorking     ReportReason = "not_working"
	ReportReasonIncorrectInfo  ReportReason = "incorrect_info"
	ReportReasonTechnicalIssue ReportReason = "technical_issue"
	ReportReasonAccountIssue   ReportReason = "account_issue"
	ReportReasonOther          ReportReason = "other"
)

var validReportReasons = []ReportReason{
	ReportReasonNotWorking,
	ReportReasonIncorrectInfo,
	ReportReasonTechnicalIssue,
	ReportReasonAccountIssue,
	ReportReasonOther,
}

// String implements fmt.Stringer.
func (r ReportReason) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReportReason.
func (r ReportReason) IsValid() bool {
	for _, candidate := range validReportReasons {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReportReason converts raw input into a ReportReason.
func ParseReportReason(value string) (ReportReason, error) {
	for _, candidate := range validReportReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report reason %q", value)
}

package types

// Answer is one of the closed set of replies an operator can give to a
// reconciliation prompt.
type Answer string

const (
	AnswerYes         Answer = "Yes"
	AnswerNo          Answer = "No"
	AnswerSaveAndQuit Answer = "Save and Quit"
)

// ReconcileAnswers is the fixed answer list offered for every license and
// module prompt, in display order.
var ReconcileAnswers = []Answer{AnswerYes, AnswerNo, AnswerSaveAndQuit}

// ParseAnswer maps a prompt label back to its Answer.
func ParseAnswer(label string) (Answer, bool) {
	for _, answer := range ReconcileAnswers {
		if string(answer) == label {
			return answer, true
		}
	}
	return "", false
}

type ComplianceStatus string

const (
	ComplianceApproved    ComplianceStatus = "approved"
	ComplianceUnapproved  ComplianceStatus = "unapproved"
	ComplianceUnprocessed ComplianceStatus = "unprocessed"
)

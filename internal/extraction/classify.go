package extraction

import "strings"

// OpenFailure classifies a document-open error.
type OpenFailure int

const (
	// FatalFailure aborts the scan.
	FatalFailure OpenFailure = iota
	// PasswordFailure means the document is encrypted and a (correct)
	// password would unlock it. The pipeline suspends instead of failing.
	PasswordFailure
)

// passwordKeywords are the message fragments PDF libraries use to report
// encryption and authentication failures.
var passwordKeywords = []string{
	"password",
	"encrypt",
	"authoriz",
	"authenticat",
}

// ClassifyOpenError decides whether a document-open error is recoverable by
// supplying a password. The classification is a pure function of the error
// message so the policy can be tested on its own.
func ClassifyOpenError(err error) OpenFailure {
	if err == nil {
		return FatalFailure
	}

	msg := strings.ToLower(err.Error())
	for _, keyword := range passwordKeywords {
		if strings.Contains(msg, keyword) {
			return PasswordFailure
		}
	}
	return FatalFailure
}

package analyzer

import (
	"fmt"

	awstype "github.com/ppiankov/greenspectre/internal/aws"
)

// ErrorKind classifies why a section could not be fully determined.
type ErrorKind string

const (
	ErrorPermissionDenied ErrorKind = "permission_denied"
	ErrorNotEnabled       ErrorKind = "not_enabled"
	ErrorFailure          ErrorKind = "failure"
)

// SectionError is a query failure caught at a phase boundary.
type SectionError struct {
	Phase      Phase     `json:"phase"`
	Kind       ErrorKind `json:"kind"`
	Permission string    `json:"permission,omitempty"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message"`
	Err        error     `json:"-"`
}

func (e *SectionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Phase, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Phase, e.Message)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// newSectionError classifies err. permission is the IAM action that would have
// allowed the failed query.
func newSectionError(phase Phase, permission string, err error) *SectionError {
	kind := ErrorFailure
	switch {
	case awstype.IsAccessDenied(err):
		kind = ErrorPermissionDenied
	case awstype.IsOptInRequired(err):
		kind = ErrorNotEnabled
	}
	return &SectionError{
		Phase:      phase,
		Kind:       kind,
		Permission: permission,
		Code:       awstype.ErrorCode(err),
		Message:    awstype.ErrorMessage(err),
		Err:        err,
	}
}

package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Error codes returned by AWS APIs when the caller lacks an IAM permission.
var accessDeniedCodes = map[string]bool{
	"AccessDenied":          true,
	"AccessDeniedException": true,
	"UnauthorizedOperation": true,
}

const optInRequiredCode = "OptInRequiredException"

// ErrorCode returns the AWS API error code carried by err, or "" when err is not an API error.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// ErrorMessage returns the AWS API error message when available, falling back to err.Error().
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}

// IsAccessDenied reports whether err is an authorization failure.
func IsAccessDenied(err error) bool {
	return accessDeniedCodes[ErrorCode(err)]
}

// IsOptInRequired reports whether err signals a feature the account has not opted into.
func IsOptInRequired(err error) bool {
	return ErrorCode(err) == optInRequiredCode
}

package domain

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrCognitiveResultNotFound = errors.New("cognitive result not found")
	ErrReportNotFound          = errors.New("report not found")
)

var ErrTokenNotFound = errors.New("token not found or expired")

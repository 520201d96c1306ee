package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Predefined domain errors ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// --- Job request lifecycle ---

var ErrNotInvited = New(
	CodeForbidden,
	"lifecycle",
	"Professional was not invited to this request",
	http.StatusForbidden,
)

// Rejection is terminal per professional per request; there is no un-reject.
var ErrAlreadyRejected = New(
	CodeInvalidStatus,
	"lifecycle",
	"Professional has already rejected this request",
	http.StatusConflict,
)

var ErrProNotAccepted = New(
	CodeInvalidStatus,
	"lifecycle",
	"Professional has not accepted this request",
	http.StatusBadRequest,
)

var ErrRequestNotDeletable = New(
	CodeInvalidStatus,
	"lifecycle",
	"Request can no longer be deleted",
	http.StatusConflict,
)

var ErrServiceNotReceived = New(
	CodeInvalidStatus,
	"lifecycle",
	"Service must be marked as received before filing a review",
	http.StatusBadRequest,
)

var ErrFeedbackAlreadyFiled = New(
	CodeAlreadyExists,
	"lifecycle",
	"A review has already been filed for this request",
	http.StatusConflict,
)

var ErrVersionConflict = New(
	CodeConflict,
	"lifecycle",
	"Concurrent update detected, retry the operation",
	http.StatusConflict,
)

// --- Subscriptions & reviews ---

// ErrSubscriptionRequired is the distinguishable "upgrade required" rejection
// returned when a review confirmation is attempted on an inactive plan.
var ErrSubscriptionRequired = New(
	CodeSubscriptionRequired,
	"subscription",
	"An active subscription is required to confirm reviews",
	http.StatusPaymentRequired,
)

var ErrTrialAlreadyUsed = New(
	CodeInvalidOperation,
	"subscription",
	"Trial plan has already been used",
	http.StatusConflict,
)

var ErrReviewAlreadyConfirmed = New(
	CodeAlreadyExists,
	"review",
	"Review is already confirmed",
	http.StatusConflict,
)

var ErrReviewAlreadyReplied = New(
	CodeAlreadyExists,
	"review",
	"Review already has a reply",
	http.StatusConflict,
)

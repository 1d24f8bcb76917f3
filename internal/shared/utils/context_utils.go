package utils

import (
	"context"
	"errors"
	"strings"

	"sharvari-site/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserIDNotFound     = errors.New("userID not found in context")
	ErrUserIDNotString    = errors.New("userID in context is not a string")
	ErrUserEmailNotFound  = errors.New("userEmail not found in context")
	ErrUserEmailNotString = errors.New("userEmail in context is not a string")
	ErrRequestIDNotFound  = errors.New("requestID not found in context")
	ErrRequestIDNotString = errors.New("requestID in context is not a string")
)

func stringFromContext(ctx context.Context, key interface{}, missing, notString error) (string, error) {
	val := ctx.Value(key)
	if val == nil {
		return "", missing
	}
	s, ok := val.(string)
	if !ok {
		return "", notString
	}
	return s, nil
}

// GetUserIDFromContext retrieves the user ID from the context.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.UserIDKey, ErrUserIDNotFound, ErrUserIDNotString)
}

// GetUserEmailFromContext retrieves the user email from the context.
func GetUserEmailFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.UserEmailKey, ErrUserEmailNotFound, ErrUserEmailNotString)
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.RequestIDKey, ErrRequestIDNotFound, ErrRequestIDNotString)
}

// WithUser returns a context carrying the given user id and email.
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserEmailKey, email)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

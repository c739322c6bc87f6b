package service

import "errors"

var (
	// Tenant errors
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrTenantExists      = errors.New("tenant already exists")
	ErrInvalidTenantCode = errors.New("invalid tenant code")
	ErrInvalidTransition = errors.New("invalid tenant status transition")

	// Subscription errors
	ErrActiveSubscriptionExists = errors.New("tenant already has an active subscription")
	ErrNoActiveSubscription     = errors.New("tenant has no active subscription")

	ErrInvalidInput = errors.New("invalid input")
)

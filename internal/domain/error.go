package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUserNotFound    = errors.New("user not found")
	ErrPackageNotFound = errors.New("service package not found")
	ErrNoActiveFlow    = errors.New("no active conversation flow")
	ErrNoPackage       = errors.New("no service package selected")
	ErrFlowConflict    = errors.New("another flow is already in progress")
	ErrOrderNotFound   = errors.New("order not found")
)

// AngelaMos | 2026
// policy.go

// Package policy holds the ownership rules that gate marketplace writes.
// Callers look the target up first, so a missing entity is reported as
// not found before any of these checks run.
package policy

import (
	"fmt"

	"github.com/prombirzha/marketplace/internal/core"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

func CanUpdateOrder(callerID, customerID string) error {
	if callerID == "" || callerID != customerID {
		return fmt.Errorf("update order: not the order's customer: %w", core.ErrForbidden)
	}
	return nil
}

func CanUpdateCompany(callerID, ownerID string) error {
	if callerID == "" || callerID != ownerID {
		return fmt.Errorf("update company: not the company's owner: %w", core.ErrForbidden)
	}
	return nil
}

func CanCreateCompany(hasCompany bool) error {
	if hasCompany {
		return core.ConflictError("user already has a company")
	}
	return nil
}

func CanRespond(hasCompany bool) error {
	if !hasCompany {
		return core.ForbiddenError("a company is required to respond to orders")
	}
	return nil
}

func CanReview(callerID, companyOwnerID string) error {
	if callerID == "" {
		return fmt.Errorf("create review: %w", core.ErrUnauthorized)
	}
	if callerID == companyOwnerID {
		return core.ForbiddenError("companies cannot review themselves")
	}
	return nil
}

// CanSetResponseStatus lets the order's customer accept or reject a
// response. The responding company may only move its own response back to
// pending or withdraw it by rejecting.
func CanSetResponseStatus(callerID, customerID, companyOwnerID, status string) error {
	switch {
	case callerID == "":
		return fmt.Errorf("set response status: %w", core.ErrUnauthorized)
	case callerID == customerID:
		return nil
	case callerID == companyOwnerID:
		if status == StatusAccepted {
			return core.ForbiddenError("only the order's customer can accept a response")
		}
		return nil
	default:
		return fmt.Errorf("set response status: %w", core.ErrForbidden)
	}
}

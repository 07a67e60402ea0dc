package workflow

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResumeNotFound struct {
	error
}

func NewErrResumeNotFound(id uuid.UUID) *ErrResumeNotFound {
	return &ErrResumeNotFound{fmt.Errorf("resume %s not found", id)}
}

type ErrEnrichment struct {
	error
}

func NewErrEnrichment(err error) *ErrEnrichment {
	return &ErrEnrichment{fmt.Errorf("resume enrichment failed: %w", err)}
}

type ErrDelivery struct {
	error
}

func NewErrDelivery(err error) *ErrDelivery {
	return &ErrDelivery{fmt.Errorf("match delivery failed: %w", err)}
}

type ErrConfiguration struct {
	error
}

func NewErrMissingRecipient() *ErrConfiguration {
	return &ErrConfiguration{fmt.Errorf("delivery requested but no recipient provided")}
}

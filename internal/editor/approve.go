// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"errors"
	"fmt"
	"strings"

	"msgstudio/internal/models"
	"msgstudio/internal/validate"
)

var (
	// ErrLiveEditLocked is returned when approving a live template that was
	// edited less than 24 hours ago.
	ErrLiveEditLocked = errors.New("live templates can only be edited once every 24 hours")

	// ErrHasErrors is returned when the template still has validation errors.
	ErrHasErrors = errors.New("template has validation errors")

	// ErrActiveCampaigns is returned when approving a live template that
	// campaigns are sending, unless the caller confirmed.
	ErrActiveCampaigns = errors.New("template is used by active campaigns")
)

// CampaignsError lists the campaigns an unconfirmed approval would affect.
// It matches ErrActiveCampaigns with errors.Is.
type CampaignsError struct {
	Campaigns []string
}

func (e *CampaignsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrActiveCampaigns, strings.Join(e.Campaigns, ", "))
}

func (e *CampaignsError) Is(target error) bool {
	return target == ErrActiveCampaigns
}

// ValidationError carries the messages that blocked an approval. It
// matches ErrHasErrors with errors.Is.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrHasErrors, strings.Join(e.Errors, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrHasErrors
}

// Approve revalidates t and approves it. A draft becomes approved; approved
// and live templates keep their status. Checks run in this order: a live
// template with active campaigns needs confirm before anything else is
// looked at, then the live edit lock applies, then any remaining validation
// error refuses the approval. On refusal the returned template carries the
// fresh error list.
func (e *Editor) Approve(t *models.Template, confirm bool) (*models.Template, error) {
	now := e.now()
	next := t.Clone()
	next.Errors = validate.Template(next, now)

	if next.Status == models.StatusLive && len(next.ActiveCampaigns) > 0 && !confirm {
		return next, &CampaignsError{Campaigns: next.ActiveCampaigns}
	}
	if validate.LiveEditLocked(next, now) {
		return next, ErrLiveEditLocked
	}
	if len(next.Errors) > 0 {
		return next, &ValidationError{Errors: next.Errors}
	}

	if next.Status == models.StatusDraft {
		next.Status = models.StatusApproved
	}
	return next, nil
}

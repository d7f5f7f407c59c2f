// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Revision is a snapshot of a template taken when it was saved. Restoring a
// revision copies its content back onto the draft.
type Revision struct {
	Version  int       `json:"version"`
	SavedAt  time.Time `json:"saved_at"`
	Template *Template `json:"template"`
}

package audit

import (
	"time"

	id "brandgate/pkg/domain"
)

// Action identifies what happened.
type Action string

const (
	ActionAdminLogin          Action = "admin_login"
	ActionMemberLogin         Action = "member_login"
	ActionMemberRegistered    Action = "member_registered"
	ActionMemberStatusChanged Action = "member_status_changed"
	ActionSettlementApplied   Action = "settlement_applied"
	ActionDonationRecorded    Action = "donation_recorded"
)

// Event is one append-only audit record. Metadata carries small key/value
// details (client IP, user agent summary, session id); never secrets.
type Event struct {
	Action      Action            `json:"action"`
	BrandID     id.BrandID        `json:"brand_id"`
	PrincipalID string            `json:"principal_id,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

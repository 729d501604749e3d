// Package domain provides typed identifiers shared across features.
//
// Every entity ID is a distinct type over uuid.UUID so the compiler rejects
// cross-entity assignment (a BrandID can never be passed where a MemberID is
// expected). Parse functions enforce the trust-boundary invariant that IDs
// are valid, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "brandgate/pkg/domain-errors"
)

type (
	// BrandID identifies a tenant root. Every other entity carries one.
	BrandID uuid.UUID

	// AdminID identifies an administrator principal.
	AdminID uuid.UUID

	// MemberID identifies a member principal.
	MemberID uuid.UUID

	// EventID identifies an event document.
	EventID uuid.UUID

	// AttendeeID identifies an event registration.
	AttendeeID uuid.UUID

	// AnnouncementID identifies an announcement document.
	AnnouncementID uuid.UUID

	// MinistryID identifies a ministry document.
	MinistryID uuid.UUID

	// CategoryID identifies a giving category.
	CategoryID uuid.UUID

	// FoundationID identifies a fundraising campaign.
	FoundationID uuid.UUID

	// DonationID identifies an immutable ledger entry.
	DonationID uuid.UUID

	// TransactionID identifies one checkout attempt.
	TransactionID uuid.UUID
)

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id is required", kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s id", kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s id cannot be nil", kind)
	}
	return u, nil
}

func ParseBrandID(s string) (BrandID, error) {
	u, err := parseUUID(s, "brand")
	return BrandID(u), err
}

func ParseAdminID(s string) (AdminID, error) {
	u, err := parseUUID(s, "admin")
	return AdminID(u), err
}

func ParseMemberID(s string) (MemberID, error) {
	u, err := parseUUID(s, "member")
	return MemberID(u), err
}

func ParseEventID(s string) (EventID, error) {
	u, err := parseUUID(s, "event")
	return EventID(u), err
}

func ParseAttendeeID(s string) (AttendeeID, error) {
	u, err := parseUUID(s, "attendee")
	return AttendeeID(u), err
}

func ParseAnnouncementID(s string) (AnnouncementID, error) {
	u, err := parseUUID(s, "announcement")
	return AnnouncementID(u), err
}

func ParseMinistryID(s string) (MinistryID, error) {
	u, err := parseUUID(s, "ministry")
	return MinistryID(u), err
}

func ParseCategoryID(s string) (CategoryID, error) {
	u, err := parseUUID(s, "category")
	return CategoryID(u), err
}

func ParseFoundationID(s string) (FoundationID, error) {
	u, err := parseUUID(s, "foundation")
	return FoundationID(u), err
}

func ParseDonationID(s string) (DonationID, error) {
	u, err := parseUUID(s, "donation")
	return DonationID(u), err
}

func ParseTransactionID(s string) (TransactionID, error) {
	u, err := parseUUID(s, "transaction")
	return TransactionID(u), err
}

func NewBrandID() BrandID             { return BrandID(uuid.New()) }
func NewAdminID() AdminID             { return AdminID(uuid.New()) }
func NewMemberID() MemberID           { return MemberID(uuid.New()) }
func NewEventID() EventID             { return EventID(uuid.New()) }
func NewAttendeeID() AttendeeID       { return AttendeeID(uuid.New()) }
func NewAnnouncementID() AnnouncementID {
	return AnnouncementID(uuid.New())
}
func NewMinistryID() MinistryID       { return MinistryID(uuid.New()) }
func NewCategoryID() CategoryID       { return CategoryID(uuid.New()) }
func NewFoundationID() FoundationID   { return FoundationID(uuid.New()) }
func NewDonationID() DonationID       { return DonationID(uuid.New()) }
func NewTransactionID() TransactionID { return TransactionID(uuid.New()) }

func (id BrandID) String() string       { return uuid.UUID(id).String() }
func (id AdminID) String() string       { return uuid.UUID(id).String() }
func (id MemberID) String() string      { return uuid.UUID(id).String() }
func (id EventID) String() string       { return uuid.UUID(id).String() }
func (id AttendeeID) String() string    { return uuid.UUID(id).String() }
func (id AnnouncementID) String() string { return uuid.UUID(id).String() }
func (id MinistryID) String() string    { return uuid.UUID(id).String() }
func (id CategoryID) String() string    { return uuid.UUID(id).String() }
func (id FoundationID) String() string  { return uuid.UUID(id).String() }
func (id DonationID) String() string    { return uuid.UUID(id).String() }
func (id TransactionID) String() string { return uuid.UUID(id).String() }

func (id BrandID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id AdminID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id MemberID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id EventID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id AttendeeID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AnnouncementID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id MinistryID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id CategoryID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id FoundationID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id DonationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id TransactionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshalling keeps typed IDs rendering as canonical UUID strings in
// JSON documents rather than raw byte arrays.

func (id BrandID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id AdminID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id MemberID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id EventID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id AttendeeID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id AnnouncementID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id MinistryID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id CategoryID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id FoundationID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id DonationID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id TransactionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *BrandID) UnmarshalText(b []byte) error {
	parsed, err := ParseBrandID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *AdminID) UnmarshalText(b []byte) error {
	parsed, err := ParseAdminID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *MemberID) UnmarshalText(b []byte) error {
	parsed, err := ParseMemberID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *EventID) UnmarshalText(b []byte) error {
	parsed, err := ParseEventID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *AttendeeID) UnmarshalText(b []byte) error {
	parsed, err := ParseAttendeeID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *AnnouncementID) UnmarshalText(b []byte) error {
	parsed, err := ParseAnnouncementID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *MinistryID) UnmarshalText(b []byte) error {
	parsed, err := ParseMinistryID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *CategoryID) UnmarshalText(b []byte) error {
	parsed, err := ParseCategoryID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *FoundationID) UnmarshalText(b []byte) error {
	parsed, err := ParseFoundationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DonationID) UnmarshalText(b []byte) error {
	parsed, err := ParseDonationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *TransactionID) UnmarshalText(b []byte) error {
	parsed, err := ParseTransactionID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

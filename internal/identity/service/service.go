package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"brandgate/internal/audit"
	identitymetrics "brandgate/internal/identity/metrics"
	"brandgate/internal/identity/models"
	"brandgate/internal/identity/secrets"
	"brandgate/internal/jwttoken"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/platform/sentinel"
	"brandgate/pkg/requestcontext"
)

// AdminStore resolves administrator principals.
type AdminStore interface {
	Create(ctx context.Context, a *models.Admin) error
	FindByID(ctx context.Context, adminID id.AdminID) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// MemberStore resolves member principals. Email uniqueness is per brand and
// enforced atomically by CreateIfEmailAvailable.
type MemberStore interface {
	CreateIfEmailAvailable(ctx context.Context, m *models.Member) error
	FindByID(ctx context.Context, memberID id.MemberID) (*models.Member, error)
	FindByEmail(ctx context.Context, brandID id.BrandID, email string) (*models.Member, error)
	SetActive(ctx context.Context, brandID id.BrandID, memberID id.MemberID, active bool) (*models.Member, error)
}

// BrandChecker verifies a brand exists before a member registers under it.
type BrandChecker interface {
	Exists(ctx context.Context, brandID id.BrandID) (bool, error)
}

// Service issues and describes principals. Token verification itself lives in
// jwttoken and the auth middleware; this service owns the credential checks.
type Service struct {
	admins  AdminStore
	members MemberStore
	brands  BrandChecker
	tokens  *jwttoken.Service
	logger  *slog.Logger
	metrics *identitymetrics.Metrics
	auditor *audit.Publisher
}

func New(admins AdminStore, members MemberStore, brands BrandChecker, tokens *jwttoken.Service, logger *slog.Logger, metrics *identitymetrics.Metrics, auditor *audit.Publisher) *Service {
	return &Service{
		admins:  admins,
		members: members,
		brands:  brands,
		tokens:  tokens,
		logger:  logger,
		metrics: metrics,
		auditor: auditor,
	}
}

// errInvalidCredentials is the single answer for unknown email and wrong
// password alike, so callers cannot probe which emails exist.
func errInvalidCredentials() error {
	return dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
}

// IssueAdminToken authenticates an admin and returns a signed token bound to
// the admin's brand.
func (s *Service) IssueAdminToken(ctx context.Context, email, password string) (string, *models.Admin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, errInvalidCredentials()
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			secrets.VerifyDummy(password)
			s.metrics.IncrementLogin("admin", "failure")
			return "", nil, errInvalidCredentials()
		}
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up admin")
	}

	if err := secrets.Verify(password, admin.PasswordHash); err != nil {
		s.metrics.IncrementLogin("admin", "failure")
		return "", nil, errInvalidCredentials()
	}

	token, err := s.tokens.Generate(requestcontext.PrincipalAdmin, admin.ID.String(), admin.BrandID)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.metrics.IncrementLogin("admin", "success")
	if err := s.auditor.Emit(ctx, audit.Event{
		Action:      audit.ActionAdminLogin,
		BrandID:     admin.BrandID,
		PrincipalID: admin.ID.String(),
		Metadata: map[string]string{
			"client_ip":  requestcontext.ClientIP(ctx),
			"user_agent": requestcontext.UserAgent(ctx),
		},
		Timestamp: requestcontext.Now(ctx),
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to record admin login audit event", "error", err)
	}

	return token, admin, nil
}

// IssueMemberToken authenticates a member within one brand. Login is always
// brand-scoped because the same email may be registered under several brands.
func (s *Service) IssueMemberToken(ctx context.Context, brandID id.BrandID, email, password string) (string, *models.Member, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" || brandID.IsNil() {
		return "", nil, errInvalidCredentials()
	}

	member, err := s.members.FindByEmail(ctx, brandID, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			secrets.VerifyDummy(password)
			s.metrics.IncrementLogin("member", "failure")
			return "", nil, errInvalidCredentials()
		}
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up member")
	}

	if err := secrets.Verify(password, member.PasswordHash); err != nil {
		s.metrics.IncrementLogin("member", "failure")
		return "", nil, errInvalidCredentials()
	}
	if !member.IsActive {
		s.metrics.IncrementLogin("member", "failure")
		return "", nil, dErrors.New(dErrors.CodeForbidden, "account is deactivated")
	}

	token, err := s.tokens.Generate(requestcontext.PrincipalMember, member.ID.String(), member.BrandID)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.metrics.IncrementLogin("member", "success")
	if err := s.auditor.Emit(ctx, audit.Event{
		Action:      audit.ActionMemberLogin,
		BrandID:     member.BrandID,
		PrincipalID: member.ID.String(),
		Timestamp:   requestcontext.Now(ctx),
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to record member login audit event", "error", err)
	}

	return token, member, nil
}

// RegisterMemberParams carries self-registration input.
type RegisterMemberParams struct {
	BrandID  id.BrandID
	Email    string
	Password string
	Name     string
	Phone    string
}

// RegisterMember creates a member and returns a signed token for the new
// principal. Email uniqueness is per brand.
func (s *Service) RegisterMember(ctx context.Context, p RegisterMemberParams) (string, *models.Member, error) {
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return "", nil, dErrors.New(dErrors.CodeInvalidInput, "a valid email is required")
	}
	if len(p.Password) < 8 {
		return "", nil, dErrors.New(dErrors.CodeInvalidInput, "password must be at least 8 characters")
	}
	if strings.TrimSpace(p.Name) == "" {
		return "", nil, dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if p.BrandID.IsNil() {
		return "", nil, dErrors.New(dErrors.CodeInvalidInput, "brand id is required")
	}

	if s.brands != nil {
		exists, err := s.brands.Exists(ctx, p.BrandID)
		if err != nil {
			return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify brand")
		}
		if !exists {
			return "", nil, dErrors.New(dErrors.CodeNotFound, "brand not found")
		}
	}

	hash, err := secrets.Hash(p.Password)
	if err != nil {
		return "", nil, err
	}

	member := &models.Member{
		ID:           id.NewMemberID(),
		BrandID:      p.BrandID,
		Email:        p.Email,
		Name:         strings.TrimSpace(p.Name),
		Phone:        strings.TrimSpace(p.Phone),
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    requestcontext.Now(ctx),
	}

	if err := s.members.CreateIfEmailAvailable(ctx, member); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return "", nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register member")
	}

	token, err := s.tokens.Generate(requestcontext.PrincipalMember, member.ID.String(), member.BrandID)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.metrics.IncrementRegistrations()
	if err := s.auditor.Emit(ctx, audit.Event{
		Action:      audit.ActionMemberRegistered,
		BrandID:     member.BrandID,
		PrincipalID: member.ID.String(),
		Timestamp:   requestcontext.Now(ctx),
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to record registration audit event", "error", err)
	}

	return token, member, nil
}

// CurrentMember resolves the authenticated member's own record. Members can
// only ever see themselves through this path.
func (s *Service) CurrentMember(ctx context.Context) (*models.Member, error) {
	principal := requestcontext.GetPrincipal(ctx)
	if !principal.IsMember() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	memberID, err := id.ParseMemberID(principal.PrincipalID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid principal")
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "member not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up member")
	}
	// Token brand and record brand can only diverge if data was tampered
	// with; treat it as not found rather than leaking anything.
	if member.BrandID != principal.BrandID {
		return nil, dErrors.New(dErrors.CodeNotFound, "member not found")
	}
	return member, nil
}

// SetMemberStatus activates or deactivates a member of the caller's brand.
// Admin only; a member of another brand answers not-found.
func (s *Service) SetMemberStatus(ctx context.Context, memberID id.MemberID, active bool) (*models.Member, error) {
	principal := requestcontext.GetPrincipal(ctx)
	if !principal.IsAdmin() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	member, err := s.members.SetActive(ctx, principal.BrandID, memberID, active)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "member not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update member status")
	}

	if err := s.auditor.Emit(ctx, audit.Event{
		Action:      audit.ActionMemberStatusChanged,
		BrandID:     member.BrandID,
		PrincipalID: principal.PrincipalID,
		Metadata: map[string]string{
			"member_id": member.ID.String(),
			"is_active": strconv.FormatBool(member.IsActive),
		},
		Timestamp: requestcontext.Now(ctx),
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to record member status audit event", "error", err)
	}
	return member, nil
}

// CreateAdmin provisions an administrator for a brand. Used by seeding and
// operator tooling; there is no public endpoint for it.
func (s *Service) CreateAdmin(ctx context.Context, brandID id.BrandID, email, password, fullName string) (*models.Admin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "a valid email is required")
	}
	if brandID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "brand id is required")
	}
	hash, err := secrets.Hash(password)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	admin := &models.Admin{
		ID:           id.NewAdminID(),
		BrandID:      brandID,
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create admin")
	}
	return admin, nil
}

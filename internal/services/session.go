package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/metrics"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/sbilibin2017/eduai-platform/internal/repositories"
	"golang.org/x/oauth2"
)

// Defaults for SessionConfig
const (
	DefaultHostedTimeout = 3 * time.Second
	DefaultPendingTTL    = 10 * time.Minute
)

// SessionConfig tunes session resolution.
type SessionConfig struct {
	HostedTimeout time.Duration // bound on every hosted session check
	PendingTTL    time.Duration // age after which an unfinished redirect is discarded
}

// SessionService is the per-device session context: who is signed in, through
// which provider, and the profile and ledger operations on that user.
type SessionService struct {
	device   DeviceStore
	local    SessionBackend
	hosted   SessionBackend
	auth     HostedAuth
	demo     *DemoDirectory
	profiles *ProfileSync

	localLedger  *Ledger
	hostedLedger *Ledger

	prom *metrics.Prom
	cfg  SessionConfig
	now  func() time.Time
}

// NewSessionService wires the session context. hosted and auth are nil when
// only demo accounts are enabled.
func NewSessionService(
	device DeviceStore,
	local SessionBackend,
	hosted SessionBackend,
	auth HostedAuth,
	demo *DemoDirectory,
	publisher UsagePublisher,
	prom *metrics.Prom,
	cfg SessionConfig,
) *SessionService {
	if cfg.HostedTimeout <= 0 {
		cfg.HostedTimeout = DefaultHostedTimeout
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = DefaultPendingTTL
	}

	svc := &SessionService{
		device:      device,
		local:       local,
		auth:        auth,
		demo:        demo,
		localLedger: NewLedger(local, publisher, prom),
		prom:        prom,
		cfg:         cfg,
		now:         time.Now,
	}
	if hosted != nil {
		svc.hosted = hosted
		svc.profiles = NewProfileSync(hosted)
		svc.hostedLedger = NewLedger(hosted, publisher, prom)
	}
	return svc
}

func currentUserKey(deviceID string) string { return "device:" + deviceID + ":current_user" }
func hostedTokenKey(deviceID string) string { return "device:" + deviceID + ":hosted_token" }
func pendingKey(deviceID string) string     { return "device:" + deviceID + ":pending" }

func (s *SessionService) hostedEnabled() bool {
	return s.hosted != nil && s.auth != nil
}

func (s *SessionService) loadJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.device.Get(ctx, key)
	if errors.Is(err, repositories.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Log.Warnw("discarding unreadable device record", "key", key, "error", err)
		_ = s.device.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

func (s *SessionService) saveJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.device.Set(ctx, key, string(raw))
}

func (s *SessionService) stored(ctx context.Context, deviceID string) (*models.StoredSession, error) {
	var st models.StoredSession
	found, err := s.loadJSON(ctx, currentUserKey(deviceID), &st)
	if err != nil {
		return nil, err
	}
	if !found || st.User.ID == "" {
		return nil, nil
	}
	return &st, nil
}

func (s *SessionService) persist(ctx context.Context, deviceID string, u *models.User) (*models.Session, error) {
	st := models.StoredSession{User: *u, Provider: u.Provider, SavedAt: s.now().UTC()}
	if err := s.saveJSON(ctx, currentUserKey(deviceID), st); err != nil {
		logger.Log.Errorw("failed to persist session", "device_id", deviceID, "error", err)
		return nil, err
	}
	return &models.Session{State: models.StateAuthenticated, Provider: u.Provider, User: u}, nil
}

// Resolve reports the signed-in user of the device. It checks device-local
// state first and then the hosted session; it never returns pending and falls
// back to unauthenticated when the hosted check fails or times out.
func (s *SessionService) Resolve(ctx context.Context, deviceID string) (*models.Session, error) {
	st, err := s.stored(ctx, deviceID)
	if err != nil {
		logger.Log.Errorw("failed to read device session", "device_id", deviceID, "error", err)
		return models.Unauthenticated(), nil
	}
	if st != nil {
		u := st.User
		return &models.Session{State: models.StateAuthenticated, Provider: st.Provider, User: &u}, nil
	}

	var pending models.PendingOAuth
	if found, _ := s.loadJSON(ctx, pendingKey(deviceID), &pending); found {
		if s.now().Sub(pending.StartedAt) > s.cfg.PendingTTL {
			logger.Log.Infow("discarding stale sign-in redirect", "device_id", deviceID, "provider", pending.Provider)
			_ = s.device.Delete(ctx, pendingKey(deviceID))
		}
	}

	if !s.hostedEnabled() {
		return models.Unauthenticated(), nil
	}

	token, err := s.device.Get(ctx, hostedTokenKey(deviceID))
	if err != nil || token == "" {
		return models.Unauthenticated(), nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, s.cfg.HostedTimeout)
	defer cancel()

	identity, err := s.auth.GetUser(checkCtx, token)
	if err != nil {
		authErr := ClassifyAuthError(err)
		logger.Log.Warnw("hosted session check failed", "device_id", deviceID, "kind", authErr.Kind, "error", err)
		if authErr.Kind != AuthNetwork {
			_ = s.device.Delete(ctx, hostedTokenKey(deviceID))
		}
		return models.Unauthenticated(), nil
	}

	u, err := s.syncProfile(checkCtx, *identity, "")
	if err != nil {
		return models.Unauthenticated(), nil
	}
	sess, err := s.persist(ctx, deviceID, u)
	if err != nil {
		return models.Unauthenticated(), nil
	}
	return sess, nil
}

// syncProfile upserts the hosted profile. When the table is unreachable the
// identity itself is used so sign-in still succeeds.
func (s *SessionService) syncProfile(ctx context.Context, id models.HostedIdentity, role models.Role) (*models.User, error) {
	u, err := s.profiles.SyncIdentity(ctx, id, role)
	if err == nil {
		return u, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	logger.Log.Warnw("continuing with unsynced profile", "user_id", id.ID, "error", err)
	fallback := ProfileFromIdentity(id, nil, role)
	fallback.CreatedAt = s.now().UTC()
	return &fallback, nil
}

func (s *SessionService) fail(provider models.Provider, err error) error {
	var authErr *AuthError
	var valErr *ValidationError
	switch {
	case errors.As(err, &valErr):
		s.prom.AuthOutcome(string(provider), "validation")
	case errors.As(err, &authErr):
		s.prom.AuthOutcome(string(provider), string(authErr.Kind))
	default:
		s.prom.AuthOutcome(string(provider), "error")
	}
	return err
}

// Login signs in with email and password. Demo directory accounts are checked
// locally; every other email goes to the hosted provider.
func (s *SessionService) Login(ctx context.Context, deviceID string, creds models.Credentials) (*models.Session, error) {
	creds = normalizeCredentials(creds)
	if err := ValidateLogin(creds); err != nil {
		return nil, s.fail(models.ProviderDemo, err)
	}

	if _, ok := s.demo.Lookup(creds.Email); ok {
		account, ok := s.demo.Authenticate(creds.Email, creds.Password)
		if !ok {
			logger.Log.Infow("demo sign-in rejected", "email", creds.Email)
			return nil, s.fail(models.ProviderDemo, newAuthError(AuthInvalidCredentials, nil))
		}
		return s.beginDemo(ctx, deviceID, account)
	}

	if !s.hostedEnabled() {
		return nil, s.fail(models.ProviderHosted, newAuthError(AuthUnavailable, nil))
	}

	grant, err := s.auth.SignInWithPassword(ctx, creds.Email, creds.Password)
	if err != nil {
		logger.Log.Infow("hosted sign-in failed", "email", creds.Email, "error", err)
		return nil, s.fail(models.ProviderHosted, ClassifyAuthError(err))
	}
	return s.beginHosted(ctx, deviceID, grant, "")
}

// Register creates a hosted account and signs it in.
func (s *SessionService) Register(ctx context.Context, deviceID string, creds models.Credentials) (*models.Session, error) {
	creds = normalizeCredentials(creds)
	if err := ValidateRegistration(creds); err != nil {
		return nil, s.fail(models.ProviderHosted, err)
	}
	if _, ok := s.demo.Lookup(creds.Email); ok {
		return nil, s.fail(models.ProviderHosted, newAuthError(AuthUserExists, nil))
	}
	if !s.hostedEnabled() {
		return nil, s.fail(models.ProviderHosted, newAuthError(AuthUnavailable, nil))
	}

	role := creds.Role
	if role == "" {
		role = models.RoleStudent
	}

	grant, err := s.auth.SignUp(ctx, creds.Email, creds.Password, map[string]any{
		"name": creds.Name,
		"role": string(role),
	})
	if err != nil {
		logger.Log.Infow("hosted sign-up failed", "email", creds.Email, "error", err)
		return nil, s.fail(models.ProviderHosted, ClassifyAuthError(err))
	}
	if grant.AccessToken == "" {
		// account created, confirmation email pending
		return nil, s.fail(models.ProviderHosted, newAuthError(AuthEmailNotConfirmed, nil))
	}
	if grant.Identity.Name == "" {
		grant.Identity.Name = creds.Name
	}
	return s.beginHosted(ctx, deviceID, grant, role)
}

// DemoLogin signs in the demo account with the given role without a password.
func (s *SessionService) DemoLogin(ctx context.Context, deviceID string, role models.Role) (*models.Session, error) {
	account, ok := s.demo.ForRole(role)
	if !ok {
		return nil, s.fail(models.ProviderDemo, &ValidationError{Field: "role", Message: "Role must be student, educator or researcher"})
	}
	return s.beginDemo(ctx, deviceID, account)
}

func demoUserID(role models.Role, deviceID string) string {
	return "demo-" + string(role) + "-" + deviceID
}

func (s *SessionService) beginDemo(ctx context.Context, deviceID string, account DemoAccount) (*models.Session, error) {
	id := demoUserID(account.Role, deviceID)

	u, err := s.local.GetProfile(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to read demo profile", "user_id", id, "error", err)
		return nil, err
	}
	if u == nil {
		u, err = s.local.SaveProfile(ctx, &models.User{
			ID:       id,
			Email:    account.Email,
			Name:     account.Name,
			Role:     account.Role,
			Provider: models.ProviderDemo,
		})
		if err != nil {
			logger.Log.Errorw("failed to save demo profile", "user_id", id, "error", err)
			return nil, err
		}
	}

	sess, err := s.persist(ctx, deviceID, u)
	if err != nil {
		return nil, err
	}
	s.prom.AuthOutcome(string(models.ProviderDemo), "ok")
	logger.Log.Infow("demo session started", "device_id", deviceID, "user_id", id, "role", u.Role)
	return sess, nil
}

func (s *SessionService) beginHosted(ctx context.Context, deviceID string, grant *models.HostedGrant, role models.Role) (*models.Session, error) {
	u, err := s.syncProfile(ctx, grant.Identity, role)
	if err != nil {
		return nil, s.fail(grant.Identity.Provider, ClassifyAuthError(err))
	}
	if err := s.device.Set(ctx, hostedTokenKey(deviceID), grant.AccessToken); err != nil {
		logger.Log.Errorw("failed to store hosted token", "device_id", deviceID, "error", err)
		return nil, err
	}
	sess, err := s.persist(ctx, deviceID, u)
	if err != nil {
		return nil, err
	}
	s.prom.AuthOutcome(string(u.Provider), "ok")
	logger.Log.Infow("hosted session started", "device_id", deviceID, "user_id", u.ID, "provider", u.Provider)
	return sess, nil
}

// BeginOAuth marks the device pending and returns the provider authorize URL.
func (s *SessionService) BeginOAuth(ctx context.Context, deviceID string, provider models.Provider) (string, error) {
	if !provider.IsOAuth() {
		return "", &ValidationError{Field: "provider", Message: "Unsupported sign-in provider"}
	}
	if !s.hostedEnabled() {
		return "", s.fail(provider, newAuthError(AuthUnavailable, nil))
	}

	verifier := oauth2.GenerateVerifier()
	pending := models.PendingOAuth{
		Provider:     provider,
		State:        uuid.NewString(),
		CodeVerifier: verifier,
		StartedAt:    s.now().UTC(),
	}

	url, err := s.auth.AuthorizeURL(provider, pending.State, oauth2.S256ChallengeFromVerifier(verifier))
	if err != nil {
		return "", s.fail(provider, ClassifyAuthError(err))
	}
	if err := s.saveJSON(ctx, pendingKey(deviceID), pending); err != nil {
		logger.Log.Errorw("failed to store pending sign-in", "device_id", deviceID, "error", err)
		return "", err
	}
	logger.Log.Infow("oauth sign-in started", "device_id", deviceID, "provider", provider)
	return url, nil
}

// CompleteOAuth finishes a redirect sign-in started by BeginOAuth.
func (s *SessionService) CompleteOAuth(ctx context.Context, deviceID, code, state string) (*models.Session, error) {
	if code == "" || state == "" {
		return nil, ErrMissingFields
	}
	if !s.hostedEnabled() {
		return nil, newAuthError(AuthUnavailable, nil)
	}

	var pending models.PendingOAuth
	found, err := s.loadJSON(ctx, pendingKey(deviceID), &pending)
	if err != nil {
		return nil, err
	}
	if !found || pending.State != state {
		logger.Log.Warnw("oauth callback without matching request", "device_id", deviceID)
		return nil, ErrInvalidState
	}
	_ = s.device.Delete(ctx, pendingKey(deviceID))

	if s.now().Sub(pending.StartedAt) > s.cfg.PendingTTL {
		return nil, s.fail(pending.Provider, newAuthError(AuthLinkExpired, nil))
	}

	grant, err := s.auth.ExchangeCode(ctx, code, pending.CodeVerifier)
	if err != nil {
		logger.Log.Infow("oauth code exchange failed", "device_id", deviceID, "error", err)
		return nil, s.fail(pending.Provider, ClassifyAuthError(err))
	}
	if grant.Identity.Provider == "" {
		grant.Identity.Provider = pending.Provider
	}
	return s.beginHosted(ctx, deviceID, grant, "")
}

// Logout clears the device session. It never fails: remote sign-out and
// cleanup errors are logged and local state is cleared regardless.
func (s *SessionService) Logout(ctx context.Context, deviceID string) *models.Session {
	st, err := s.stored(ctx, deviceID)
	if err != nil {
		logger.Log.Warnw("failed to read session on logout", "device_id", deviceID, "error", err)
	}

	token, _ := s.device.Get(ctx, hostedTokenKey(deviceID))

	if err := s.device.Delete(ctx, currentUserKey(deviceID), hostedTokenKey(deviceID), pendingKey(deviceID)); err != nil {
		logger.Log.Errorw("failed to clear device session", "device_id", deviceID, "error", err)
	}

	if st != nil && st.Provider == models.ProviderDemo {
		if err := s.local.Forget(ctx, st.User.ID); err != nil {
			logger.Log.Warnw("failed to clear demo data", "user_id", st.User.ID, "error", err)
		}
	}

	if token != "" && s.auth != nil {
		signOutCtx, cancel := context.WithTimeout(ctx, s.cfg.HostedTimeout)
		defer cancel()
		if err := s.auth.SignOut(signOutCtx, token); err != nil {
			logger.Log.Warnw("hosted sign-out failed", "device_id", deviceID, "error", err)
		}
	}

	logger.Log.Infow("session ended", "device_id", deviceID)
	return models.Unauthenticated()
}

func (s *SessionService) current(ctx context.Context, deviceID string) (*models.StoredSession, error) {
	st, err := s.stored(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotAuthenticated
	}
	return st, nil
}

func (s *SessionService) ledgerFor(p models.Provider) (*Ledger, error) {
	if p == models.ProviderDemo {
		return s.localLedger, nil
	}
	if s.hostedLedger == nil {
		return nil, newAuthError(AuthUnavailable, nil)
	}
	return s.hostedLedger, nil
}

// UpdateProfile merges fields into the signed-in profile. The device copy is
// always updated; for hosted users a failed remote upsert is only logged.
func (s *SessionService) UpdateProfile(ctx context.Context, deviceID string, upd models.ProfileUpdate) (*models.User, error) {
	st, err := s.current(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if err := validateProfileUpdate(&upd); err != nil {
		return nil, err
	}

	u := st.User
	if !upd.Apply(&u) {
		return &u, nil
	}

	if st.Provider == models.ProviderDemo {
		saved, err := s.local.SaveProfile(ctx, &u)
		if err != nil {
			logger.Log.Errorw("failed to save demo profile", "user_id", u.ID, "error", err)
			return nil, err
		}
		u = *saved
	}

	if _, err := s.persist(ctx, deviceID, &u); err != nil {
		return nil, err
	}

	if st.Provider != models.ProviderDemo {
		if s.hosted == nil {
			logger.Log.Warnw("hosted backend disabled, profile kept on device only", "user_id", u.ID)
		} else if _, err := s.hosted.SaveProfile(ctx, &u); err != nil {
			logger.Log.Errorw("remote profile upsert failed", "user_id", u.ID, "error", err)
		}
	}

	logger.Log.Infow("profile updated", "user_id", u.ID)
	return &u, nil
}

func validateProfileUpdate(upd *models.ProfileUpdate) error {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return &ValidationError{Field: "name", Message: "Name cannot be empty"}
		}
		upd.Name = &name
	}
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if err := validate.Var(email, "required,email"); err != nil {
			return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
		}
		upd.Email = &email
	}
	if upd.Role != nil && !upd.Role.Valid() {
		return &ValidationError{Field: "role", Message: "Role must be student, educator or researcher"}
	}
	return nil
}

// RecordCompletion records a tutorial completion for the signed-in user.
func (s *SessionService) RecordCompletion(ctx context.Context, deviceID string, tutorialID int) error {
	st, err := s.current(ctx, deviceID)
	if err != nil {
		return err
	}
	l, err := s.ledgerFor(st.Provider)
	if err != nil {
		return err
	}
	return l.RecordCompletion(ctx, st.User.ID, tutorialID)
}

// RecordUsage records a tool usage event for the signed-in user.
func (s *SessionService) RecordUsage(ctx context.Context, deviceID, tool string, data map[string]any) (*models.UsageSession, error) {
	st, err := s.current(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	l, err := s.ledgerFor(st.Provider)
	if err != nil {
		return nil, err
	}
	return l.RecordUsage(ctx, st.User.ID, tool, data)
}

// Stats returns the signed-in user's statistics.
func (s *SessionService) Stats(ctx context.Context, deviceID string) (*models.Stats, error) {
	st, err := s.current(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	l, err := s.ledgerFor(st.Provider)
	if err != nil {
		return nil, err
	}
	return l.Stats(ctx, st.User.ID)
}

// Progress lists the signed-in user's completions, newest first.
func (s *SessionService) Progress(ctx context.Context, deviceID string) ([]models.Completion, error) {
	st, err := s.current(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	l, err := s.ledgerFor(st.Provider)
	if err != nil {
		return nil, err
	}
	return l.Progress(ctx, st.User.ID)
}

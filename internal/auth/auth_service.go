package auth

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	autherrors "go-formacao/internal/auth/errors"
	"go-formacao/internal/config"
	"go-formacao/internal/identity"
	"go-formacao/internal/mail"
	"go-formacao/internal/tenant"
	tenanterrors "go-formacao/internal/tenant/errors"
	"go-formacao/internal/user"
	usererrors "go-formacao/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)
	Register(ctx context.Context, req RegisterRequest) (TokenPairResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenPairResponse, error)
	Me(ctx context.Context, p *identity.Principal) (AuthResponse, error)
	RequestPasswordReset(ctx context.Context, req ForgotPasswordRequest) error
	ConfirmPasswordReset(ctx context.Context, req ResetPasswordRequest) error
}

type service struct {
	repo        Repository
	mailer      mail.Mailer
	recorder    audit.Recorder
	secret      []byte
	accessTTL   time.Duration
	refreshTTL  time.Duration
	resetTTL    time.Duration
	frontendURL string
	logger      *zap.Logger
}

func NewService(repo Repository, mailer mail.Mailer, recorder audit.Recorder, cfg config.Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:        repo,
		mailer:      mailer,
		recorder:    recorder,
		secret:      []byte(cfg.JWTSecret),
		accessTTL:   time.Duration(cfg.AccessTokenHours) * time.Hour,
		refreshTTL:  time.Duration(cfg.RefreshTokenDays) * 24 * time.Hour,
		resetTTL:    time.Duration(cfg.ResetTokenHours) * time.Hour,
		frontendURL: cfg.FrontendURL,
		logger:      l,
	}
}

func (s *service) generateToken(u *user.User, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"roles":   []string(identity.NormalizeRoles(u.Role, u.Roles)),
		"type":    tokenType,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	if u.TenantID != nil {
		claims["tenant_id"] = u.TenantID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}
	return signed, nil
}

func (s *service) generatePair(u *user.User) (TokenPairResponse, error) {
	access, err := s.generateToken(u, "access", s.accessTTL)
	if err != nil {
		return TokenPairResponse{}, err
	}
	refresh, err := s.generateToken(u, "refresh", s.refreshTTL)
	if err != nil {
		return TokenPairResponse{}, err
	}
	return TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toAuthResponse(u),
	}, nil
}

func (s *service) parseToken(raw, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != wantType {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

// Login authenticates against the tenant named by slug. Without a slug
// only platform accounts, which carry no tenant, can sign in.
func (s *service) Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error) {
	var tenantID *uuid.UUID
	if req.TenantSlug != "" {
		t, err := s.repo.FindTenantBySlug(ctx, req.TenantSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return TokenPairResponse{}, autherrors.ErrInvalidCredentials
			}
			return TokenPairResponse{}, err
		}
		if t.Status != tenant.StatusActive {
			return TokenPairResponse{}, tenanterrors.ErrTenantInactive
		}
		tenantID = &t.ID
	}

	u, err := s.repo.FindUserByEmail(ctx, tenantID, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenPairResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}
	if u.Status != user.StatusActive {
		return TokenPairResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.generatePair(u)
	if err != nil {
		return TokenPairResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       u.ID.String(),
		UserName:     u.Name,
		TenantID:     uuidPtrString(u.TenantID),
		Action:       audit.ActionLogin,
		ResourceType: "auth",
		ResourceID:   u.ID.String(),
		Details:      "Login realizado",
	}); err != nil {
		return TokenPairResponse{}, err
	}

	s.logger.Info("user logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("tenant_id", uuidPtrString(u.TenantID)),
	)
	return pair, nil
}

// Register is the self-service signup into an existing tenant. The
// account always starts with the base role.
func (s *service) Register(ctx context.Context, req RegisterRequest) (TokenPairResponse, error) {
	t, err := s.repo.FindTenantBySlug(ctx, req.TenantSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TokenPairResponse{}, err
	}
	if t.Status != tenant.StatusActive {
		return TokenPairResponse{}, tenanterrors.ErrTenantInactive
	}

	if t.MaxUsers != nil {
		count, err := s.repo.CountUsers(ctx, t.ID)
		if err != nil {
			return TokenPairResponse{}, err
		}
		if count >= int64(*t.MaxUsers) {
			return TokenPairResponse{}, tenanterrors.ErrUserLimitReached
		}
	}

	taken, err := s.repo.EmailExists(ctx, t.ID, req.Email)
	if err != nil {
		return TokenPairResponse{}, err
	}
	if taken {
		return TokenPairResponse{}, usererrors.ErrEmailTaken
	}
	if req.CPF != "" {
		taken, err := s.repo.CPFExists(ctx, t.ID, req.CPF)
		if err != nil {
			return TokenPairResponse{}, err
		}
		if taken {
			return TokenPairResponse{}, usererrors.ErrCPFTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return TokenPairResponse{}, err
	}

	u := &user.User{
		ID:       uuid.New(),
		TenantID: &t.ID,
		Name:     req.Name,
		Email:    req.Email,
		CPF:      req.CPF,
		Password: string(hash),
		Role:     identity.RoleUser,
		Roles:    []string{identity.RoleUser},
		Status:   user.StatusActive,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return TokenPairResponse{}, err
	}

	pair, err := s.generatePair(u)
	if err != nil {
		return TokenPairResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       u.ID.String(),
		UserName:     u.Name,
		TenantID:     t.ID.String(),
		Action:       audit.ActionRegister,
		ResourceType: "users",
		ResourceID:   u.ID.String(),
		Details:      "Usuário " + u.Name + " registrado",
	}); err != nil {
		return TokenPairResponse{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("tenant_id", t.ID.String()),
	)
	return pair, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (TokenPairResponse, error) {
	claims, err := s.parseToken(req.RefreshToken, "refresh")
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
		}
		return TokenPairResponse{}, err
	}
	if u.Status != user.StatusActive {
		return TokenPairResponse{}, autherrors.ErrUserInactive
	}

	return s.generatePair(u)
}

func (s *service) Me(ctx context.Context, p *identity.Principal) (AuthResponse, error) {
	userID, err := uuid.Parse(p.ID)
	if err != nil {
		return AuthResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, usererrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return toAuthResponse(u), nil
}

// RequestPasswordReset answers the same way whether or not the email
// exists, so the endpoint cannot be used to probe accounts.
func (s *service) RequestPasswordReset(ctx context.Context, req ForgotPasswordRequest) error {
	u, err := s.repo.FindAnyUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if u.Status != user.StatusActive {
		return nil
	}

	token, err := s.generateToken(u, "reset", s.resetTTL)
	if err != nil {
		return err
	}

	reset := &PasswordReset{
		ID:        uuid.New(),
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.repo.CreatePasswordReset(ctx, reset); err != nil {
		return err
	}

	resetURL := s.frontendURL + "/reset-password?token=" + token
	if err := s.mailer.SendPasswordReset(ctx, u.Email, u.Name, resetURL); err != nil {
		// the token row exists and the endpoint stays generic, a mail
		// outage must not reveal anything to the caller
		s.logger.Error("password reset mail failed",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
	}
	return nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, req ResetPasswordRequest) error {
	claims, err := s.parseToken(req.Token, "reset")
	if err != nil {
		return err
	}

	reset, err := s.repo.FindActiveReset(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrResetTokenUsed
		}
		return err
	}

	rawID, _ := claims["user_id"].(string)
	if rawID != reset.UserID.String() {
		return autherrors.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, reset.UserID, string(hash)); err != nil {
		return err
	}
	if err := s.repo.MarkResetUsed(ctx, reset.ID); err != nil {
		return err
	}

	s.logger.Info("password reset confirmed", zap.String("user_id", reset.UserID.String()))
	return nil
}

func toAuthResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		TenantID: uuidPtrString(u.TenantID),
		Name:     u.Name,
		Email:    u.Email,
		Roles:    identity.NormalizeRoles(u.Role, u.Roles),
	}
}

func uuidPtrString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

package auth

import (
	"context"
	"database/sql"
	"os"
	"time"

	autherrors "go-leavedesk/internal/auth/errors"
	"go-leavedesk/internal/ledger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (TokenPairResponse, error)
	Login(ctx context.Context, email, password string) (TokenPairResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	ledgerRepo ledger.Repository
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, ledgerRepo ledger.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, repo: repo, ledgerRepo: ledgerRepo, logger: l}
}

// Register creates the user and seeds the default leave entitlement in the
// same transaction, so no account ever exists without a ledger row per
// category.
func (s *service) Register(ctx context.Context, req RegisterRequest) (TokenPairResponse, error) {
	s.logger.Debug("register requested", zap.String("email", req.Email), zap.String("role", req.Role))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return TokenPairResponse{}, err
	}

	role := RoleEmployee
	if req.Role == string(RoleManager) {
		role = RoleManager
	}

	user := &User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register begin tx failed", zap.Error(err))
		return TokenPairResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, user); err != nil {
		s.logger.Warn("register create user failed", zap.String("email", req.Email), zap.Error(err))
		return TokenPairResponse{}, mapRepositoryError(err)
	}

	qledger := s.ledgerRepo.WithTx(tx)
	if err := qledger.Seed(ctx, user.ID.String(), ledger.DefaultEntitlement); err != nil {
		s.logger.Error("register seed balances failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return TokenPairResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register commit failed", zap.Error(err))
		return TokenPairResponse{}, err
	}
	s.logger.Info("register success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return s.tokenPair(user)
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPairResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.tokenPair(user)
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToResponse(u)
	return &resp, nil
}

func (s *service) tokenPair(user *User) (TokenPairResponse, error) {
	accessToken, err := s.generateToken(user.ID.String(), string(user.Role), time.Minute*15)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user.ID.String(), string(user.Role), time.Hour*24*7)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         mapToResponse(user),
	}, nil
}

func (s *service) generateToken(userID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

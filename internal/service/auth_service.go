package service

import (
	"errors"
	"fmt"

	"bakery-backoffice/internal/metrics"
	"bakery-backoffice/internal/model"
	"bakery-backoffice/internal/repository"
	"bakery-backoffice/pkg/jwt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AuthService interface {
	IssueToken(username, password string) (string, error)
	Authenticate(key string) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	db        *gorm.DB
	secret    []byte
}

func NewAuthService(db *gorm.DB, secret string) AuthService {
	return &authService{
		userRepo:  repository.NewUserRepo(db),
		tokenRepo: repository.NewTokenRepo(db),
		db:        db,
		secret:    []byte(secret),
	}
}

// IssueToken returns the token of the user whose username and email match.
// The password field carries the email. An existing token is returned as is.
func (s *authService) IssueToken(username, password string) (string, error) {
	verr := &ValidationError{}
	if username == "" {
		verr.Add("username", "required", "This field is required.")
	}
	if password == "" {
		verr.Add("password", "required", "This field is required.")
	}
	if err := verr.Err(); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByCredentials(username, password)
	if err != nil {
		if err := storeError("user", "get", err); !isNotFound(err) {
			return "", err
		}
		metrics.TokensIssued.WithLabelValues(metrics.OutcomeRejected).Inc()
		log.Warn().Str("username", username).Msg("token request rejected")
		return "", ErrInvalidCredentials
	}

	existing, err := s.tokenRepo.FindByUserID(user.ID)
	if err == nil {
		metrics.TokensIssued.WithLabelValues(metrics.OutcomeReused).Inc()
		return existing.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", storeError("token", "get", err)
	}

	key, err := jwt.GenerateToken(s.secret, user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	token := &model.AuthToken{Key: key, UserID: user.ID}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.WithTx(tx).Create(token); err != nil {
			return err
		}
		return writeAudit(tx, &user.ID, model.ActionTokenIssued, "username="+user.Username)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent request created the token first.
		if winner, ferr := s.tokenRepo.FindByUserID(user.ID); ferr == nil {
			metrics.TokensIssued.WithLabelValues(metrics.OutcomeReused).Inc()
			return winner.Key, nil
		}
	}
	if err != nil {
		return "", storeError("token", "create", err)
	}

	metrics.TokensIssued.WithLabelValues(metrics.OutcomeCreated).Inc()
	log.Info().Uint("user_id", user.ID).Msg("token issued")
	return key, nil
}

// Authenticate resolves a presented key to its user. The key must carry a
// valid signature and still be stored.
func (s *authService) Authenticate(key string) (*model.User, error) {
	if _, err := jwt.ValidateToken(s.secret, key); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokenRepo.FindByKey(key)
	if err != nil {
		if err := storeError("token", "get", err); !isNotFound(err) {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}
	if token.User == nil {
		return nil, ErrInvalidCredentials
	}
	return token.User, nil
}

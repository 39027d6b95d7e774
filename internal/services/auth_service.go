package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

type viewerClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type authServiceImpl struct {
	logger            zerolog.Logger
	directory         DirectoryService
	simulatedDelay    time.Duration
	jwtIssuer         string
	jwtSigningKey     []byte
	jwtAccessTokenTTL time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	directory DirectoryService,
	simulatedDelay time.Duration,
	jwtIssuer string,
	jwtSigningKey []byte,
	jwtAccessTokenTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:            logger,
		directory:         directory,
		simulatedDelay:    simulatedDelay,
		jwtIssuer:         jwtIssuer,
		jwtSigningKey:     jwtSigningKey,
		jwtAccessTokenTTL: jwtAccessTokenTTL,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	if s.simulatedDelay > 0 {
		timer := time.NewTimer(s.simulatedDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Warn().
				Err(ctx.Err()).
				Msg("login canceled")
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	member, err := s.directory.GetMemberByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			s.logger.Error().
				Str("email", params.Email).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", params.Email).
			Msg("failed to get member by email")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, member.PasswordHash)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().Msg("passwords do not match")
		return nil, ErrInvalidCredentials
	}

	viewer := models.Viewer{ID: member.ID, Role: member.Role}
	accessToken, expiresAt, err := s.generateAccessToken(viewer)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate access token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", member.ID).
		Str("role", string(member.Role)).
		Msg("logged in")
	return &LoginResult{
		Viewer:               viewer,
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) ParseToken(token string) (*models.Viewer, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&viewerClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSigningKey, nil
		},
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token is expired: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := t.Claims.(*viewerClaims)
	if !ok {
		return nil, errors.New("failed to parse token claims")
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("unknown role in token: %q", claims.Role)
	}
	return &models.Viewer{ID: claims.Subject, Role: claims.Role}, nil
}

func (s *authServiceImpl) generateAccessToken(viewer models.Viewer) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtAccessTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, viewerClaims{
		Role: viewer.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenUUID.String(),
			Issuer:    s.jwtIssuer,
			Subject:   viewer.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(s.jwtSigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

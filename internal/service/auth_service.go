package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"six-cities-api/internal/model"
)

// tokenTTL is the fixed expiry horizon baked into every issued token.
const tokenTTL = 48 * time.Hour

const signingAlgorithm = "HS256"

type userStore interface {
	Create(ctx context.Context, u model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type tokenStore interface {
	Save(ctx context.Context, token string, userID string) error
	GetUserID(ctx context.Context, token string) (string, error)
	Remove(ctx context.Context, token string) error
}

// HashPassword is the credential hash: a deterministic keyed digest of the
// plaintext under the server-wide salt. Identical inputs always produce the
// identical digest; plaintext is never stored.
func HashPassword(plaintext string, salt string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

type AuthService struct {
	users           userStore
	tokens          tokenStore
	jwtSecret       []byte
	salt            string
	defaultPassword string
}

func NewAuthService(users userStore, tokens tokenStore, jwtSecret string, salt string, defaultPassword string) *AuthService {
	return &AuthService{
		users:           users,
		tokens:          tokens,
		jwtSecret:       []byte(jwtSecret),
		salt:            salt,
		defaultPassword: defaultPassword,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, model.ErrEmailTaken
	}

	password := req.Password
	if password == "" {
		password = s.defaultPassword
	}

	userType := req.Type
	if userType == "" {
		userType = model.UserTypeStandart
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		AvatarURL:    strings.TrimSpace(req.AvatarURL),
		Type:         userType,
		PasswordHash: HashPassword(password, s.salt),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.User{}, err
	}

	slog.Info("user registered", "user_id", user.ID)
	user.PasswordHash = ""
	return user, nil
}

// Login verifies the credential and issues a fresh signed token, persisting
// it as a live session. Multiple concurrent sessions per user are allowed.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", err
	}

	if HashPassword(password, s.salt) != user.PasswordHash {
		return "", model.ErrInvalidCredentials
	}

	token, err := s.IssueToken(model.TokenClaims{
		UserID:   user.ID,
		Email:    user.Email,
		IssuedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	if err := s.tokens.Save(ctx, token, user.ID); err != nil {
		return "", err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// CurrentUser loads the profile behind an authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Logout revokes the presented token. Revoking an already-removed token is
// not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Remove(ctx, token)
}

// Authenticate runs the full check a request needs: signature and expiry via
// the codec, then the revocation lookup against the store. Revocation takes
// precedence over a still-valid signature.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.Identity, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return model.Identity{}, err
	}

	if _, err := s.tokens.GetUserID(ctx, token); err != nil {
		return model.Identity{}, err
	}

	return model.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

func (s *AuthService) IssueToken(claims model.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    claims.UserID,
		"email": claims.Email,
		"iat":   claims.IssuedAt.Unix(),
		"exp":   claims.IssuedAt.Add(tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) VerifyToken(tokenString string) (model.TokenClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Reject anything not signed with the one configured algorithm,
		// including "none" and asymmetric headers.
		if token.Method.Alg() != signingAlgorithm {
			return nil, model.ErrTokenInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	var claims model.TokenClaims
	claims.UserID, _ = claimsMap["id"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	if iat, iatErr := claimsMap.GetIssuedAt(); iatErr == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	if claims.UserID == "" {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	return claims, nil
}

package services

import (
	"fmt"
	"strings"
	"time"

	"upfound/internal/models"
	"upfound/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the identity provider adapter: it registers users, verifies
// credentials, and issues and validates the opaque tokens the rest of the
// system treats as viewer identity.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 7 * 24 * time.Hour,
	}
}

// RegisterUser registers a new user, hashes their password, assigns a public
// id, and returns a fresh token.
func (s *AuthService) RegisterUser(user *models.User) (string, error) {
	if user.Name == "" || user.Email == "" || user.Password == "" {
		return "", fmt.Errorf("%w: name, email, and password are required", ErrInvalidArgument)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return "", fmt.Errorf("%w: email '%s' already registered", ErrConflict, user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.UserID = newPublicID()
	user.CreatedAt = time.Now()

	if err := s.userRepo.Create(user); err != nil {
		return "", mapStoreErr(err)
	}
	return s.issueToken(user)
}

// LoginUser authenticates a user and returns a token if successful.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ValidateToken parses and validates a token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %v", ErrUnauthorized, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
}

// IdentityFromToken verifies a token and returns the viewer identity.
// Callers on optional-auth paths treat any error as "anonymous viewer".
func (s *AuthService) IdentityFromToken(tokenString string) (*Identity, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	id, _ := claims["id"].(string)
	userID, _ := claims["userId"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: token carries no identity", ErrUnauthorized)
	}
	return &Identity{ID: id, UserID: userID}, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":     user.ID,
		"userId": user.UserID,
		"exp":    time.Now().Add(s.tokenDurat).Unix(),
		"iat":    time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// newPublicID generates the short public user id embedded in profile URLs.
func newPublicID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/mailing"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	resetPasswordTTL     = time.Hour
	resetPasswordPurpose = "reset_password"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context, token string) error
		Me(ctx context.Context, userID string) (domain.User, error)
		GetUser(ctx context.Context, id string, viewerID string) (domain.User, error)
		GetUsers(ctx context.Context, page, limit int, viewerID string) (domain.PaginatedResponse[domain.User], error)
		SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		ResetPasswordConfirm(ctx context.Context, req domain.ResetPasswordConfirmRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		blacklist      jwt.TokenBlacklist
		sendMail       mailing.SendFunc
		hashCost       int
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	blacklist jwt.TokenBlacklist,
	sendMail mailing.SendFunc,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		blacklist:      blacklist,
		sendMail:       sendMail,
		hashCost:       bcrypt.DefaultCost,
	}
}

// ToUserResponse maps a user row to its public form.
func ToUserResponse(user *entities.User, isSubscribed bool) domain.User {
	if user == nil {
		return domain.User{}
	}
	return domain.User{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func (s *userService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", domain.ErrHashPassword
	}
	return string(hashed), nil
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	exists, err := s.userRepository.CheckEmail(ctx, req.Email)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, domain.ErrEmailAlreadyExists
	}

	exists, err = s.userRepository.CheckUsername(ctx, req.Username)
	if err != nil {
		return domain.User{}, err
	}
	if exists {
		return domain.User{}, domain.ErrUsernameAlreadyExist
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     strings.ToLower(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashed,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ErrUserAlreadyExists
		}
		return domain.User{}, err
	}

	logging.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return ToUserResponse(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String())
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ParseUserClaims(token)
	if err != nil {
		return err
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.blacklist.Revoke(ctx, claims.ID, ttl)
}

func (s *userService) Me(ctx context.Context, userID string) (domain.User, error) {
	return s.GetUser(ctx, userID, "")
}

func (s *userService) GetUser(ctx context.Context, id string, viewerID string) (domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, domain.ErrUserNotFound
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	subscribed, err := s.userRepository.GetSubscribedAuthorIDs(ctx, viewerID, []uuid.UUID{user.ID})
	if err != nil {
		return domain.User{}, err
	}

	return ToUserResponse(user, subscribed[user.ID]), nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int, viewerID string) (domain.PaginatedResponse[domain.User], error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	subscribed, err := s.userRepository.GetSubscribedAuthorIDs(ctx, viewerID, ids)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	results := make([]domain.User, 0, len(users))
	for _, u := range users {
		results = append(results, ToUserResponse(u, subscribed[u.ID]))
	}

	return domain.PaginatedResponse[domain.User]{
		Results:    results,
		Pagination: domain.NewPagination(page, limit, count),
	}, nil
}

func (s *userService) SetPassword(ctx context.Context, req domain.SetPasswordRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hashed, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, userID, hashed)
}

// passwordFingerprint ties a reset token to the password it was issued for,
// so a token stops working once it has been used.
func passwordFingerprint(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[len(hash)-12:]
}

// ResetPassword mails a reset link. Unknown addresses succeed silently.
func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"user_id": user.ID.String(),
		"purpose": resetPasswordPurpose,
		"pwd":     passwordFingerprint(user.Password),
	}, resetPasswordTTL)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(utils.GetConfig("APP_URL"), "/"), token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Follow <a href=\"%s\">this link</a> to choose a new Foodgram password. The link expires in one hour.</p>",
		user.FirstName, link,
	)

	if err := s.sendMail(user.Email, "Foodgram password reset", body); err != nil {
		logging.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to send password reset mail")
	}
	return nil
}

func (s *userService) ResetPasswordConfirm(ctx context.Context, req domain.ResetPasswordConfirmRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}

	purpose, _ := claims["purpose"].(string)
	userID, _ := claims["user_id"].(string)
	fingerprint, _ := claims["pwd"].(string)
	if purpose != resetPasswordPurpose || userID == "" {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTokenInvalid
		}
		return err
	}
	if passwordFingerprint(user.Password) != fingerprint {
		return domain.ErrTokenInvalid
	}

	hashed, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, userID, hashed)
}

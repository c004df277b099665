package user

import (
	"context"
	"errors"
	"fmt"
	"pickwise/domain"
	"pickwise/internal/repository/redis"
	"pickwise/pkg/logger"
	"pickwise/pkg/utils"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// TokenRepository handles the server-side session record for issued JWTs.
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, data redis.TokenData, ttl time.Duration) error
	DeleteToken(ctx context.Context, userID string) error
}

type userService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	tokenRepo               TokenRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

const (
	verificationCodeTTL      = 5
	sessionTTL               = 24 * time.Hour
	SubjectRegisterAccount   = "Activate Your Pickwise Account!"
	EmailBodyRegisterAccount = `Hi %v, activate your account by opening the link below</br></br>%v</br>note: link only valid for %v minutes`
)

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		tokenRepo:               tokenRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var validRoles = map[string]bool{
	RoleCustomer: true,
	RoleAdmin:    true,
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("invalid email format", "error", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("invalid user password", "error", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("email already exists", "email", user.Email)
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:   user.FullName,
		Email:      user.Email,
		Password:   string(passwordHash),
		IsVerified: false,
		Role:       RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("failed to create new user", "error", err)
		return domain.User{}, err
	}

	expAt := time.Now().Add(time.Minute * verificationCodeTTL).Unix()

	verificationCode := fmt.Sprintf("%v|%v", newUser.Email, expAt)
	verificationCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Fatal("error when encrypt verification code", "error", err)
	}
	strEncode := goshortcute.StringtoBase64Encode(verificationCodeEncrypt)
	activationLink := s.appDeploymentUrl + "/api/v1/users/email-verification/" + strEncode

	err = s.notifRepo.SendEmail(newUser.FullName, newUser.Email, SubjectRegisterAccount, fmt.Sprintf(EmailBodyRegisterAccount, newUser.FullName, activationLink, verificationCodeTTL))
	if err != nil {
		logger.Warn("failed to send verification email", "error", err)
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("invalid user credentials", "error", err)
		return "", domain.User{}, err
	}

	ok := utils.CheckPassword(password, user.Password)
	if !ok {
		logger.Error("user password incorrect", "email", email)
		return "", domain.User{}, errors.New("incorrect password")
	}

	if !user.IsVerified {
		logger.Error("email address has not been verified", "email", email)
		return "", domain.User{}, errors.New("email address has not been verified")
	}

	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr, user.Role)
	if err != nil {
		logger.Error("failed to generate token", "error", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	now := time.Now()
	err = s.tokenRepo.StoreToken(ctx, userIdStr, token, redis.TokenData{
		UserID:    userIdStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(sessionTTL),
	}, sessionTTL)
	if err != nil {
		logger.Error("failed to store session", "error", err)
		return "", domain.User{}, errors.New("failed to store session")
	}

	user.Password = ""
	return token, user, nil
}

// Logout drops the server-side session so the JWT stops being accepted.
func (s *userService) Logout(ctx context.Context, userID uint) error {
	userIdStr := strconv.FormatUint(uint64(userID), 10)
	if err := s.tokenRepo.DeleteToken(ctx, userIdStr); err != nil {
		logger.Error("failed to delete session", "error", err)
		return errors.New("failed to logout")
	}

	return nil
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	strDecode := goshortcute.StringtoBase64Decode(verificationCodeEncrypt)
	verificationCodeDecrypt, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("verifying email error", "error", err)
		return errors.New("invalid or expired url")
	}

	verificationCode := strings.Split(verificationCodeDecrypt, "|")
	if len(verificationCode) != 2 {
		logger.Error("verifying email error", "code", verificationCodeDecrypt)
		return errors.New("invalid or expired url")
	}

	email := verificationCode[0]
	expAtStr := verificationCode[1]

	ts, err := strconv.ParseInt(expAtStr, 10, 64)
	if err != nil {
		logger.Error("verifying email error", "code", verificationCodeDecrypt)
		return errors.New("invalid or expired url")
	}
	expAt := time.Unix(ts, 0)
	if time.Now().After(expAt) {
		return errors.New("invalid or expired url")
	}

	getUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("verifying email error", "error", err)
		return errors.New("failed to get user by email")
	}

	if getUser.IsVerified {
		logger.Warn("verify email error", "error", "email verified already")
		return errors.New("invalid or expired url")
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, getUser.ID, true); err != nil {
		logger.Error("verify email error", "error", err)
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to get user by ID", "error", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// GetAllUsers retrieves all users
func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to get all users", "error", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// UpdateUser updates user information
func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("user not found for update", "error", err)
		return domain.User{}, err
	}

	if updateData.FullName != "" {
		existingUser.FullName = updateData.FullName
	}

	if updateData.Email != "" {
		if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
			logger.Error("invalid email format", "error", err)
			return domain.User{}, errors.New("invalid email format")
		}

		// Check if email already exists (excluding current user)
		userWithEmail, err := s.userRepo.FindByEmail(ctx, updateData.Email)
		if err == nil && userWithEmail.ID != id {
			logger.Error("email already exists", "email", updateData.Email)
			return domain.User{}, errors.New("email already exists")
		}
		existingUser.Email = updateData.Email
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "required,min=6"); err != nil {
			logger.Error("invalid password", "error", err)
			return domain.User{}, errors.New("password must be at least 6 characters")
		}

		passwordHash, err := utils.HashPassword(updateData.Password)
		if err != nil {
			logger.Error("failed to hash password", "error", err)
			return domain.User{}, errors.New("failed to hash password")
		}
		existingUser.Password = string(passwordHash)
	}

	if updateData.Role != "" {
		if !validRoles[updateData.Role] {
			return domain.User{}, errors.New("invalid role")
		}
		existingUser.Role = updateData.Role
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("failed to update user", "error", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}

// DeleteUser soft deletes a user
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	_, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("user not found for deletion", "error", err)
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete user", "error", err)
		return err
	}

	return nil
}

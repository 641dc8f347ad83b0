package domain

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessLogout        = "logout successful"
	MessageSuccessGetUser       = "success get user"
	MessageSuccessGetUsers      = "success get users"
	MessageSuccessSetPassword   = "password changed successfully"
	MessageSuccessResetPassword = "password reset successfully"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedLogout        = "failed to logout"
	MessageFailedGetUser       = "failed to get user"
	MessageFailedGetUsers      = "failed to get users"
	MessageFailedSetPassword   = "failed to change password"
	MessageFailedResetPassword = "failed to reset password"

	ErrUserNotFound         = newError(ErrNotFound, "user not found")
	ErrEmailAlreadyExists   = newError(ErrConflict, "user with this email already exists")
	ErrUsernameAlreadyExist = newError(ErrConflict, "user with this username already exists")
	ErrUserAlreadyExists    = newError(ErrConflict, "user already exists")
	ErrInvalidCredentials   = newError(ErrValidation, "unable to log in with provided credentials")
	ErrWrongPassword        = newError(ErrValidation, "current password is incorrect")
	ErrHashPassword         = newError(ErrValidation, "failed to hash password")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,username,max=150"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=150"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=150"`
	}

	ResetPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordConfirmRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8,max=150"`
	}

	User struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}
)

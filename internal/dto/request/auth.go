package request

type RegisterRequest struct {
	Username        string `schema:"username" validate:"required,min=3,max=80"`
	Email           string `schema:"email" validate:"required,email,max=120"`
	Phone           string `schema:"phone" validate:"omitempty,min=10,max=20"`
	Password        string `schema:"password" validate:"required,min=6"`
	ConfirmPassword string `schema:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Username string `schema:"username" validate:"required"`
	Password string `schema:"password" validate:"required"`
	Next     string `schema:"next"`
}

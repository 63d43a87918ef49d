package dto

import (
	"strings"

	"wanderwise/internal/domains/user/model"
	"wanderwise/shared"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	gModel "wanderwise/shared/model"
	"wanderwise/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name              string  `json:"name"               validate:"required,min=2,max=100"`
	Email             string  `json:"email"              validate:"required,email"`
	Password          string  `json:"password"           validate:"required,min=8"`
	MobileNumber      *string `json:"mobile_number"      validate:"omitempty,min=7,max=20"`
	Role              string  `json:"role"               validate:"omitempty,oneof=ADMIN USER"`
	PreferredCurrency string  `json:"preferred_currency" validate:"omitempty,len=3"`
}

func (r *CreateUserRequest) ToModel(username, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleUser
	}

	currency := strings.ToUpper(r.PreferredCurrency)
	if currency == "" {
		currency = constant.DefaultCurrency
	}

	return model.User{
		ID:                uuid.NewString(),
		Name:              r.Name,
		Email:             strings.ToLower(r.Email),
		Password:          hashedPassword,
		MobileNumber:      r.MobileNumber,
		Role:              role,
		Status:            model.StatusActive,
		PreferredCurrency: currency,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateUserRequest struct {
	Name              *string `db:"name"               json:"name,omitempty"               validate:"omitempty,min=2,max=100"`
	MobileNumber      *string `db:"mobile_number"      json:"mobile_number,omitempty"      validate:"omitempty,min=7,max=20"`
	Role              *string `db:"role"               json:"role,omitempty"               validate:"omitempty,oneof=ADMIN USER"`
	Status            *string `db:"status"             json:"status,omitempty"             validate:"omitempty,oneof=ACTIVE INACTIVE"`
	PreferredCurrency *string `db:"preferred_currency" json:"preferred_currency,omitempty" validate:"omitempty,len=3"`
}

type UserResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	MobileNumber      *string `json:"mobile_number,omitempty"`
	Role              string  `json:"role"`
	Status            string  `json:"status"`
	PreferredCurrency string  `json:"preferred_currency"`
	TripsBooked       int     `json:"trips_booked"`
	LastLogin         *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.MobileNumber = model.MobileNumber
	r.Role = model.Role
	r.Status = model.Status
	r.PreferredCurrency = model.PreferredCurrency
	r.TripsBooked = model.TripsBooked

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

package dto

import (
	"wanderwise/internal/domains/notification/model"
	"wanderwise/shared"
	"wanderwise/shared/constant"
	"wanderwise/shared/timezone"
)

type NotificationResponse struct {
	ID        string `json:"id"`
	UserEmail string `json:"user_email"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.UserEmail = model.UserEmail
	r.Title = model.Title
	r.Body = model.Body
	r.Type = model.Type
	r.Read = model.Read
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}

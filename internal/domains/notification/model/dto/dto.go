package dto

import (
	"venus/internal/domains/notification/model"
	"venus/shared/constant"
	"venus/shared/timezone"
)

type NotificationResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Date    string `json:"date"`
	Read    bool   `json:"read"`
	Type    string `json:"type"`
}

func (n *NotificationResponse) FromModel(notification model.Notification) {
	n.ID = notification.ID
	n.UserID = notification.UserID
	n.Title = notification.Title
	n.Message = notification.Message
	n.Date = timezone.Format(notification.Date, constant.DateFormat)
	n.Read = notification.Read
	n.Type = string(notification.Type)
}

func FromModels(notifications []model.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(notifications))
	for i, notification := range notifications {
		res[i].FromModel(notification)
	}

	return res
}

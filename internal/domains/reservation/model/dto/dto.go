package dto

import (
	"venus/internal/domains/reservation/model"
	"venus/shared/constant"
	gDto "venus/shared/dto"
	"venus/shared/timezone"
)

type CreateReservationRequest struct {
	RoomID   string `json:"roomId"   validate:"required,max=100"`
	CheckIn  string `json:"checkIn"  validate:"required,date"`
	CheckOut string `json:"checkOut" validate:"required,date"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
}

type StatusChangeResponse struct {
	Status string `json:"status"`
	At     string `json:"at"`
	By     string `json:"by,omitempty"`
}

type ReservationResponse struct {
	ID            string                 `json:"id"`
	HotelID       string                 `json:"hotelId"`
	HotelName     string                 `json:"hotelName"`
	HotelImage    string                 `json:"hotelImage"`
	ClientID      string                 `json:"clientId"`
	ClientName    string                 `json:"clientName"`
	RoomID        string                 `json:"roomId,omitempty"`
	RoomName      string                 `json:"roomName"`
	CheckIn       string                 `json:"checkIn"`
	CheckOut      string                 `json:"checkOut"`
	TotalPrice    float64                `json:"totalPrice"`
	Status        string                 `json:"status"`
	StatusHistory []StatusChangeResponse `json:"statusHistory"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(reservation model.Reservation) {
	r.ID = reservation.ID
	r.HotelID = reservation.HotelID
	r.HotelName = reservation.HotelName
	r.HotelImage = reservation.HotelImage
	r.ClientID = reservation.ClientID
	r.ClientName = reservation.ClientName
	r.RoomID = reservation.RoomID
	r.RoomName = reservation.RoomName
	r.CheckIn = reservation.CheckIn
	r.CheckOut = reservation.CheckOut
	r.TotalPrice = reservation.TotalPrice
	r.Status = string(reservation.Status)
	r.Metadata.FromModel(reservation.Metadata)

	r.StatusHistory = make([]StatusChangeResponse, len(reservation.StatusHistory))
	for i, change := range reservation.StatusHistory {
		r.StatusHistory[i] = StatusChangeResponse{
			Status: string(change.Status),
			At:     timezone.Format(change.At, constant.DateFormat),
			By:     change.By,
		}
	}
}

func FromModels(reservations []model.Reservation) []ReservationResponse {
	res := make([]ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		res[i].FromModel(reservation)
	}

	return res
}

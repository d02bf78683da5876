package request

type CreateBookingRequest struct {
	ShowtimeID string   `json:"showtime_id" validate:"required"`
	SeatIDs    []string `json:"seat_ids" validate:"required,min=1,unique,dive,required"`
}

type ConfirmPaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

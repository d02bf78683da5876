package response

import (
	"fmt"
	"time"

	"seat-reservation/internal/data/entity"
)

type BookingResponse struct {
	BookingID      string    `json:"booking_id"`
	UserID         string    `json:"user_id"`
	ShowtimeID     string    `json:"showtime_id"`
	TotalPrice     string    `json:"total_price"`
	Status         string    `json:"status"`
	HoldExpiryTime time.Time `json:"hold_expiry_time"`
	CreatedAt      time.Time `json:"created_at"`
	SeatIDs        []string  `json:"seat_ids"`
	Message        string    `json:"message,omitempty"`
}

type TicketResponse struct {
	TicketID  string    `json:"ticket_id"`
	BookingID string    `json:"booking_id"`
	QRCode    string    `json:"qr_code"`
	QRImage   string    `json:"qr_image,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
	IsValid   bool      `json:"is_valid"`
	Message   string    `json:"message"`
}

type CancelResponse struct {
	Message      string `json:"message"`
	RefundAmount string `json:"refund_amount"`
	BookingID    string `json:"booking_id"`
}

// BookingToResponse projects a booking with a human-readable status
// message; when still RESERVED the message includes the remaining
// hold minutes.
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		BookingID:      b.ID(),
		UserID:         b.UserID(),
		ShowtimeID:     b.ShowtimeID(),
		TotalPrice:     b.TotalPrice().String(),
		Status:         b.Status().String(),
		HoldExpiryTime: b.HoldExpiry().ExpiryTime(),
		CreatedAt:      b.CreatedAt(),
		SeatIDs:        b.SeatIDs(),
		Message:        StatusMessage(b),
	}
}

// StatusMessage derives the booking status line shown to clients.
func StatusMessage(b *entity.Booking) string {
	switch b.Status() {
	case entity.BookingReserved:
		remaining := b.HoldExpiry().Remaining()
		if remaining > 0 {
			return fmt.Sprintf("Booking is reserved. Please complete payment within %d minutes.",
				int(remaining.Minutes()))
		}
		return "Booking has expired."
	case entity.BookingConfirmed:
		return "Booking is confirmed. Ticket has been issued."
	case entity.BookingCancelled:
		return "Booking has been cancelled."
	case entity.BookingExpired:
		return "Booking has expired."
	}
	return ""
}

package entity

import "time"

// Ticket is the admission credential issued for a confirmed booking.
// The id is derived from the booking id; the qr code carries an
// issuance timestamp, so re-issuing yields a different code.
type Ticket struct {
	ticketID  string
	bookingID string
	qrCode    string
	issuedAt  time.Time
	isValid   bool
}

func NewTicket(ticketID, bookingID, qrCode string, issuedAt time.Time) *Ticket {
	return &Ticket{
		ticketID:  ticketID,
		bookingID: bookingID,
		qrCode:    qrCode,
		issuedAt:  issuedAt,
		isValid:   true,
	}
}

func (t *Ticket) ID() string { return t.ticketID }

func (t *Ticket) BookingID() string { return t.bookingID }

func (t *Ticket) QRCode() string { return t.qrCode }

func (t *Ticket) IssuedAt() time.Time { return t.issuedAt }

func (t *Ticket) IsValid() bool { return t.isValid }

func (t *Ticket) Invalidate() { t.isValid = false }

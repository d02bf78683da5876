package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HoldTimeout is how long reserved seats are held pending payment.
const HoldTimeout = 10 * time.Minute

// Booking is the lifecycle aggregate for one reservation.
//
// State machine:
//
//	RESERVED --ConfirmPayment--> CONFIRMED --Cancel--> CANCELLED
//	RESERVED --CheckHoldExpiry-> EXPIRED
//
// CANCELLED and EXPIRED are terminal. The hold expiry is fixed at
// construction (createdAt + HoldTimeout) so it is reproducible from
// stored state.
type Booking struct {
	bookingID  string
	userID     string
	showtimeID string
	createdAt  time.Time
	totalPrice decimal.Decimal
	status     BookingStatus
	holdExpiry HoldExpiry
	items      []*BookingItem
}

// NewBooking creates a RESERVED booking. The total price is supplied
// by the caller; it is not reconciled against items added afterwards
// (see CalculateTotalPrice).
func NewBooking(bookingID, userID, showtimeID string, createdAt time.Time, totalPrice decimal.Decimal) *Booking {
	return &Booking{
		bookingID:  bookingID,
		userID:     userID,
		showtimeID: showtimeID,
		createdAt:  createdAt,
		totalPrice: totalPrice,
		status:     BookingReserved,
		holdExpiry: NewHoldExpiry(createdAt.Add(HoldTimeout)),
	}
}

// RehydrateBooking rebuilds a booking from stored state. The hold
// expiry is re-derived from createdAt, matching what construction
// produced.
func RehydrateBooking(bookingID, userID, showtimeID string, createdAt time.Time,
	totalPrice decimal.Decimal, status BookingStatus, items []*BookingItem) *Booking {
	return &Booking{
		bookingID:  bookingID,
		userID:     userID,
		showtimeID: showtimeID,
		createdAt:  createdAt,
		totalPrice: totalPrice,
		status:     status,
		holdExpiry: NewHoldExpiry(createdAt.Add(HoldTimeout)),
		items:      items,
	}
}

func (b *Booking) ID() string { return b.bookingID }

func (b *Booking) UserID() string { return b.userID }

func (b *Booking) ShowtimeID() string { return b.showtimeID }

func (b *Booking) CreatedAt() time.Time { return b.createdAt }

func (b *Booking) TotalPrice() decimal.Decimal { return b.totalPrice }

func (b *Booking) Status() BookingStatus { return b.status }

func (b *Booking) HoldExpiry() HoldExpiry { return b.holdExpiry }

func (b *Booking) AddItem(item *BookingItem) {
	b.items = append(b.items, item)
}

// Items returns a copy of the booking items in insertion order.
func (b *Booking) Items() []*BookingItem {
	out := make([]*BookingItem, len(b.items))
	copy(out, b.items)
	return out
}

// SeatIDs lists the seat ids across all items, in order.
func (b *Booking) SeatIDs() []string {
	ids := make([]string, len(b.items))
	for i, item := range b.items {
		ids[i] = item.SeatID()
	}
	return ids
}

// CalculateTotalPrice sums the item prices. The stored total is
// enforced by the orchestration layer, not here.
func (b *Booking) CalculateTotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.items {
		total = total.Add(item.Price())
	}
	return total
}

// ConfirmPayment transitions RESERVED -> CONFIRMED. If the hold has
// lapsed it fails with ErrHoldExpired but leaves the status as
// RESERVED; only CheckHoldExpiry performs the EXPIRED transition.
func (b *Booking) ConfirmPayment() error {
	if !b.status.IsReserved() {
		return fmt.Errorf("can only confirm reserved bookings, status is %s: %w", b.status, ErrInvalidState)
	}
	if b.holdExpiry.IsExpired() {
		return ErrHoldExpired
	}
	b.status = BookingConfirmed
	return nil
}

// CheckHoldExpiry transitions RESERVED -> EXPIRED when the hold
// window has passed, returning true only on the transition itself.
// Repeated calls on an already-expired booking return false.
func (b *Booking) CheckHoldExpiry() bool {
	if b.holdExpiry.IsExpired() && b.status.IsReserved() {
		b.status = BookingExpired
		return true
	}
	return false
}

// Cancel transitions CONFIRMED -> CANCELLED and returns the refund
// computed from the time remaining until the show.
func (b *Booking) Cancel(showtimeAt time.Time) (decimal.Decimal, error) {
	if !b.status.IsConfirmed() {
		return decimal.Zero, fmt.Errorf("can only cancel confirmed bookings, status is %s: %w", b.status, ErrInvalidState)
	}
	refund := b.totalPrice.Mul(RefundPercent(time.Until(showtimeAt)))
	b.status = BookingCancelled
	return refund, nil
}

// IssueTicket builds a ticket for a confirmed booking. Each call
// produces a fresh ticket; the qr code differs per issuance.
func (b *Booking) IssueTicket() (*Ticket, error) {
	if !b.status.IsConfirmed() {
		return nil, fmt.Errorf("can only issue ticket for confirmed bookings, status is %s: %w", b.status, ErrInvalidState)
	}
	now := time.Now()
	ticketID := "TKT_" + b.bookingID
	qrCode := fmt.Sprintf("QR_%s_%d", b.bookingID, now.UnixNano())
	return NewTicket(ticketID, b.bookingID, qrCode, now), nil
}

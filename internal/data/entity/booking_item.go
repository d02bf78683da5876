package entity

import "github.com/shopspring/decimal"

// BookingItem links one seat to its booking with the per-seat price
// snapshotted at booking time; later price changes on the showtime
// do not affect it.
type BookingItem struct {
	bookingItemID string
	bookingID     string
	seatID        string
	price         decimal.Decimal
}

func NewBookingItem(bookingItemID, bookingID, seatID string, price decimal.Decimal) *BookingItem {
	return &BookingItem{
		bookingItemID: bookingItemID,
		bookingID:     bookingID,
		seatID:        seatID,
		price:         price,
	}
}

func (i *BookingItem) ID() string { return i.bookingItemID }

func (i *BookingItem) BookingID() string { return i.bookingID }

func (i *BookingItem) SeatID() string { return i.seatID }

func (i *BookingItem) Price() decimal.Decimal { return i.price }

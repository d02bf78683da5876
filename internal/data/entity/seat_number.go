package entity

import (
	"errors"
	"strconv"
)

// SeatNumber is the value-object position of a seat: row letter plus
// 1-based column. Compared by value, rendered as e.g. "A1".
type SeatNumber struct {
	row    string
	column int
}

func NewSeatNumber(row string, column int) (SeatNumber, error) {
	if row == "" {
		return SeatNumber{}, errors.New("seat row must not be empty")
	}
	if column < 1 {
		return SeatNumber{}, errors.New("seat column must be at least 1")
	}
	return SeatNumber{row: row, column: column}, nil
}

func (n SeatNumber) Row() string { return n.row }

func (n SeatNumber) Column() int { return n.column }

func (n SeatNumber) String() string {
	return n.row + strconv.Itoa(n.column)
}

func (n SeatNumber) Equal(other SeatNumber) bool {
	return n.row == other.row && n.column == other.column
}

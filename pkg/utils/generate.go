package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

func GenerateUUIDString() string {
	return uuid.New().String()
}

// GenerateBookingID creates a booking id of the form
// BK-YYYYMMDD-HHMMSS-RRRR. The random suffix keeps same-second
// bookings distinct.
func GenerateBookingID() string {
	now := time.Now()
	return fmt.Sprintf("BK-%s-%s-%04d",
		now.Format("20060102"),
		now.Format("150405"),
		rand.Intn(10000),
	)
}

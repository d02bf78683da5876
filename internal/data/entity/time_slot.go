package entity

import "time"

// TimeSlot is the calendar-naive schedule of a showtime. Date is
// "2006-01-02", times are "15:04"; no timezone is carried, values
// compare by string equality.
type TimeSlot struct {
	date      string
	startTime string
	endTime   string
}

func NewTimeSlot(date, startTime, endTime string) TimeSlot {
	return TimeSlot{date: date, startTime: startTime, endTime: endTime}
}

func (ts TimeSlot) Date() string { return ts.date }

func (ts TimeSlot) StartTime() string { return ts.startTime }

func (ts TimeSlot) EndTime() string { return ts.endTime }

func (ts TimeSlot) Equal(other TimeSlot) bool {
	return ts == other
}

// ShowDateTime resolves the slot to a wall-clock instant in the local
// zone, used for refund calculation on cancellation.
func (ts TimeSlot) ShowDateTime() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", ts.date+" "+ts.startTime, time.Local)
}

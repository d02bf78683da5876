package response

import "seat-reservation/internal/data/entity"

type SeatResponse struct {
	SeatID     string `json:"seat_id"`
	SeatNumber string `json:"seat_number"`
	Status     string `json:"status"`
}

type ShowtimeResponse struct {
	ShowtimeID     string `json:"showtime_id"`
	MovieID        string `json:"movie_id"`
	ScreenID       string `json:"screen_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	PricePerSeat   string `json:"price_per_seat"`
	AvailableSeats int    `json:"available_seats"`
}

type ShowtimeDetailResponse struct {
	ShowtimeResponse
	Seats []SeatResponse `json:"seats"`
}

func ShowtimeToResponse(st *entity.Showtime) ShowtimeResponse {
	slot := st.TimeSlot()
	return ShowtimeResponse{
		ShowtimeID:     st.ID(),
		MovieID:        st.MovieID(),
		ScreenID:       st.ScreenID(),
		Date:           slot.Date(),
		StartTime:      slot.StartTime(),
		EndTime:        slot.EndTime(),
		PricePerSeat:   st.PricePerSeat().String(),
		AvailableSeats: st.AvailableSeats(),
	}
}

func ShowtimeToDetailResponse(st *entity.Showtime) ShowtimeDetailResponse {
	seats := st.Seats()
	seatResponses := make([]SeatResponse, len(seats))
	for i, seat := range seats {
		seatResponses[i] = SeatResponse{
			SeatID:     seat.ID(),
			SeatNumber: seat.Number().String(),
			Status:     string(seat.Status()),
		}
	}
	return ShowtimeDetailResponse{
		ShowtimeResponse: ShowtimeToResponse(st),
		Seats:            seatResponses,
	}
}

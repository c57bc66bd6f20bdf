package catalog

import "github.com/thanhlp18/homestay-booking-sub000/internal/schedule"

type CheckInOption struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type CheckInTimesResponse struct {
	TimeSlotID string              `json:"timeSlotId"`
	Date       string              `json:"date"`
	Label      string              `json:"label"`
	Overnight  bool                `json:"overnight"`
	Range      *schedule.TimeRange `json:"range,omitempty"`
	// Fallback is set when the label could not be read and the whole day is offered.
	Fallback bool            `json:"fallback"`
	Times    []CheckInOption `json:"times"`
}

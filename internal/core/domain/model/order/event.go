package order

import "time"

// Event is one entry of the tracking timeline.
type Event struct {
	Status Status
	At     time.Time
	Note   string
}

var defaultNotes = map[Status]string{
	Scheduled: "Order placed, waiting for pickup window",
	Confirmed: "Order confirmed, driver on the way",
	PickedUp:  "Parcel collected",
	InTransit: "Parcel in transit",
	Delivered: "Parcel delivered",
	Cancelled: "Order cancelled",
}

func newEvent(status Status, at time.Time, note string) Event {
	if note == "" {
		note = defaultNotes[status]
	}
	return Event{Status: status, At: at.UTC(), Note: note}
}

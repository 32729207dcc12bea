package domain

// StatusDisplay is the label and badge colour a status renders with
type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// UnknownDisplay is only used for values outside the enumerations
var UnknownDisplay = StatusDisplay{Label: "Unknown", Color: "gray"}

var bidDisplays = map[BidStatus]StatusDisplay{
	BidOpen:         {Label: "Open", Color: "blue"},
	BidCounterOffer: {Label: "Counter Offer", Color: "amber"},
	BidAccepted:     {Label: "Accepted", Color: "green"},
	BidRejected:     {Label: "Rejected", Color: "red"},
	BidWithdrawn:    {Label: "Withdrawn", Color: "gray"},
}

var tourDisplays = map[TourStatus]StatusDisplay{
	TourScheduled:   {Label: "Scheduled", Color: "blue"},
	TourCancelled:   {Label: "Cancelled", Color: "red"},
	TourRescheduled: {Label: "Rescheduled", Color: "amber"},
	TourCompleted:   {Label: "Completed", Color: "green"},
	TourNoShow:      {Label: "No Show", Color: "slate"},
}

// Display returns the badge for a bid status
func (s BidStatus) Display() StatusDisplay {
	if d, ok := bidDisplays[s]; ok {
		return d
	}
	return UnknownDisplay
}

// Display returns the badge for a tour status
func (s TourStatus) Display() StatusDisplay {
	if d, ok := tourDisplays[s]; ok {
		return d
	}
	return UnknownDisplay
}

package types

// UnsubscribeInfo is attached to every record returned by the
// recent-unsubscribes operation.
type UnsubscribeInfo struct {
	UnsubscribedAt string `json:"unsubscribed_at,omitempty"`
	// Source names the record field UnsubscribedAt was taken from:
	// unsubscribed_at, updated_at or created_at.
	Source string `json:"source,omitempty"`
	Status string `json:"status,omitempty"`
}

type UnsubscribeFilters struct {
	Since  string `json:"since,omitempty"`
	Before string `json:"before,omitempty"`
}

type RecentUnsubscribes struct {
	Subscribers []Object           `json:"subscribers"`
	Total       int                `json:"total"`
	Filters     UnsubscribeFilters `json:"filters"`
	Meta        any                `json:"meta,omitempty"`
}

type UnsubscribeMember struct {
	Email          string `json:"email,omitempty"`
	Id             any    `json:"id,omitempty"`
	UnsubscribedAt string `json:"unsubscribed_at"`
}

type UnsubscribeDay struct {
	Count       int                 `json:"count"`
	Subscribers []UnsubscribeMember `json:"subscribers"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type UnsubscribeStats struct {
	Total        int                       `json:"total"`
	ByDate       map[string]UnsubscribeDay `json:"by_date"`
	DateRange    *DateRange                `json:"date_range"`
	DailyAverage float64                   `json:"daily_average"`
}

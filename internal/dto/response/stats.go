package response

type StatsResponse struct {
	TotalBranches     int                `json:"total_branches"`
	ActiveBookings    int                `json:"active_bookings"`
	CancelledBookings int                `json:"cancelled_bookings"`
	ConfirmedBookings int                `json:"confirmed_bookings"`
	PopularBranches   []BranchPopularity `json:"popular_branches"`
	BookingTrends     []TrendBucket      `json:"booking_trends"`
}

type BranchPopularity struct {
	BranchName    string `json:"branch_name"`
	BookingsCount int    `json:"bookings_count"`
}

// TrendBucket is one interval of the trend series: an "HH:00" label for the
// day period, a calendar date otherwise.
type TrendBucket struct {
	Period        string `json:"period"`
	BookingsCount int    `json:"bookings_count"`
}

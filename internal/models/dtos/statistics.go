package dtos

import "time"

// StatisticsOverview aggregates the six dashboard blocks. Each block comes
// from its own query; they are fetched concurrently by the service.
type StatisticsOverview struct {
	RangeDays     int                `json:"rangeDays"`
	GeneratedAt   time.Time          `json:"generatedAt"`
	Users         UserStats          `json:"users"`
	Campaigns     CampaignStats      `json:"campaigns"`
	HelpRequests  HelpRequestStats   `json:"helpRequests"`
	Registrations RegistrationStats  `json:"registrations"`
	TopDistricts  []DistrictActivity `json:"topDistricts"`
	Messages      MessageVolumeStats `json:"messages"`
}

type UserStats struct {
	Total      int64            `json:"total"`
	ByRole     map[string]int64 `json:"byRole"`
	ByStatus   map[string]int64 `json:"byStatus"`
	NewInRange int64            `json:"newInRange"`
}

type CampaignStats struct {
	Total      int64 `json:"total"`
	Ongoing    int64 `json:"ongoing"`
	Completed  int64 `json:"completed"`
	Volunteers int64 `json:"volunteers"`
}

type HelpRequestStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

type RegistrationStats struct {
	InRange  int64 `json:"inRange"`
	Attended int64 `json:"attended"`
}

type DistrictActivity struct {
	District  string `json:"district" db:"district"`
	Campaigns int64  `json:"campaigns" db:"campaigns"`
	Requests  int64  `json:"requests" db:"requests"`
}

type MessageVolumeStats struct {
	Total   int64 `json:"total"`
	InRange int64 `json:"inRange"`
}

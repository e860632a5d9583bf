package model

// DBHealth reports store connectivity and raw record counts.
type DBHealth struct {
	Status           string `json:"status"`
	Database         string `json:"database"`
	SubmissionsCount int    `json:"submissions_count"`
	InvoicesCount    int    `json:"invoices_count"`
	Timestamp        string `json:"timestamp"`
}

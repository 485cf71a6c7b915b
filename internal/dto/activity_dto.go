package dto

type ActivityLogResponse struct {
	ID         string  `json:"id"`
	OperatorID *string `json:"operator_id,omitempty"`
	Action     string  `json:"action"`
	Resource   string  `json:"resource"`
	Details    string  `json:"details,omitempty"`
	Status     string  `json:"status"`
	Timestamp  string  `json:"timestamp"`
}

type ActivityLogListResponse struct {
	Data  []ActivityLogResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

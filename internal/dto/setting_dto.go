package dto

type UpsertSettingRequest struct {
	Value       string  `json:"value"       validate:"required"`
	Description *string `json:"description"`
}

type SettingResponse struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description,omitempty"`
}

package responses

type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type HealthDTO struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Redis   string `json:"redis,omitempty"`
}

package dto

// Envelope wraps every successful response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// BulkResponse reports how many rows of a batch were actually inserted.
type BulkResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   int         `json:"count"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

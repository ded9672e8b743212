package api

// Response envelopes shared by all handlers. Every endpoint reports a
// success flag so clients can branch without inspecting status codes.

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"ok"`
}

type DataResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
}

type ListResponse struct {
	Success bool        `json:"success" example:"true"`
	Count   int         `json:"count" example:"3"`
	Data    interface{} `json:"data"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

func Error(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

func Message(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}

func Data(data interface{}) DataResponse {
	return DataResponse{Success: true, Data: data}
}

func List(count int, data interface{}) ListResponse {
	return ListResponse{Success: true, Count: count, Data: data}
}

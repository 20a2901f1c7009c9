package response

type APIError struct {
	Message string `json:"message"`
}

type Swept struct {
	Count int `json:"count"`
}

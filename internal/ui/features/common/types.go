package common

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// DataResponse is the body of a successful API call that returns data.
type DataResponse[T any] struct {
	OK   bool `json:"ok"`
	Data T    `json:"data"`
}

// NewData wraps data in a successful response.
func NewData[T any](data T) DataResponse[T] {
	return DataResponse[T]{OK: true, Data: data}
}

package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	// Debug carries the raw error text in development builds only.
	Debug string `json:"debug,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

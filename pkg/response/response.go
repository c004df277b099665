package response

// Body is the envelope for every JSON response.
type Body struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(message string, data interface{}) Body {
	return Body{
		Code:    "SUCCESS",
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data interface{}) Body {
	return Body{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

package api

// ErrorBody 錯誤訊息
type ErrorBody struct {
	Message string `json:"message" example:"Invalid token"`
}

// ErrorResponse 失敗回應
// swagger:model ErrorResponse
type ErrorResponse struct {
	Success bool      `json:"success" example:"false"`
	Error   ErrorBody `json:"error"`
}

// SuccessResponse 成功回應
// swagger:model SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
	Data    any  `json:"data,omitempty"`
}

// Fail 建立失敗回應
func Fail(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: ErrorBody{Message: msg}}
}

// OK 建立成功回應
func OK(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// TokenData 登入與註冊成功時回傳
type TokenData struct {
	Token string `json:"token"`
}

// MessageData 僅含訊息的回應資料
type MessageData struct {
	Message string `json:"message" example:"OTP sent successfully"`
}

package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorBody 是所有接口统一的错误响应结构
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[http] failed to encode response: %v", err)
	}
}

// RespondError 发送只有错误标题的响应
func RespondError(w http.ResponseWriter, status int, title string) {
	RespondJSON(w, status, ErrorBody{Error: title})
}

// RespondNotice 发送带有用户可读提示的错误响应
func RespondNotice(w http.ResponseWriter, status int, title, message string) {
	RespondJSON(w, status, ErrorBody{Error: title, Message: message})
}

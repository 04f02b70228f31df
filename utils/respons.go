package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse adalah amplop semua response API
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError menulis pesan error ke client. Detail error 5xx tidak dikirim keluar,
// caller yang mencatatnya di log.
func RespondError(c *gin.Context, code int, err error) {
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		msg = http.StatusText(code)
	}
	c.JSON(code, JSONResponse{Status: false, Message: msg})
}

// Package handler contains the HTTP handlers. Every endpoint answers
// with the same typed envelope so clients never branch on ad hoc
// response shapes.
package handler

import "github.com/labstack/echo/v4"

// Envelope is the uniform response body:
// {status, isSuccess, message, result}. Result is nil on failures and
// on mutations that have nothing to return.
type Envelope struct {
	Status    int    `json:"status"`
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	Result    any    `json:"result"`
}

// respond writes a success envelope with the given HTTP status.
func respond(c echo.Context, status int, message string, result any) error {
	return c.JSON(status, Envelope{Status: status, IsSuccess: true, Message: message, Result: result})
}

// fail writes a failure envelope. result is usually nil but the pin
// conflict uses it to carry the needs-confirmation payload.
func fail(c echo.Context, status int, message string, result any) error {
	return c.JSON(status, Envelope{Status: status, IsSuccess: false, Message: message, Result: result})
}

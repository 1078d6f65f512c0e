package model

import "net/http"

// SecurityLayer provides the base transport for backend connections.
type SecurityLayer interface {
	Transport() (http.RoundTripper, error)
}

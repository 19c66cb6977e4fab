package types

import pkgerrors "github.com/ammabio/amma-backend/pkg/errors"

// Envelope is the uniform JSON body returned by every endpoint.
type Envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Data    any                   `json:"data,omitempty"`
	Errors  pkgerrors.FieldErrors `json:"errors,omitempty"`
	Count   *int                  `json:"count,omitempty"`
}

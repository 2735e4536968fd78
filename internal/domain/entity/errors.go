package entity

import "errors"

var (
	ErrInvalidArgument           = errors.New("invalid argument")
	ErrProductNotFound           = errors.New("product not found")
	ErrCartItemNotFound          = errors.New("product not found in cart")
	ErrUnknownTool               = errors.New("unknown tool")
	ErrSessionNotFound           = errors.New("session not found")
	ErrUpstreamUnavailable       = errors.New("generation service unavailable")
	ErrMalformedUpstreamResponse = errors.New("invalid generation response structure")
)

package repository

import "context"

// SMSSender delivers a text message to a phone number and returns a provider message id.
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) (string, error)
}

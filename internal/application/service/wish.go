package service

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/domain/entity"
	"context"
)

// WishService helps the coordinator send well-wishes to a person.
type WishService interface {
	// Links returns one deep link per wish channel. A person without a phone number has none.
	Links(person *entity.Person, message string) []dto.WishLink
	// SendSMS sends message to person over SMS and returns the provider message id.
	SendSMS(ctx context.Context, person *entity.Person, message string) (string, error)
}

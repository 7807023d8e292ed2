package service

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/domain/constant"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"context"
	"fmt"
	"net/url"
	"strings"
)

type wishService struct {
	sms repository.SMSSender
	log logger.Logger
}

// NewWishService creates a WishService. sms may be nil when SMS is not configured.
func NewWishService(sms repository.SMSSender, log logger.Logger) WishService {
	return &wishService{sms: sms, log: log}
}

func wishMessage(message string) string {
	if m := strings.TrimSpace(message); m != "" {
		return m
	}
	return constant.DefaultWishMessage
}

func (s *wishService) Links(person *entity.Person, message string) []dto.WishLink {
	phone := person.Phone()
	if phone == "" {
		return []dto.WishLink{}
	}
	text := escapeText(wishMessage(message))

	links := make([]dto.WishLink, 0, len(constant.WishChannels))
	for _, ch := range constant.WishChannels {
		var link string
		switch ch {
		case constant.WishCall:
			link = "tel:" + phone
		case constant.WishSMS:
			link = fmt.Sprintf("sms:%s?body=%s", phone, text)
		case constant.WishWhatsApp:
			link = fmt.Sprintf("whatsapp://send?phone=%s&text=%s", phone, text)
		case constant.WishTelegram:
			link = fmt.Sprintf("tg://msg?to=%s&text=%s", phone, text)
		default:
			continue
		}
		links = append(links, dto.WishLink{Channel: string(ch), URL: link})
	}
	return links
}

// escapeText percent-encodes text for a query value, spaces as %20.
func escapeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func (s *wishService) SendSMS(ctx context.Context, person *entity.Person, message string) (string, error) {
	if s.sms == nil {
		return "", fmt.Errorf("%w: sms", appErrors.ErrChannelDisabled)
	}
	phone := person.Phone()
	if phone == "" {
		return "", fmt.Errorf("%w: %s has no mobile number", appErrors.ErrInvalidPerson, person.Name)
	}
	id, err := s.sms.Send(ctx, phone, wishMessage(message))
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to send SMS wish to %s", person.Name), err)
		return "", err
	}
	s.log.Info(fmt.Sprintf("Sent SMS wish to %s.", person.Name))
	return id, nil
}

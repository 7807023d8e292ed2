package dto

import (
	"bdaywisher/internal/domain/entity"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of birth dates.
const DateLayout = "2006-01-02"

// AddPersonRequest is the DTO for adding a roster entry.
type AddPersonRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date"`
	CountryCode  string `json:"country_code"`
	MobileNumber string `json:"mobile_number"`
	FieldOfStudy string `json:"field_of_study"`
	Branch       string `json:"branch"`
}

// ToEntity parses the request into a Person.
func (r AddPersonRequest) ToEntity() (*entity.Person, error) {
	birthDate, err := time.Parse(DateLayout, strings.TrimSpace(r.BirthDate))
	if err != nil {
		return nil, fmt.Errorf("birth_date must be YYYY-MM-DD: %w", err)
	}
	return &entity.Person{
		ID:           strings.TrimSpace(r.ID),
		Name:         strings.TrimSpace(r.Name),
		BirthDate:    birthDate,
		CountryCode:  strings.TrimSpace(r.CountryCode),
		MobileNumber: strings.TrimSpace(r.MobileNumber),
		FieldOfStudy: strings.TrimSpace(r.FieldOfStudy),
		Branch:       strings.TrimSpace(r.Branch),
	}, nil
}

// PersonResponse is the DTO for a roster entry.
type PersonResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date"`
	CountryCode  string `json:"country_code,omitempty"`
	MobileNumber string `json:"mobile_number,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	Branch       string `json:"branch,omitempty"`
}

// ToPersonResponse converts an entity.Person to a PersonResponse DTO.
func ToPersonResponse(p *entity.Person) PersonResponse {
	return PersonResponse{
		ID:           p.ID,
		Name:         p.Name,
		BirthDate:    p.BirthDate.Format(DateLayout),
		CountryCode:  p.CountryCode,
		MobileNumber: p.MobileNumber,
		FieldOfStudy: p.FieldOfStudy,
		Branch:       p.Branch,
	}
}

// ToPersonResponseList converts a slice of entity.Person to a slice of PersonResponse DTOs.
func ToPersonResponseList(people []*entity.Person) []PersonResponse {
	list := make([]PersonResponse, len(people))
	for i, p := range people {
		list[i] = ToPersonResponse(p)
	}
	return list
}

// SnapshotResponse is the DTO for today's and tomorrow's birthdays.
type SnapshotResponse struct {
	Date     string           `json:"date"`
	Today    []PersonResponse `json:"today"`
	Tomorrow []PersonResponse `json:"tomorrow"`
}

// ToSnapshotResponse converts an entity.RosterSnapshot to a SnapshotResponse DTO.
func ToSnapshotResponse(s *entity.RosterSnapshot) SnapshotResponse {
	return SnapshotResponse{
		Date:     s.Date.Format(DateLayout),
		Today:    ToPersonResponseList(s.Today),
		Tomorrow: ToPersonResponseList(s.Tomorrow),
	}
}

// RosterStatus reports the roster cache's loading and error flags.
type RosterStatus struct {
	Loading       bool       `json:"loading"`
	Error         string     `json:"error,omitempty"`
	Retryable     bool       `json:"retryable"`
	People        int        `json:"people"`
	LastRefreshed *time.Time `json:"last_refreshed,omitempty"`
}

// WishLink is a deep link that opens a well-wish on one channel.
type WishLink struct {
	Channel string `json:"channel"`
	URL     string `json:"url"`
}

// SendWishRequest is the DTO for sending an SMS wish. An empty message uses the default wish.
type SendWishRequest struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

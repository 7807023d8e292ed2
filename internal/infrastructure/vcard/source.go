// Package vcard reads and appends the roster as a vCard file.
package vcard

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"bdaywisher/internal/pkg/logger"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-vcard"
)

const birthDateLayout = "2006-01-02"

var birthDateLayouts = []string{
	birthDateLayout,
	"20060102",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"--01-02",
	"--0102",
}

// Source is a RosterSource stored in a single .vcf file. Each card carries
// the person's roll number in UID.
type Source struct {
	path string
	log  logger.Logger
	mu   sync.Mutex
}

var _ repository.RosterSource = (*Source)(nil)

// NewSource creates a vCard roster source for path.
func NewSource(path string, log logger.Logger) *Source {
	return &Source{path: path, log: log}
}

// FetchAll decodes every card with a birthday. A missing file is an empty roster.
func (s *Source) FetchAll(ctx context.Context) ([]*entity.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Warn(fmt.Sprintf("vCard roster %s does not exist yet, treating as empty", s.path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open vCard roster %s: %w", s.path, err)
	}
	defer f.Close()

	return s.decode(ctx, f)
}

func (s *Source) decode(ctx context.Context, r io.Reader) ([]*entity.Person, error) {
	decoder := vcard.NewDecoder(r)
	var people []*entity.Person
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode vCard roster %s: %w", s.path, err)
		}

		p, err := toPerson(card)
		if err != nil {
			s.log.Debug(fmt.Sprintf("Skipping vCard entry: %v", err))
			continue
		}
		people = append(people, p)
	}
	return people, nil
}

// Append encodes person as a new card at the end of the file.
func (s *Source) Append(ctx context.Context, person *entity.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open vCard roster %s: %w", s.path, err)
	}
	if err := vcard.NewEncoder(f).Encode(toCard(person)); err != nil {
		f.Close()
		return fmt.Errorf("failed to append person %s: %w", person.ID, err)
	}
	return f.Close()
}

func toPerson(card vcard.Card) (*entity.Person, error) {
	bday := card.Value(vcard.FieldBirthday)
	if bday == "" {
		return nil, errors.New("no BDAY")
	}
	birthDate, err := parseBirthDate(bday)
	if err != nil {
		return nil, err
	}

	name := card.Value(vcard.FieldFormattedName)
	if name == "" {
		if n := card.Name(); n != nil {
			name = strings.TrimSpace(n.GivenName + " " + n.FamilyName)
		}
	}
	if name == "" {
		return nil, errors.New("no name")
	}

	id := card.Value(vcard.FieldUID)
	if id == "" {
		// Stable across reads as long as the name and date do not change.
		sum := sha256.Sum256([]byte(name + "|" + birthDate.Format(birthDateLayout)))
		id = fmt.Sprintf("%x", sum[:8])
	}

	p := &entity.Person{ID: id, Name: name, BirthDate: birthDate}
	p.CountryCode, p.MobileNumber = splitPhone(card.Value(vcard.FieldTelephone))
	if org := card.Value(vcard.FieldOrganization); org != "" {
		parts := strings.SplitN(org, ";", 2)
		p.FieldOfStudy = parts[0]
		if len(parts) == 2 {
			p.Branch = parts[1]
		}
	}
	return p, nil
}

func toCard(p *entity.Person) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, "4.0")
	card.SetValue(vcard.FieldUID, p.ID)
	card.SetValue(vcard.FieldFormattedName, p.Name)
	card.SetValue(vcard.FieldBirthday, p.BirthDate.Format(birthDateLayout))
	if p.MobileNumber != "" {
		tel := p.MobileNumber
		if p.CountryCode != "" {
			tel = p.CountryCode + " " + p.MobileNumber
		}
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  tel,
			Params: vcard.Params{vcard.ParamType: {vcard.TypeCell}},
		})
	}
	if p.FieldOfStudy != "" || p.Branch != "" {
		card.SetValue(vcard.FieldOrganization, p.FieldOfStudy+";"+p.Branch)
	}
	return card
}

func parseBirthDate(value string) (time.Time, error) {
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized BDAY %q", value)
}

// splitPhone splits "+91 9876543210" into its country code and number.
func splitPhone(tel string) (string, string) {
	tel = strings.TrimSpace(tel)
	if strings.HasPrefix(tel, "+") {
		if cc, number, ok := strings.Cut(tel, " "); ok {
			return cc, strings.ReplaceAll(number, " ", "")
		}
	}
	return "", tel
}

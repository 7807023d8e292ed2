package sqlite

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type rosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository creates a RosterSource backed by the roster table.
func NewRosterRepository(db *gorm.DB) repository.RosterSource {
	return &rosterRepository{db: db}
}

// FetchAll returns every person ordered by roll number.
func (r *rosterRepository) FetchAll(ctx context.Context) ([]*entity.Person, error) {
	var people []*entity.Person
	if err := r.db.WithContext(ctx).Order("roll_number").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	return people, nil
}

// Append inserts a person. A duplicate roll number fails on the primary key.
func (r *rosterRepository) Append(ctx context.Context, person *entity.Person) error {
	if err := r.db.WithContext(ctx).Create(person).Error; err != nil {
		return fmt.Errorf("failed to append person %s: %w", person.ID, err)
	}
	return nil
}

// SeedIfEmpty inserts the sample roster when the table has no rows.
func SeedIfEmpty(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.Person{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count roster: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	people := SampleRoster()
	if err := db.WithContext(ctx).Create(&people).Error; err != nil {
		return 0, fmt.Errorf("failed to seed roster: %w", err)
	}
	return len(people), nil
}

// SampleRoster returns the demo students used on first run.
func SampleRoster() []entity.Person {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	return []entity.Person{
		{ID: "22CS001", Name: "Aarav Sharma", BirthDate: d(2004, time.January, 15), CountryCode: "+91", MobileNumber: "9876543210", FieldOfStudy: "Computer Science", Branch: "Software Engineering"},
		{ID: "22EC014", Name: "Diya Patel", BirthDate: d(2003, time.April, 22), CountryCode: "+91", MobileNumber: "9123456780", FieldOfStudy: "Electronics", Branch: "Communication Systems"},
		{ID: "22ME031", Name: "Kabir Singh", BirthDate: d(2004, time.July, 9), CountryCode: "+91", MobileNumber: "9988776655", FieldOfStudy: "Mechanical", Branch: "Thermal Engineering"},
		{ID: "22CS045", Name: "Ananya Iyer", BirthDate: d(2003, time.October, 3), CountryCode: "+91", MobileNumber: "9012345678", FieldOfStudy: "Computer Science", Branch: "Data Science"},
		{ID: "22CE052", Name: "Rohan Gupta", BirthDate: d(2004, time.February, 29), CountryCode: "+91", MobileNumber: "9345678901", FieldOfStudy: "Civil", Branch: "Structural Engineering"},
		{ID: "22EE067", Name: "Meera Nair", BirthDate: d(2003, time.December, 31), CountryCode: "+91", MobileNumber: "9456789012", FieldOfStudy: "Electrical", Branch: "Power Systems"},
	}
}

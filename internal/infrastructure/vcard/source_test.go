package vcard

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/pkg/logger"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVCF = "BEGIN:VCARD\r\n" +
	"VERSION:4.0\r\n" +
	"UID:22CS001\r\n" +
	"FN:Aarav Sharma\r\n" +
	"BDAY:2004-01-15\r\n" +
	"TEL;TYPE=cell:+91 9876543210\r\n" +
	"ORG:Computer Science;Software Engineering\r\n" +
	"END:VCARD\r\n" +
	"BEGIN:VCARD\r\n" +
	"VERSION:3.0\r\n" +
	"FN:No Birthday\r\n" +
	"END:VCARD\r\n" +
	"BEGIN:VCARD\r\n" +
	"VERSION:3.0\r\n" +
	"FN:Basic Date\r\n" +
	"BDAY:19900314\r\n" +
	"END:VCARD\r\n"

func TestSource_FetchAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.vcf")
	require.NoError(t, os.WriteFile(path, []byte(sampleVCF), 0o644))

	people, err := NewSource(path, logger.NewNop()).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 2)

	aarav := people[0]
	assert.Equal(t, "22CS001", aarav.ID)
	assert.Equal(t, "Aarav Sharma", aarav.Name)
	assert.Equal(t, time.Date(2004, time.January, 15, 0, 0, 0, 0, time.UTC), aarav.BirthDate)
	assert.Equal(t, "+91", aarav.CountryCode)
	assert.Equal(t, "9876543210", aarav.MobileNumber)
	assert.Equal(t, "Computer Science", aarav.FieldOfStudy)
	assert.Equal(t, "Software Engineering", aarav.Branch)

	basic := people[1]
	assert.Equal(t, "Basic Date", basic.Name)
	assert.Len(t, basic.ID, 16)
	assert.Equal(t, time.March, basic.BirthDate.Month())
	assert.Equal(t, 14, basic.BirthDate.Day())
}

func TestSource_FetchAllMissingFile(t *testing.T) {
	people, err := NewSource(filepath.Join(t.TempDir(), "none.vcf"), logger.NewNop()).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, people)
}

func TestSource_AppendRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewSource(filepath.Join(t.TempDir(), "roster.vcf"), logger.NewNop())

	in := &entity.Person{
		ID:           "22EC014",
		Name:         "Diya Patel",
		BirthDate:    time.Date(2003, time.April, 22, 0, 0, 0, 0, time.UTC),
		CountryCode:  "+91",
		MobileNumber: "9123456780",
		FieldOfStudy: "Electronics",
		Branch:       "Communication Systems",
	}
	require.NoError(t, src.Append(ctx, in))
	require.NoError(t, src.Append(ctx, &entity.Person{ID: "X2", Name: "Second", BirthDate: time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)}))

	people, err := src.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, in, people[0])
	assert.Equal(t, "X2", people[1].ID)
	assert.Empty(t, people[1].MobileNumber)
}

func TestSplitPhone(t *testing.T) {
	tests := []struct {
		in, cc, number string
	}{
		{"+91 9876543210", "+91", "9876543210"},
		{"+1 555 123 4567", "+1", "5551234567"},
		{"9876543210", "", "9876543210"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cc, number := splitPhone(tt.in)
			assert.Equal(t, tt.cc, cc)
			assert.Equal(t, tt.number, number)
		})
	}
}

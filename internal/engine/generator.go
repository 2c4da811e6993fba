package engine

import (
	"fmt"
	"strings"
	"time"

	"item-store/internal/schema"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	LocaleEnglish = "en"
	LocaleKorean  = "ko"
)

// Generator produces fake text values for derived columns.
type Generator struct {
	faker  *gofakeit.Faker
	locale string
}

// NewGenerator returns a generator for the locale. seed 0 picks a random seed.
func NewGenerator(locale string, seed int64) (*Generator, error) {
	switch locale {
	case LocaleEnglish, LocaleKorean:
	default:
		return nil, fmt.Errorf("unsupported locale: %s", locale)
	}
	return &Generator{faker: gofakeit.New(seed), locale: locale}, nil
}

// GenerateRecord fills every column of the table.
func (g *Generator) GenerateRecord(table *schema.Table) map[string]string {
	fields := make(map[string]string, len(table.Columns))
	for _, c := range table.Columns {
		fields[c.Name] = g.GenerateValue(c)
	}
	return fields
}

// GenerateValue picks a value by the column's meaning; unknown meanings get
// a short run of words.
func (g *Generator) GenerateValue(col *schema.Column) string {
	if g.locale == LocaleKorean {
		if v, ok := g.korean(col.Meaning); ok {
			return v
		}
	}

	f := g.faker
	switch col.Meaning {
	case "name":
		return f.Name()
	case "email":
		return f.Email()
	case "phone":
		return f.Phone()
	case "address":
		return f.Street() + ", " + f.City()
	case "zipcode":
		return f.Zip()
	case "city":
		return f.City()
	case "country":
		return f.Country()
	case "company":
		return f.Company()
	case "url":
		return f.URL()
	case "title":
		return strings.TrimSuffix(f.Sentence(3), ".")
	case "description":
		return f.Sentence(8)
	case "date":
		return f.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).Format("2006-01-02")
	default:
		return f.Sentence(3)
	}
}

func (g *Generator) korean(meaning string) (string, bool) {
	f := g.faker
	switch meaning {
	case "name":
		return f.RandomString(LastNames) + f.RandomString(FirstNames), true
	case "phone":
		return fmt.Sprintf("010-%04d-%04d", f.Number(0, 9999), f.Number(0, 9999)), true
	case "address":
		return fmt.Sprintf("%s %s %s %d번길",
			f.RandomString(Cities), f.RandomString(Districts), f.RandomString(Streets), f.Number(1, 100)), true
	case "city":
		return f.RandomString(Cities), true
	case "country":
		return "대한민국", true
	case "company":
		return f.RandomString(Companies), true
	case "description":
		return f.RandomString(NoteSubjects) + " " + f.RandomString(NoteActions), true
	}
	return "", false
}

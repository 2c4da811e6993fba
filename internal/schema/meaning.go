package schema

import "strings"

var abbreviations = map[string]string{
	"nm": "name", "fname": "name", "lname": "name", "fullname": "name",
	"mail": "email", "e-mail": "email",
	"tel": "phone", "hp": "phone", "ph": "phone", "mobile": "phone", "cell": "phone",
	"addr": "address", "st": "street", "zip": "zipcode", "post": "zipcode",
	"desc": "description", "memo": "note", "comment": "note", "remark": "note",
	"msg": "message", "txt": "text", "tit": "title", "subj": "subject",
	"url": "url", "web": "url", "site": "url",
	"co": "company", "org": "company", "corp": "company",
	"dt": "date", "ymd": "date",
}

// meaningKeywords is checked in order; the first keyword contained in the
// decoded column name decides the meaning.
var meaningKeywords = []struct {
	keyword string
	meaning string
}{
	{"email", "email"},
	{"phone", "phone"},
	{"zipcode", "zipcode"},
	{"address", "address"},
	{"street", "address"},
	{"company", "company"},
	{"city", "city"},
	{"country", "country"},
	{"url", "url"},
	{"title", "title"},
	{"subject", "title"},
	{"note", "description"},
	{"description", "description"},
	{"message", "description"},
	{"text", "description"},
	{"date", "date"},
	{"name", "name"},
}

// AnalyzeMeaning guesses what a text column holds from its name, e.g.
// "contact_tel" -> "phone". Unknown names decode to their words joined by spaces.
func AnalyzeMeaning(colName string) string {
	n := strings.ToLower(strings.TrimSpace(colName))

	parts := strings.FieldsFunc(n, func(r rune) bool {
		return r == '_' || r == ' ' || r == '-' || r == '.'
	})
	decoded := make([]string, 0, len(parts))
	for _, part := range parts {
		if full, ok := abbreviations[part]; ok {
			decoded = append(decoded, full)
		} else {
			decoded = append(decoded, part)
		}
	}
	joined := strings.Join(decoded, " ")

	for _, k := range meaningKeywords {
		if strings.Contains(joined, k.keyword) {
			return k.meaning
		}
	}
	return joined
}

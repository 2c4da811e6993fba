package schema

// PrimaryKey is the synthetic auto-incrementing key every derived table carries.
const PrimaryKey = "id"

// TextType is the only inferred column type.
const TextType = "text"

type Table struct {
	Name    string
	Columns []*Column
}

type Column struct {
	Name     string
	DataType string
	Meaning  string // 컬럼명 분석으로 파악된 의미 (예: "phone", "email")
}

// ColumnNames returns the non-id column names in header order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the table carries a column with exactly this name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Source is a seed file read once at startup.
type Source struct {
	Path   string
	Header []string // 원본 헤더 (id 포함)
	Lines  []string // 헤더 이후의 데이터 라인
}

// 리포트용 구조체
type LoadResult struct {
	TableName string
	Seeded    bool // false: 테이블에 이미 데이터가 있어 건너뜀
	Total     int  // 시드 파일의 데이터 라인 수
	Inserted  int
	Skipped   int
	Actual    int
	Status    string
	ErrorMsg  string
}

package domain

// DepartmentCode is an angle-bracket delimited organisation code such as "<D10>".
type DepartmentCode string

// Department pairs a code with its human readable abbreviation.
type Department struct {
	Code         DepartmentCode `json:"code"`
	Abbreviation string         `json:"abbreviation"`
}

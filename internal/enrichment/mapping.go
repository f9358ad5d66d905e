package enrichment

import (
	"sort"

	"github.com/spec-kit/department-enricher/internal/domain"
)

// departmentMapping resolves department codes to abbreviations. It is never
// written after package initialisation, so concurrent reads need no locking.
var departmentMapping = map[domain.DepartmentCode]string{
	"<D1>":    "AGO",
	"<D2>":    "CO",
	"<D3>":    "BIS",
	"<D4>":    "DCLG",
	"<D5>":    "DCMS",
	"<D6>":    "DfE",
	"<D7>":    "Defra",
	"<D8>":    "DFID",
	"<D9>":    "DFT",
	"<D10>":   "DWP",
	"<D11>":   "DECC",
	"<D12>":   "DH",
	"<D13>":   "FCO",
	"<D15>":   "HMT",
	"<D16>":   "HO",
	"<D17>":   "MOD",
	"<D18>":   "MOJ",
	"<D19>":   "NIO",
	"<D20>":   "OAG",
	"<D25>":   "HMRC",
	"<D102>":  "FSA",
	"<OT532>": "No 10",
	"<OT537>": "ODPM",
}

// LookupDepartment returns the abbreviation for a known code.
func LookupDepartment(code domain.DepartmentCode) (string, bool) {
	abbr, ok := departmentMapping[code]
	return abbr, ok
}

// ResolveDepartment returns the abbreviation for code, or the code itself
// when it is not in the mapping.
func ResolveDepartment(code domain.DepartmentCode) string {
	if abbr, ok := departmentMapping[code]; ok {
		return abbr
	}
	return string(code)
}

// Departments lists the full mapping ordered by code.
func Departments() []domain.Department {
	out := make([]domain.Department, 0, len(departmentMapping))
	for code, abbr := range departmentMapping {
		out = append(out, domain.Department{Code: code, Abbreviation: abbr})
	}
	sort.Slice(out, func(i, j int) bool {
		return lessCode(out[i].Code, out[j].Code)
	})
	return out
}

// lessCode orders codes by prefix, then by numeric suffix, so <D2> sorts before <D10>.
func lessCode(a, b domain.DepartmentCode) bool {
	ap, an := splitCode(a)
	bp, bn := splitCode(b)
	if ap != bp {
		return ap < bp
	}
	if an != bn {
		return an < bn
	}
	return a < b
}

func splitCode(code domain.DepartmentCode) (string, int) {
	s := string(code)
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		s = s[1 : len(s)-1]
	}
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	n := 0
	for _, r := range s[i:] {
		n = n*10 + int(r-'0')
	}
	return s[:i], n
}

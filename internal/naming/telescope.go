package naming

import (
	"slices"
	"strings"
)

// arrayRank orders the ALMA array types before lookup: main array, compact
// array, total power.
var arrayRank = map[string]int{
	"12m": 0,
	"7m":  1,
	"tp":  2,
}

// telescopeLookup is keyed by rank-ordered array tokens. The display strings
// match the ALMA and ALMACA collection telescope names.
var telescopeLookup = map[string]string{
	"12m+7m":    "ALMA-7m + ALMA-12m",
	"12m+tp":    "ALMA-12m + ALMA-TP",
	"7m+tp":     "ALMA-7m + ALMA-TP",
	"12m+7m+tp": "ALMA-12m + ALMA-7m + ALMA-TP",
}

// resolveTelescope normalises the array token and looks it up. fold, when
// non-nil, is applied to each part before ranking.
func resolveTelescope(token string, fold func(string) string) (string, bool) {
	parts := strings.Split(token, "+")
	seen := make(map[string]struct{}, len(parts))
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		key := part
		if fold != nil {
			key = fold(part)
		}
		if _, ok := arrayRank[key]; !ok {
			return "", false
		}
		if _, dup := seen[key]; dup {
			return "", false
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return arrayRank[a] - arrayRank[b]
	})
	label, ok := telescopeLookup[strings.Join(keys, "+")]
	return label, ok
}

package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
)

var emailExactPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// MissingFields checks the merged field mapping against the flow's
// required-field declaration and returns human-readable descriptions of
// everything missing or invalid, in declaration order. An empty result is
// the precondition for submitting the flow.
func MissingFields(flow *model.FlowSpec, data map[types.FieldKey]string) []string {
	var missing []string

	for _, fs := range flow.Fields {
		value := strings.TrimSpace(data[fs.Key])

		if value == "" {
			if fs.Required {
				missing = append(missing, fs.Label)
			}
			continue
		}

		switch fs.Kind {
		case types.FieldKindQuantity:
			// Format failure and range failure are distinct and never
			// co-occur for the same value.
			q, err := parseQuantity(value)
			if err != nil {
				missing = append(missing, fs.Label+" (debe ser un número)")
			} else if q <= 0 {
				missing = append(missing, fs.Label+" (debe ser mayor que 0)")
			}

		case types.FieldKindEmail:
			if !emailExactPattern.MatchString(value) {
				missing = append(missing, fs.Label+" (formato inválido)")
			}
		}
	}

	return missing
}

// parseQuantity parses a decimal number accepting comma as the decimal
// separator.
func parseQuantity(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

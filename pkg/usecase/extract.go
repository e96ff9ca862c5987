package usecase

import (
	"regexp"
	"strings"

	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/model/config"
	"github.com/selec-labs/selecbot/pkg/domain/types"
	"github.com/selec-labs/selecbot/pkg/utils/normalize"
)

var (
	emailTokenPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	taxIDPattern      = regexp.MustCompile(`\d{1,3}\.\d{3}\.\d{3}-[0-9kK]`)
	rutWordPattern    = regexp.MustCompile(`\brut\b`)
	numberPattern     = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
)

// Extractor turns one free-form message into a field mapping, merged over
// the session's accumulated data so that corrective follow-up messages can
// resend only the fields that need fixing.
//
// Per line, in order:
//  1. labeled "label: value" parsing against the flow's synonym table,
//  2. heuristics for unlabeled lines, each only filling a still-empty
//     field: email pattern, tax id pattern (or the word "rut"), plausible
//     phone digit count, then keyword-anchored fields.
//
// Lines no step claimed feed the positional fallback (first non-numeric
// line fills the flow's primary text field, the remainder joins into the
// free-text field), and a whole-message numeric scan fills a required,
// still-empty quantity. Given the same accumulated data and message the
// result is identical on every run.
type Extractor struct {
	cfg *config.Bot
}

// NewExtractor creates an extractor honoring the bot's phone digit bounds
func NewExtractor(cfg *config.Bot) *Extractor {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Extractor{cfg: cfg}
}

type candidateLine struct {
	raw      string
	norm     string
	consumed bool
}

// Extract parses the message and returns the merged field mapping. It
// never fails; text that matches nothing is dropped.
func (e *Extractor) Extract(flow *model.FlowSpec, existing map[types.FieldKey]string, message string) map[types.FieldKey]string {
	data := make(map[types.FieldKey]string, len(existing))
	for k, v := range existing {
		data[k] = v
	}

	var lines []*candidateLine
	for _, raw := range strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		lines = append(lines, &candidateLine{raw: raw, norm: normalize.Normalize(raw)})
	}

	e.extractLabeled(flow, data, lines)
	e.extractUnlabeled(flow, data, lines)
	e.extractPositional(flow, data, lines)
	e.extractQuantity(flow, data, message)

	return data
}

// extractLabeled handles "label: value" lines. A matched label overwrites
// the accumulated value, which is what makes corrections work. Lines with
// an unmatched label stay in play for the later steps.
func (e *Extractor) extractLabeled(flow *model.FlowSpec, data map[types.FieldKey]string, lines []*candidateLine) {
	for _, line := range lines {
		label, value, found := strings.Cut(line.raw, ":")
		if !found {
			continue
		}

		normLabel := normalize.Normalize(label)
		for _, rule := range flow.LabelRules {
			if !rule.Matches(normLabel) {
				continue
			}
			if v := strings.TrimSpace(value); v != "" {
				data[rule.Key] = v
			}
			line.consumed = true
			break
		}
	}
}

// extractUnlabeled applies the pattern heuristics to unconsumed lines,
// filling only still-empty fields. The precedence within one line is
// email, tax id, phone, then keyword-anchored fields.
func (e *Extractor) extractUnlabeled(flow *model.FlowSpec, data map[types.FieldKey]string, lines []*candidateLine) {
	for _, line := range lines {
		if line.consumed {
			continue
		}

		if flow.EmailKey != "" && fieldEmpty(data, flow.EmailKey) {
			if token := emailTokenPattern.FindString(line.raw); token != "" {
				data[flow.EmailKey] = token
				line.consumed = true
				continue
			}
		}

		if flow.TaxIDKey != "" && fieldEmpty(data, flow.TaxIDKey) {
			if token := taxIDPattern.FindString(line.raw); token != "" {
				data[flow.TaxIDKey] = token
				line.consumed = true
				continue
			}
			if rutWordPattern.MatchString(line.norm) {
				tokens := strings.Fields(line.raw)
				if len(tokens) > 0 {
					data[flow.TaxIDKey] = tokens[len(tokens)-1]
					line.consumed = true
					continue
				}
			}
		}

		if flow.PhoneKey != "" && fieldEmpty(data, flow.PhoneKey) && !strings.Contains(line.raw, "@") {
			digits := nonDigitPattern.ReplaceAllString(line.raw, "")
			if len(digits) >= e.cfg.PhoneMinDigits && len(digits) <= e.cfg.PhoneMaxDigits {
				data[flow.PhoneKey] = strings.TrimSpace(line.raw)
				line.consumed = true
				continue
			}
		}

		for _, rule := range flow.KeywordRules {
			if !fieldEmpty(data, rule.Key) {
				continue
			}
			if value, ok := keywordValue(line.norm, rule.Keywords); ok {
				if value == "" {
					value = strings.TrimSpace(line.raw)
				}
				data[rule.Key] = value
				line.consumed = true
				break
			}
		}
	}
}

// keywordValue returns the text after the first matching keyword, trimmed
// of separators. The value comes from the normalized line so that keyword
// offsets are well defined regardless of accents in the raw text.
func keywordValue(normLine string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		idx := strings.Index(normLine, kw)
		if idx < 0 {
			continue
		}
		value := normLine[idx+len(kw):]
		value = strings.Trim(value, " \t:;-–.")
		return value, true
	}
	return "", false
}

// extractPositional assigns leftover lines: the first line that is not
// mostly numeric and has no "@" fills the primary text field, and all
// remaining unconsumed lines join into the free-text field.
func (e *Extractor) extractPositional(flow *model.FlowSpec, data map[types.FieldKey]string, lines []*candidateLine) {
	if flow.PrimaryTextKey != "" && fieldEmpty(data, flow.PrimaryTextKey) {
		for _, line := range lines {
			if line.consumed || mostlyNumeric(line.raw) || strings.Contains(line.raw, "@") {
				continue
			}
			data[flow.PrimaryTextKey] = line.raw
			line.consumed = true
			break
		}
	}

	if flow.FreeTextKey != "" && fieldEmpty(data, flow.FreeTextKey) {
		var rest []string
		for _, line := range lines {
			if !line.consumed {
				rest = append(rest, line.raw)
				line.consumed = true
			}
		}
		if len(rest) > 0 {
			data[flow.FreeTextKey] = strings.Join(rest, " ")
		}
	}
}

// extractQuantity scans the whole original message for the last numeric
// token when the flow requires a quantity that is still empty. Comma is
// accepted as decimal separator.
func (e *Extractor) extractQuantity(flow *model.FlowSpec, data map[types.FieldKey]string, message string) {
	if flow.QuantityKey == "" || !fieldEmpty(data, flow.QuantityKey) {
		return
	}
	spec := flow.Field(flow.QuantityKey)
	if spec == nil || !spec.Required {
		return
	}

	numbers := numberPattern.FindAllString(message, -1)
	if len(numbers) > 0 {
		data[flow.QuantityKey] = numbers[len(numbers)-1]
	}
}

func fieldEmpty(data map[types.FieldKey]string, key types.FieldKey) bool {
	return strings.TrimSpace(data[key]) == ""
}

// mostlyNumeric reports whether at least half of the line's non-space
// characters are digits.
func mostlyNumeric(s string) bool {
	var digits, total int
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		total++
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return total > 0 && digits*2 >= total
}

package validate

import (
	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/platform/errors/i18n"
)

// Verdict is the answer of a rule. The zero value admits the action.
type Verdict struct {
	Code     apperrors.Code
	Message  string
	Metadata map[string]string
}

// Valid admits an action.
var Valid = Verdict{}

// OK reports whether the verdict admits the action.
func (v Verdict) OK() bool {
	return v.Code == ""
}

// Err returns the verdict as a domain error, or nil when it admits.
func (v Verdict) Err() error {
	if v.OK() {
		return nil
	}
	return apperrors.WithMetadata(v.Code, v.Message, v.Metadata)
}

// reject builds a verdict from code and alternating metadata keys and values.
// The message is the base locale rendering of the code.
func reject(code apperrors.Code, kv ...string) Verdict {
	var md map[string]string
	if len(kv) > 1 {
		md = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			md[kv[i]] = kv[i+1]
		}
	}
	return Verdict{
		Code:     code,
		Message:  i18n.GetCatalog(i18n.BaseLocale).Format(string(code), md),
		Metadata: md,
	}
}

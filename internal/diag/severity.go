package diag

// Severity orders diagnostics; Bag.HasErrors compares against SevError.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, lower, sarif string }{
	SevInfo:    {"INFO", "info", "note"},
	SevWarning: {"WARNING", "warning", "warning"},
	SevError:   {"ERROR", "error", "error"},
}

// String is the upper-case header form used by pretty and JSON output.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// Label is the lower-case form of the short single-line output.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s].lower
	}
	return "info"
}

// SarifLevel maps the severity onto a SARIF result level.
func (s Severity) SarifLevel() string {
	if int(s) < len(severityNames) {
		return severityNames[s].sarif
	}
	return "note"
}

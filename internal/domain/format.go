package domain

// Format is the validator output format selected with --format.
type Format string

const (
	// FormatNone means no recognized format was configured. No --format
	// argument is passed and the output is classified as plain text.
	FormatNone Format = ""
	FormatGNU  Format = "gnu"
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ValidFormats enumerates the formats the validator understands.
var ValidFormats = []Format{FormatGNU, FormatXML, FormatJSON, FormatText}

// ParseFormat reports whether s names one of the recognized formats.
func ParseFormat(s string) (Format, bool) {
	for _, f := range ValidFormats {
		if string(f) == s {
			return f, true
		}
	}
	return FormatNone, false
}

// Structured reports whether the validator emits a parseable message list.
func (f Format) Structured() bool { return f == FormatJSON }

func (f Format) String() string {
	if f == FormatNone {
		return "none"
	}
	return string(f)
}

package domain

// Option keys accepted in a validator configuration map.
const (
	OptionErrorsOnly = "errors-only"
	OptionFormat     = "format"
	OptionHTML       = "html"
	OptionNoStream   = "no-stream"
	OptionVerbose    = "verbose"
)

// OptionKeys lists the recognized keys in argument order.
var OptionKeys = []string{
	OptionErrorsOnly,
	OptionFormat,
	OptionHTML,
	OptionNoStream,
	OptionVerbose,
}

// Options is a resolved validator configuration.
type Options struct {
	ErrorsOnly bool   `json:"errors-only" yaml:"errors-only"`
	Format     Format `json:"format"      yaml:"format"`
	HTML       bool   `json:"html"        yaml:"html"`
	NoStream   bool   `json:"no-stream"   yaml:"no-stream"`
	Verbose    bool   `json:"verbose"     yaml:"verbose"`
}

// DefaultOptions returns the configuration used when the caller sets nothing.
func DefaultOptions() Options {
	return Options{Format: FormatGNU}
}

// NormalizeOptions overlays raw over DefaultOptions. A caller value fully
// replaces the default for the same key. Boolean keys are enabled only by a
// bool true; a format outside ValidFormats resolves to FormatNone. Keys not
// in OptionKeys are ignored.
func NormalizeOptions(raw map[string]any) Options {
	opts := DefaultOptions()

	for key, value := range raw {
		switch key {
		case OptionFormat:
			s, _ := value.(string)
			opts.Format, _ = ParseFormat(s)
		case OptionErrorsOnly:
			opts.ErrorsOnly = isTrue(value)
		case OptionHTML:
			opts.HTML = isTrue(value)
		case OptionNoStream:
			opts.NoStream = isTrue(value)
		case OptionVerbose:
			opts.Verbose = isTrue(value)
		}
	}

	return opts
}

// UnknownOptionKeys returns the keys of raw that NormalizeOptions ignores.
func UnknownOptionKeys(raw map[string]any) []string {
	var unknown []string
	for key := range raw {
		if !isOptionKey(key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

// Args translates the options into validator arguments. Iteration follows
// OptionKeys; every call returns a new slice.
func (o Options) Args() []string {
	args := make([]string, 0, len(OptionKeys)+1)

	for _, key := range OptionKeys {
		switch key {
		case OptionFormat:
			if o.Format != FormatNone {
				args = append(args, "--"+OptionFormat, string(o.Format))
			}
		default:
			if o.flag(key) {
				args = append(args, "--"+key)
			}
		}
	}

	return args
}

// Map renders the options back into a configuration map.
func (o Options) Map() map[string]any {
	return map[string]any{
		OptionErrorsOnly: o.ErrorsOnly,
		OptionFormat:     string(o.Format),
		OptionHTML:       o.HTML,
		OptionNoStream:   o.NoStream,
		OptionVerbose:    o.Verbose,
	}
}

func (o Options) flag(key string) bool {
	switch key {
	case OptionErrorsOnly:
		return o.ErrorsOnly
	case OptionHTML:
		return o.HTML
	case OptionNoStream:
		return o.NoStream
	case OptionVerbose:
		return o.Verbose
	}
	return false
}

func isTrue(value any) bool {
	b, ok := value.(bool)
	return ok && b
}

func isOptionKey(key string) bool {
	for _, k := range OptionKeys {
		if k == key {
			return true
		}
	}
	return false
}

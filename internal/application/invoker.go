package application

import "github.com/vnupipe/vnupipe/internal/domain"

// Invoker assembles validator command lines. The argument template is
// computed once; every Invocation copies it before appending file paths.
type Invoker struct {
	settings domain.ValidatorSettings
	template []string
}

// NewInvoker builds the argument template from opts.
func NewInvoker(opts domain.Options, settings domain.ValidatorSettings) *Invoker {
	if settings.Java == "" {
		settings.Java = domain.DefaultValidatorSettings().Java
	}
	if settings.Jar == "" {
		settings.Jar = domain.DefaultValidatorSettings().Jar
	}
	if len(settings.JVMArgs) == 0 {
		settings.JVMArgs = domain.DefaultJVMArgs
	}
	return &Invoker{settings: settings, template: opts.Args()}
}

// Template returns a copy of the option arguments shared by every file.
func (iv *Invoker) Template() []string {
	return append([]string(nil), iv.template...)
}

func (iv *Invoker) Settings() domain.ValidatorSettings { return iv.settings }

// Invocation returns the command that validates f:
// <jvm args> -jar <jar> <option args> <history paths>.
func (iv *Invoker) Invocation(f *domain.File) domain.Invocation {
	argv := make([]string, 0, len(iv.settings.JVMArgs)+2+len(iv.template)+len(f.History))
	argv = append(argv, iv.settings.JVMArgs...)
	argv = append(argv, "-jar", iv.settings.Jar)
	argv = append(argv, iv.template...)
	argv = append(argv, f.History...)

	return domain.Invocation{Java: iv.settings.Java, Argv: argv, Timeout: iv.settings.Timeout}
}

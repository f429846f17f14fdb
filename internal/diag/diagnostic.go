package diag

// Diagnostic is one finding about a type shape. Type carries the shape's
// printed reference ("ns.Name"); Member optionally narrows the finding to
// one member. Remedy is the human-readable way out.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Type     string
	Member   string
	Remedy   string
}

func New(sev Severity, code Code, typeRef, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Type:     typeRef,
		Message:  msg,
	}
}

func NewWarning(code Code, typeRef, msg string) Diagnostic {
	return New(SevWarning, code, typeRef, msg)
}

func NewError(code Code, typeRef, msg string) Diagnostic {
	return New(SevError, code, typeRef, msg)
}

// WithMember narrows the diagnostic to one member.
func (d Diagnostic) WithMember(name string) Diagnostic {
	d.Member = name
	return d
}

// WithRemedy attaches the suggested way out.
func (d Diagnostic) WithRemedy(remedy string) Diagnostic {
	d.Remedy = remedy
	return d
}

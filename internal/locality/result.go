package locality

// Method names the cascade step that produced a resolution.
type Method string

const (
	MethodNone        Method = "unresolved"
	MethodRawWord     Method = "raw_word"
	MethodEquivalence Method = "equivalence"
	MethodShortExact  Method = "short_exact"
	MethodExact       Method = "exact"
	MethodContainment Method = "containment"
	MethodReverseWord Method = "reverse_word"
	MethodApproximate Method = "approximate"
	MethodToken       Method = "token"
)

// Result is either a resolved official name or Unresolved. Unresolved is a normal outcome,
// not an error.
type Result struct {
	name   string
	method Method
}

func resolved(name string, m Method) Result { return Result{name: name, method: m} }

func unresolved() Result { return Result{method: MethodNone} }

// OK reports whether the text resolved to a gazetteer entry.
func (r Result) OK() bool { return r.name != "" }

// Name returns the official name, or "" when unresolved.
func (r Result) Name() string { return r.name }

// Method returns the step that resolved the text.
func (r Result) Method() Method { return r.method }

func (r Result) String() string {
	if !r.OK() {
		return "Unresolved"
	}
	return r.name
}

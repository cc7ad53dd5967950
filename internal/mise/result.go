package mise

// ErrorKind classifies why a command did not succeed.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "executable_not_found"
	KindTimeout    ErrorKind = "timeout"
	KindCancelled  ErrorKind = "cancelled"
	KindExit       ErrorKind = "exit_status"
	KindSpawn      ErrorKind = "spawn"
)

// Result is the outcome of a single mise invocation.
// Success is true iff ReturnCode is 0 and the process was not killed.
type Result struct {
	Success    bool      `json:"success"`
	Output     string    `json:"output"`
	Error      string    `json:"error"`
	ReturnCode int       `json:"return_code"`
	Kind       ErrorKind `json:"-"`
}

func failure(kind ErrorKind, code int, msg string) Result {
	return Result{
		Success:    false,
		Error:      msg,
		ReturnCode: code,
		Kind:       kind,
	}
}

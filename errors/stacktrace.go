package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTrace returns the first stack trace found in the cause chain of err.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// Format supports the following verbs.
//   %s  the error message
//   %v  the error message followed by [file:line] of where it was created
//   %+v the full stack trace followed by the error message
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		io.WriteString(s, e.Error())
		return
	}
	stack := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", stack)
		io.WriteString(s, e.Error())
		return
	}
	io.WriteString(s, e.Error())
	if len(stack) > 0 {
		file, line := frameLocation(stack[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, " [%s:%d]", file, line)
	}
}

// internalFrames are skipped at the top of a stack trace, so that the first
// frame is where the error was created.
var internalFrames = []string{
	"escrowd/errors.Wrap",
	"escrowd/errors.Wrapf",
	"escrowd/errors.Field",
	"escrowd/errors.(*Error).New",
	"escrowd/errors.(*Error).Newf",
	"runtime.",
}

func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && frameIn(st[0], internalFrames...) {
		st = st[1:]
	}
	for len(st) > 1 && frameIn(st[len(st)-1], "runtime.", "testing.tRunner") {
		st = st[:len(st)-1]
	}
	return st
}

func frameIn(f errors.Frame, names ...string) bool {
	fn := runtime.FuncForPC(uintptr(f) - 1)
	if fn == nil {
		return false
	}
	for _, name := range names {
		if strings.Contains(fn.Name(), name) {
			return true
		}
	}
	return false
}

// frameLocation uses the same pc adjustment as pkg/errors.
func frameLocation(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

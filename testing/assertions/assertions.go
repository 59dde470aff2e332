// Package assertions defines the assertion core shared by the assert and
// require packages. Every function takes the failure logger to invoke, so
// the wrappers can choose between Errorf and Fatalf.
package assertions

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/d4l3k/messagediff.v1"
)

// AssertionTestingTB exposes the testing.TB methods the wrappers need.
type AssertionTestingTB interface {
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

type assertionLoggerFn func(string, ...interface{})

// Equal compares values using the comparison operator.
func Equal(loggerFn assertionLoggerFn, expected, actual interface{}, msg ...interface{}) {
	if expected != actual {
		fail(loggerFn, fmt.Sprintf("want %v (%T), got %v (%T)", expected, expected, actual, actual), msg...)
	}
}

// NotEqual asserts that two values differ under the comparison operator.
func NotEqual(loggerFn assertionLoggerFn, expected, actual interface{}, msg ...interface{}) {
	if expected == actual {
		fail(loggerFn, fmt.Sprintf("values are equal: %v (%T)", actual, actual), msg...)
	}
}

// DeepEqual compares values using reflect.DeepEqual.
func DeepEqual(loggerFn assertionLoggerFn, expected, actual interface{}, msg ...interface{}) {
	if !reflect.DeepEqual(expected, actual) {
		diff, _ := messagediff.PrettyDiff(expected, actual)
		fail(loggerFn, fmt.Sprintf("values differ: %s", diff), msg...)
	}
}

// NoError asserts that the error is nil.
func NoError(loggerFn assertionLoggerFn, err error, msg ...interface{}) {
	if err != nil {
		fail(loggerFn, fmt.Sprintf("unexpected error: %v", err), msg...)
	}
}

// ErrorContains asserts that the error is non-nil and its message contains
// the wanted string.
func ErrorContains(loggerFn assertionLoggerFn, want string, err error, msg ...interface{}) {
	if err == nil || !strings.Contains(err.Error(), want) {
		fail(loggerFn, fmt.Sprintf("want error containing %q, got %v", want, err), msg...)
	}
}

// NotNil asserts that the value is neither nil nor a typed nil.
func NotNil(loggerFn assertionLoggerFn, obj interface{}, msg ...interface{}) {
	if isNil(obj) {
		fail(loggerFn, "unexpected nil value", msg...)
	}
}

// LogsContain checks whether the wanted string appears (flag=true) or does
// not appear (flag=false) in the entries captured by the logrus test hook.
func LogsContain(loggerFn assertionLoggerFn, hook *test.Hook, want string, flag bool, msg ...interface{}) {
	entries := hook.AllEntries()
	logs := make([]string, 0, len(entries))
	match := false
	for _, e := range entries {
		line, err := e.String()
		if err != nil {
			fail(loggerFn, fmt.Sprintf("could not format log entry: %v", err), msg...)
			return
		}
		if strings.Contains(line, want) {
			match = true
		}
		logs = append(logs, line)
	}
	if flag && !match {
		fail(loggerFn, fmt.Sprintf("log %q not found in %v", want, logs), msg...)
	} else if !flag && match {
		fail(loggerFn, fmt.Sprintf("unwanted log %q found", want), msg...)
	}
}

func fail(loggerFn assertionLoggerFn, detail string, msg ...interface{}) {
	_, file, line, _ := runtime.Caller(3)
	loggerFn("%s:%d %s: %s", filepath.Base(file), line, parseMsg(msg...), detail)
}

func parseMsg(msg ...interface{}) string {
	if len(msg) == 0 {
		return "Assertion failed"
	}
	if format, ok := msg[0].(string); ok && len(msg) > 1 {
		return fmt.Sprintf(format, msg[1:]...)
	}
	args := msg
	return fmt.Sprint(args...)
}

// isNil reports whether obj is nil, including typed nils boxed in an
// interface.
func isNil(obj interface{}) bool {
	if obj == nil {
		return true
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return value.IsNil()
	}
	return false
}

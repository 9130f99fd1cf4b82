package validation

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

// Callable is user code applied to a single cell. Returning an error, or
// panicking, marks the cell as failing.
type Callable func(v any) error

type callChecker struct {
	fn      Callable
	message string
}

// CanCall checks that fn accepts every cell without an error or a panic.
// WithName sets the name shown in the default message; otherwise the Go
// function name is used.
func CanCall(fn Callable, opts ...Option) (*Rule, error) {
	if fn == nil {
		return nil, ErrNilCallable
	}
	o := newOptions(opts)
	name := o.name
	if name == "" {
		name = funcName(fn)
	}
	return NewRule(callChecker{
		fn:      fn,
		message: fmt.Sprintf("raised an exception when the callable %s was called on it", name),
	}, opts...), nil
}

// CanConvert checks that every cell converts to the given concrete kind with
// table.Convert.
func CanConvert(kind table.Kind, opts ...Option) (*Rule, error) {
	if !kind.IsConcrete() {
		return nil, fmt.Errorf("%w: %s is not a concrete kind", ErrInvalidKind, kind)
	}
	return NewRule(callChecker{
		fn: func(v any) error {
			_, err := table.Convert(v, kind)
			return err
		},
		message: fmt.Sprintf("cannot be converted to type %s", kind),
	}, opts...), nil
}

func (c callChecker) Validate(col *table.Column) (Mask, error) {
	return Elementwise(col, c.call), nil
}

// call is the one place a user failure is contained: an error or panic from
// fn only fails the current cell.
func (c callChecker) call(v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return c.fn(v) == nil
}

func (c callChecker) DefaultMessage() string {
	return c.message
}

func funcName(fn any) string {
	if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
		return f.Name()
	}
	return fmt.Sprintf("%T", fn)
}

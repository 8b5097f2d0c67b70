package scene

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalTimeout is the hard limit for evaluating one scene file.
const EvalTimeout = 5 * time.Second

// EvalError is a parse or runtime error in scene source.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// evaluate runs source in a fresh sandbox on its own goroutine. Builtins
// write into b. On timeout the goroutine is abandoned and its result is
// dropped; b must not be used afterwards.
func evaluate(source string, b *builder, timeout time.Duration) error {
	ch := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- fmt.Errorf("panic during evaluation: %v", r)
			}
		}()
		ch <- run(source, b)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-ch:
		return err
	case <-timer.C:
		return fmt.Errorf("evaluation timed out after %s", timeout)
	}
}

func run(source string, b *builder) error {
	if strings.TrimSpace(source) == "" {
		return nil
	}

	// The sandbox has no filesystem or system access.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, b)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return parseZygomysError(err)
	}
	if _, err := env.Run(); err != nil {
		return parseZygomysError(err)
	}
	return nil
}

var (
	// zygomys reports "Error on line N: ..." for parse failures.
	linePattern      = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

func parseZygomysError(err error) EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return EvalError{Line: line, Message: strings.TrimSpace(m[2])}
		}
	}
	return EvalError{Message: strings.TrimSpace(msg)}
}

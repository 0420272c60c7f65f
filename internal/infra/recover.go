package infra

import (
	"fmt"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Recoverable runs f and turns a panic into an error, so a single bad update
// cannot take the dispatch loop down with it.
func Recoverable(id string, f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			at := identifyPanic()
			log.WithFields(log.Fields{"job": id, "at": at}).Errorf("job panics: %v", r)
			err = fmt.Errorf("job %s panicked at %s: %v", id, at, r)
		}
	}()
	return f()
}

func identifyPanic() string {
	var name, file string
	var line int
	var pc [16]uintptr

	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			break
		}
	}

	switch {
	case name != "":
		return fmt.Sprintf("%v:%v", name, line)
	case file != "":
		return fmt.Sprintf("%v:%v", file, line)
	}

	return fmt.Sprintf("pc:%x", pc)
}

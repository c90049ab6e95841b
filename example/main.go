package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/CherkashinEvgeny/goaspect"
	"github.com/CherkashinEvgeny/goaspect/aspect"
)

var (
	verboseFlag  = flag.Bool("verbose", false, "Log every call")
	greetingFlag = flag.String("greeting", "Hello", "Greeting used by the greeter")
)

func main() {
	flag.Parse()
	logger := zap.NewNop()
	if *verboseFlag {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Printf("ERROR: failed to create logger\n\t%v\n", err)
			os.Exit(1)
		}
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(logger, flag.Args()); err != nil {
		logger.Error("example failed", zap.Error(err))
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger, names []string) error {
	m, err := aspect.Bind(&LocalMap{items: map[string]any{}})
	if err != nil {
		return errors.Wrap(err, "bind map")
	}
	if _, err = aspect.Weave(m, nil, aspect.Logger(logger), "Set", "Get", "Delete"); err != nil {
		return errors.Wrap(err, "weave logger")
	}
	_, err = goaspect.Handle(m, "Delete", func(_ goaspect.Target, err error, args []any) {
		logger.Warn("delete ignored", zap.Any("args", args), zap.Error(err))
	})
	if err != nil {
		return errors.Wrap(err, "weave handle")
	}

	greeter := goaspect.NewObject().Define("greet", func(_ goaspect.Target, args ...any) (any, error) {
		return fmt.Sprintf("%s, %v", *greetingFlag, args[0]), nil
	})
	original, err := goaspect.Before(greeter, "greet", func(_ goaspect.Target, args []any) (goaspect.BeforeResult, error) {
		return goaspect.ReplaceArg(strings.ToUpper(fmt.Sprint(args[0]))), nil
	})
	if err != nil {
		return errors.Wrap(err, "weave before")
	}

	if len(names) == 0 {
		names = []string{"ann"}
	}
	for _, name := range names {
		greeting, err := greeter.Call("greet", name)
		if err != nil {
			return err
		}
		if _, err = m.Call("Set", name, greeting); err != nil {
			return err
		}
		value, err := m.Call("Get", name)
		if err != nil {
			return err
		}
		fmt.Println(value)
		if _, err = m.Call("Delete", name); err != nil {
			return err
		}
	}
	// second delete fails and is swallowed by the handle advice
	_, err = m.Call("Delete", names[0])
	if err != nil {
		return err
	}

	greeter.Assign("greet", original)
	greeting, err := greeter.Call("greet", names[0])
	if err != nil {
		return err
	}
	fmt.Println(greeting)
	return nil
}

type LocalMap struct {
	items map[string]any
}

func (m *LocalMap) Set(key string, value any) error {
	m.items[key] = value
	return nil
}

func (m *LocalMap) Get(key string) (any, error) {
	value, found := m.items[key]
	if !found {
		return nil, errors.Errorf("key='%s' not found", key)
	}
	return value, nil
}

func (m *LocalMap) Delete(key string) error {
	if _, found := m.items[key]; !found {
		return errors.Errorf("key='%s' not found", key)
	}
	delete(m.items, key)
	return nil
}

package commands

import (
	"strconv"
	"strings"

	"github.com/Iron-Ham/panelkit/internal/errors"
)

// ParseArgs turns "key=value" words into Args. Values "true" and "false"
// become booleans, integers become ints and everything else stays a string.
func ParseArgs(words []string) (Args, error) {
	args := make(Args, len(words))
	for _, word := range words {
		key, value, ok := strings.Cut(word, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.NewValidationError("argument must be key=value").
				WithField("args").
				WithValue(word)
		}
		args[key] = parseValue(value)
	}
	return args, nil
}

func parseValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}

// SplitLine splits a prompt line such as "panel/general/open tab=style" into
// the command name and its parsed arguments.
func SplitLine(line string) (string, Args, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, errors.NewValidationError("empty command").WithField("command")
	}
	args, err := ParseArgs(fields[1:])
	if err != nil {
		return "", nil, err
	}
	return fields[0], args, nil
}

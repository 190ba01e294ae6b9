package commands

import (
	"fmt"
	"strconv"
)

// parseRange reads the optional "[start end] | [end]" positional arguments.
func parseRange(args []string, defaultStart, defaultEnd int) (start, end int, err error) {
	start, end = defaultStart, defaultEnd

	parse := func(arg string) (int, error) {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return 0, fmt.Errorf("'%s' is not a molecule number", arg)
		}
		return n, nil
	}

	switch len(args) {
	case 0:
	case 1:
		end, err = parse(args[0])
		if err != nil {
			return 0, 0, err
		}
	case 2:
		start, err = parse(args[0])
		if err != nil {
			return 0, 0, err
		}
		end, err = parse(args[1])
		if err != nil {
			return 0, 0, err
		}
	default:
		return 0, 0, fmt.Errorf("expected at most 2 arguments, got %d", len(args))
	}

	if start > end {
		return 0, 0, fmt.Errorf("start %d is after end %d", start, end)
	}
	return start, end, nil
}

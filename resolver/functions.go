package resolver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/samber/mo"

	"github.com/cyp0633/libtimex/calendar"
)

var (
	ErrUnknownFunction = errors.New("unknown calendar function")
	ErrArgument        = errors.New("invalid argument")
)

// function evaluates one calendar function over already evaluated arguments.
type function func(env *callEnv, args []string) mo.Result[string]

// callEnv carries the base date fields of the value being resolved.
type callEnv struct {
	date  string
	year  string
	month string
	day   string
}

func (e *callEnv) eval(c *callExpr) mo.Result[string] {
	fn, ok := functions[c.Name]
	if !ok {
		return mo.Err[string](fmt.Errorf("%w: %s", ErrUnknownFunction, c.Name))
	}

	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		if a.Call == nil {
			args = append(args, *a.Literal)
			continue
		}
		v, err := e.eval(a.Call).Get()
		if err != nil {
			return mo.Err[string](err)
		}
		args = append(args, v)
	}
	return fn(e, args)
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

var functions = map[string]function{
	// funcDateCalc wraps the actual call in values emitted by the extraction
	// grammar.
	"funcDateCalc": func(_ *callEnv, args []string) mo.Result[string] {
		if err := arity("funcDateCalc", args, 1); err != nil {
			return mo.Err[string](err)
		}
		return mo.Ok(args[0])
	},
	"EasterSunday": func(_ *callEnv, args []string) mo.Result[string] {
		year, offset, err := yearAndOffset("EasterSunday", args)
		if err != nil {
			return mo.Err[string](err)
		}
		return mo.Ok(calendar.FormatDate(calendar.EasterSunday(year).AddDate(0, 0, offset)))
	},
	"EasterSundayOrthodox": func(_ *callEnv, args []string) mo.Result[string] {
		year, offset, err := yearAndOffset("EasterSundayOrthodox", args)
		if err != nil {
			return mo.Err[string](err)
		}
		return mo.Ok(calendar.FormatDate(calendar.EasterSundayOrthodox(year).AddDate(0, 0, offset)))
	},
	"ShroveTideOrthodox": func(_ *callEnv, args []string) mo.Result[string] {
		if err := arity("ShroveTideOrthodox", args, 1); err != nil {
			return mo.Err[string](err)
		}
		year, err := parseYear(args[0])
		if err != nil {
			return mo.Err[string](err)
		}
		return mo.Ok(calendar.FormatISOWeek(calendar.ShroveTideOrthodox(year)))
	},
	"WeekdayRelativeTo": func(_ *callEnv, args []string) mo.Result[string] {
		if err := arity("WeekdayRelativeTo", args, 4); err != nil {
			return mo.Err[string](err)
		}
		date, err := calendar.ParseDate(args[0])
		if err != nil {
			return mo.Err[string](fmt.Errorf("%w: %w", ErrArgument, err))
		}
		weekday, err := strconv.Atoi(args[1])
		if err != nil || weekday < 1 || weekday > 7 {
			return mo.Err[string](fmt.Errorf("%w: weekday %q", ErrArgument, args[1]))
		}
		number, err := strconv.Atoi(args[2])
		if err != nil {
			return mo.Err[string](fmt.Errorf("%w: occurrence %q", ErrArgument, args[2]))
		}
		countItself, err := strconv.ParseBool(args[3])
		if err != nil {
			return mo.Err[string](fmt.Errorf("%w: count-itself flag %q", ErrArgument, args[3]))
		}
		return mo.Ok(calendar.FormatDate(calendar.WeekdayRelativeTo(date, weekday, number, countItself)))
	},
	// decadeCalc keeps the century of the base year and the first digit of n.
	"decadeCalc": func(env *callEnv, args []string) mo.Result[string] {
		if err := arity("decadeCalc", args, 1); err != nil {
			return mo.Err[string](err)
		}
		n := args[0]
		if n == "" {
			return mo.Err[string](fmt.Errorf("%w: empty decade", ErrArgument))
		}
		return mo.Ok(env.year[:2] + n[:1])
	},
}

func arity(name string, args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgument, name, want, len(args))
	}
	return nil
}

func parseYear(s string) (int, error) {
	if !yearPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: year %q", ErrArgument, s)
	}
	return strconv.Atoi(s)
}

func yearAndOffset(name string, args []string) (int, int, error) {
	if err := arity(name, args, 2); err != nil {
		return 0, 0, err
	}
	year, err := parseYear(args[0])
	if err != nil {
		return 0, 0, err
	}
	offset, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: day offset %q", ErrArgument, args[1])
	}
	return year, offset, nil
}

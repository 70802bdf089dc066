// Package flagx lets each config layer parse only the flags it owns out of
// a shared argument list.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs returns the subset of args naming one of the allowed flags,
// together with their values. Names may be given with one or two leading
// dashes and match either form in args, so "-c" also keeps "--c=x".
//
// A flag takes the following argument as its value unless that argument
// starts with a dash or the flag is listed in bools. Bool flags only take a
// value in the "-v=false" form. Scanning stops at "--".
func FilterArgs(args []string, allowed []string, bools ...string) []string {
	names := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		names[trimDashes(f)] = false
	}
	for _, f := range bools {
		names[trimDashes(f)] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}

		name, _, hasValue := strings.Cut(trimDashes(arg), "=")
		isBool, ok := names[name]
		if !ok {
			continue
		}
		out = append(out, arg)
		if hasValue || isBool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

func trimDashes(s string) string {
	if strings.HasPrefix(s, "--") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "-")
}

// ConfigFileFlag returns the -c/-config value from os.Args, or "".
func ConfigFileFlag() string {
	return ConfigFileFlagFrom(os.Args[1:])
}

// ConfigFileFlagFrom is ConfigFileFlag over argv. When the flag repeats, the
// last occurrence wins.
func ConfigFileFlagFrom(argv []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "config file")
	fs.StringVar(&path, "c", "", "config file (short)")
	_ = fs.Parse(FilterArgs(argv, []string{"c", "config"}))

	return path
}

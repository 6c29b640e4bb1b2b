// Package flagx lets several components share os.Args, each parsing only the
// flags it owns.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in valueFlags or boolFlags, in their
// original order, and drops everything else.
//
// Accepted forms:
//
//	-c conf.json      value flag followed by a separate value
//	-config=conf.json any flag with an inline value
//	-r                bool flag; the next argument is never consumed
//
// A value flag followed by something that looks like another flag is kept
// without a value, leaving the error to flag.FlagSet.Parse.
func FilterArgs(args []string, valueFlags []string, boolFlags ...string) []string {
	takesValue := make(map[string]bool, len(valueFlags)+len(boolFlags))
	for _, f := range valueFlags {
		takesValue[f] = true
	}
	for _, f := range boolFlags {
		takesValue[f] = false
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := takesValue[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		needsValue, ok := takesValue[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if needsValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlag returns the path given with -c or -config, or an empty
// string when neither is present. Last occurrence wins.
func ConfigFileFlag() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to JSON config file")
	fs.StringVar(&path, "c", "", "Path to JSON config file (short)")
	_ = fs.Parse(args)

	return path
}

// Package envflag supplies flag defaults from the environment, optionally
// populated from a .env file.
package envflag

import (
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name looked up by this package.
const Prefix = "KUHN5_"

// Load reads the given .env files (or ./.env if none are given) into the
// environment. Variables that are already set are not overridden, and a
// missing file is not an error.
func Load(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil && !os.IsNotExist(err) {
		glog.Warningf("Did not load environment file: %v", err)
	}
}

// String returns the value of $KUHN5_<name>, or def if it is unset.
func String(name, def string) string {
	if v, ok := lookup(name); ok {
		return v
	}

	return def
}

// Int returns $KUHN5_<name> parsed as an int, or def if it is unset or invalid.
func Int(name string, def int) int {
	v, ok := lookup(name)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		glog.Warningf("Ignoring %s%s=%q: %v", Prefix, name, v, err)
		return def
	}

	return n
}

// Int64 returns $KUHN5_<name> parsed as an int64, or def if it is unset or invalid.
func Int64(name string, def int64) int64 {
	v, ok := lookup(name)
	if !ok {
		return def
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		glog.Warningf("Ignoring %s%s=%q: %v", Prefix, name, v, err)
		return def
	}

	return n
}

// Float returns $KUHN5_<name> parsed as a float64, or def if it is unset or invalid.
func Float(name string, def float64) float64 {
	v, ok := lookup(name)
	if !ok {
		return def
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		glog.Warningf("Ignoring %s%s=%q: %v", Prefix, name, v, err)
		return def
	}

	return f
}

// Bool returns $KUHN5_<name> interpreted as a boolean, or def if it is unset.
func Bool(name string, def bool) bool {
	v, ok := lookup(name)
	if !ok {
		return def
	}

	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(Prefix + name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

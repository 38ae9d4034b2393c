package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Load   bool
	Query  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("GBF_DEBUG_DECODE")
	d.Load = boolEnv("GBF_DEBUG_LOAD")
	d.Query = boolEnv("GBF_DEBUG_QUERY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Load() bool {
	return d.Load
}
func Query() bool {
	return d.Query
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}

//go:build !profile

package profiler

const Enabled = false

func Init(capacity int) {}

func Start(name string) func() { return func() {} }

func Dump(path string) error { return ErrDisabled }

func DumpTemp() (string, error) { return "", ErrDisabled }

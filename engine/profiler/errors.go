// Package profiler records nested timing scopes and writes them as a
// speedscope evented profile. Build with -tags profile to enable it;
// otherwise every call is a no-op.
package profiler

import "errors"

var (
	ErrDisabled = errors.New("profiler: built without the profile tag")
	ErrNoEvents = errors.New("profiler: no events recorded")
)

// DumpName is the file DumpTemp writes inside os.TempDir().
const DumpName = "lumen.speedscope.json"

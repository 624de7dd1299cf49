// Package options contains the program options.
package options

// Default values of the behavior options.
const (
	DefaultRate    = 60
	DefaultScale   = 10
	DefaultKeyHold = 10

	MaxRate = 1_000_000
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Wav    string `flag:"wav" usage:"record the sound output to a .wav file"`
	Memviz string `flag:"memviz" usage:"write a Graphviz dump of the machine state after a headless run"`
}

// Flags contains behavior options.
type Flags struct {
	Rate      int    `flag:"rate" usage:"instruction cycles per second" default:"60"`
	Cycles    int    `flag:"cycles" usage:"stop after the given number of cycles, 0 runs until stopped"`
	Scale     int    `flag:"scale" usage:"window scale factor of the desktop front end" default:"10"`
	KeyHold   int    `flag:"keyhold" usage:"cycles a key stays pressed in the terminal front end" default:"10"`
	Seed      uint64 `flag:"seed" usage:"seed of the random number generator, 0 uses the current time"`
	Statsview string `flag:"statsview" usage:"serve runtime statistics on the given address"`

	Headless  bool `flag:"headless" usage:"run without front end and print the final state"`
	Terminal  bool `flag:"terminal" usage:"render to the terminal instead of a window"`
	Mute      bool `flag:"mute" usage:"disable sound output"`
	Debug     bool `flag:"debug" usage:"enable debug logging"`
	Trace     bool `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Quiet     bool `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

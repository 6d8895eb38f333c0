package config

import "github.com/docker/go-units"

// SizeArgument accepts human-readable sizes ("500MB", "1g") in config
// values and CLI arguments.
type SizeArgument struct {
	Size int64 `arg:"" help:"size in bytes"`
}

func (s *SizeArgument) UnmarshalText(text []byte) (err error) {
	s.Size, err = units.FromHumanSize(string(text))
	return
}

package cmd

import (
	"github.com/spf13/pflag"

	"github.com/marcus/overlay/pkg/overlay/animation"
)

var _ pflag.Value = (*kindFlag)(nil)

// kindFlag is a --strategy value. The zero value is unset.
type kindFlag struct {
	kind animation.Kind
	set  bool
}

func (f *kindFlag) String() string {
	if !f.set {
		return ""
	}
	return f.kind.String()
}

func (f *kindFlag) Set(s string) error {
	k, err := animation.ParseKind(s)
	if err != nil {
		return err
	}
	f.kind, f.set = k, true
	return nil
}

func (f *kindFlag) Type() string { return "strategy" }

// addStrategyFlag registers f as --strategy with the -s shorthand.
func addStrategyFlag(fs *pflag.FlagSet, f *kindFlag, usage string) {
	fs.VarP(f, "strategy", "s", usage)
}

// or returns the flag's kind, or def when unset.
func (f *kindFlag) or(def animation.Kind) animation.Kind {
	if f.set {
		return f.kind
	}
	return def
}

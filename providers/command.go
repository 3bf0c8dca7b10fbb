package providers

import (
	"strings"

	"github.com/alessio/shellescape"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Command is an argument vector. The first element is the executable.
type Command []string

func (c Command) Executable() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Args returns everything after the executable.
func (c Command) Args() []string {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// String returns the command as it could be typed into a shell.
func (c Command) String() string {
	return shellescape.QuoteCommand(c)
}

// Equal reports whether both commands have the same tokens in the same order.
func (c Command) Equal(other Command) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Index returns the position of the first token equal to s, or -1.
func (c Command) Index(s string) int {
	for i, a := range c {
		if a == s {
			return i
		}
	}
	return -1
}

// Contains reports whether the tokens appear consecutively in the command.
func (c Command) Contains(tokens ...string) bool {
	if len(tokens) == 0 {
		return true
	}
	return strings.Contains("\x00"+strings.Join(c, "\x00")+"\x00", "\x00"+strings.Join(tokens, "\x00")+"\x00")
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	*b = append(*b, args...)
}

func (b *commandBuilder) addIf(condition bool, args ...string) {
	if condition {
		b.add(args...)
	}
}

// addOptional adds the flag followed by the value, if the value is defined.
func (b *commandBuilder) addOptional(flag string, value ldvalue.OptionalString) {
	if value.IsDefined() {
		b.add(flag, value.StringValue())
	}
}

func (b commandBuilder) command() Command {
	return append(Command(nil), b...)
}

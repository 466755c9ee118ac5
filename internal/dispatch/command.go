package dispatch

import "fmt"

// Kind identifies what an invocation asks for.
type Kind int

const (
	KindHelp Kind = iota
	KindVersion
	KindInit
	KindAdd
	KindList
	KindPublish
	KindLogin
	KindPassthrough
)

var kindNames = map[Kind]string{
	KindHelp:        "help",
	KindVersion:     "version",
	KindInit:        "init",
	KindAdd:         "add",
	KindList:        "list",
	KindPublish:     "publish",
	KindLogin:       "login",
	KindPassthrough: "passthrough",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLocal reports whether the kind is handled in-process by a subcommand.
func (k Kind) IsLocal() bool {
	switch k {
	case KindInit, KindAdd, KindList, KindPublish, KindLogin:
		return true
	}
	return false
}

// localCommands are the subcommands implemented in this binary.
var localCommands = map[string]Kind{
	"init":    KindInit,
	"add":     KindAdd,
	"list":    KindList,
	"publish": KindPublish,
	"login":   KindLogin,
}

// Command is one parsed invocation. For local kinds Args holds the
// arguments after the subcommand name; for Passthrough it holds the entire
// original vector.
type Command struct {
	Kind Kind
	Args []string
}

// Parse classifies args (without the program name).
func Parse(args []string) Command {
	if len(args) == 0 {
		return Command{Kind: KindHelp}
	}
	switch first := args[0]; first {
	case "--help", "-h":
		return Command{Kind: KindHelp}
	case "--version", "-v":
		return Command{Kind: KindVersion}
	default:
		if k, ok := localCommands[first]; ok {
			return Command{Kind: k, Args: clone(args[1:])}
		}
	}
	return Command{Kind: KindPassthrough, Args: clone(args)}
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

package repl

import (
	"github.com/chzyer/readline"
)

// newCompleter builds tab completion for commands, field names and formats
func (r *REPL) newCompleter() *readline.PrefixCompleter {
	fieldItems := make([]readline.PrefixCompleterInterface, 0, len(fieldOrder))
	for _, name := range fieldOrder {
		fieldItems = append(fieldItems, readline.PcItem(name))
	}

	formatItems := make([]readline.PrefixCompleterInterface, 0)
	for _, name := range r.renderers.Names() {
		formatItems = append(formatItems, readline.PcItem(name))
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(r.commands)+len(fieldOrder))
	for _, name := range r.CommandNames() {
		switch name {
		case ":unset":
			items = append(items, readline.PcItem(name, fieldItems...))
		case ":format":
			items = append(items, readline.PcItem(name, formatItems...))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	for _, name := range fieldOrder {
		items = append(items, readline.PcItem(name+" = "))
	}

	return readline.NewPrefixCompleter(items...)
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/modelcatalog/internal/client/client"
	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

const helpText = `Available commands:
  models [field=v1,v2 ...]            search models
  tests [field=v1,v2 ...]             search tests
  model <id|alias>                    show a model with its versions
  test <id|alias>                     show a test with its versions
  register model|test                 create a model or test
  edit model|test <id|alias>          edit a model or test
  addversion model|test <id|alias>    add a version
  editversion model|test <id|alias> <instance-id>
  results model|test <id|alias>       list validation results
  instresults model|test <instance-id> ...
  result <id>                         show one result in full
  comments <id|alias>                 list comments
  comment <id|alias>                  add a comment
  editcomment <id|alias> <comment-id> edit a comment
  submit <id|alias> <comment-id>      publish a draft comment
  deletecomment <id|alias> <comment-id>
  vocab                               show filter vocabulary
  projects                            show editable projects
  stats                               show cache and request statistics
  refresh                             toggle bypassing the cache
  exit | quit                         leave the program`

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a stub.
type execIface interface {
	Search(ctx context.Context, kind models.Kind, filters models.Filters) error
	Show(ctx context.Context, kind models.Kind, ident string) error
	Register(ctx context.Context, kind models.Kind) error
	Edit(ctx context.Context, kind models.Kind, ident string) error
	AddVersion(ctx context.Context, kind models.Kind, ident string) error
	EditVersion(ctx context.Context, kind models.Kind, ident, instanceID string) error
	Results(ctx context.Context, kind models.Kind, ident string) error
	InstanceResults(ctx context.Context, kind models.Kind, instanceIDs []string) error
	Result(ctx context.Context, id string) error
	Comments(ctx context.Context, subject string) error
	Comment(ctx context.Context, subject string) error
	EditComment(ctx context.Context, subject, commentID string, submit bool) error
	DeleteComment(ctx context.Context, subject, commentID string) error
	Vocab(ctx context.Context) error
	Projects(ctx context.Context) error
	Stats(ctx context.Context) error
	ToggleRefresh() bool
}

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit"/"quit" or cancellation of ctx. Errors returned by handlers are
// printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("catalog%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			printlnFn()
			return
		}
		parts := splitArgs(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		report(dispatch(ctx, a, cmd, args))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		printlnFn(helpText)

	case "models", "tests":
		filters, err := ParseFilters(args)
		if err != nil {
			return err
		}
		kind, _ := models.ParseKind(cmd)
		return a.Search(ctx, kind, filters)

	case "model", "test":
		if len(args) != 1 {
			return usage(cmd + " <id|alias>")
		}
		kind, _ := models.ParseKind(cmd)
		return a.Show(ctx, kind, args[0])

	case "register":
		kind, err := kindArg(args, 1, "register model|test")
		if err != nil {
			return err
		}
		return a.Register(ctx, kind)

	case "edit", "addversion", "results":
		kind, err := kindArg(args, 2, cmd+" model|test <id|alias>")
		if err != nil {
			return err
		}
		switch cmd {
		case "edit":
			return a.Edit(ctx, kind, args[1])
		case "addversion":
			return a.AddVersion(ctx, kind, args[1])
		default:
			return a.Results(ctx, kind, args[1])
		}

	case "editversion":
		kind, err := kindArg(args, 3, "editversion model|test <id|alias> <instance-id>")
		if err != nil {
			return err
		}
		return a.EditVersion(ctx, kind, args[1], args[2])

	case "instresults":
		if len(args) < 2 {
			return usage("instresults model|test <instance-id> ...")
		}
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		return a.InstanceResults(ctx, kind, args[1:])

	case "result":
		if len(args) != 1 {
			return usage("result <id>")
		}
		return a.Result(ctx, args[0])

	case "comments", "comment":
		if len(args) != 1 {
			return usage(cmd + " <id|alias>")
		}
		if cmd == "comments" {
			return a.Comments(ctx, args[0])
		}
		return a.Comment(ctx, args[0])

	case "editcomment", "submit", "deletecomment":
		if len(args) != 2 {
			return usage(cmd + " <id|alias> <comment-id>")
		}
		if cmd == "deletecomment" {
			return a.DeleteComment(ctx, args[0], args[1])
		}
		return a.EditComment(ctx, args[0], args[1], cmd == "submit")

	case "vocab":
		return a.Vocab(ctx)

	case "projects":
		return a.Projects(ctx)

	case "stats":
		return a.Stats(ctx)

	case "refresh":
		if a.ToggleRefresh() {
			printlnFn("Refresh mode on: reads bypass the cache")
		} else {
			printlnFn("Refresh mode off")
		}

	default:
		printlnFn("Unknown command:", cmd)
	}
	return nil
}

type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

func usage(s string) error { return usageError(s) }

func kindArg(args []string, n int, syntax string) (models.Kind, error) {
	if len(args) != n {
		return "", usage(syntax)
	}
	return models.ParseKind(args[0])
}

func report(err error) {
	switch {
	case err == nil:
	case client.IsCanceled(err):
		printlnFn("Canceled")
	default:
		printlnFn("Error:", err)
	}
}

// ParseFilters turns "field=v1,v2" arguments into filters. Repeating a field
// adds to its values.
func ParseFilters(args []string) (models.Filters, error) {
	filters := models.Filters{}
	for _, arg := range args {
		field, values, ok := strings.Cut(arg, "=")
		if !ok || field == "" || values == "" {
			return nil, fmt.Errorf("filter %q: expected field=value[,value...]", arg)
		}
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				filters[field] = append(filters[field], v)
			}
		}
	}
	return filters, nil
}

// splitArgs splits line on whitespace. Double quotes group words, so
// species="Rattus norvegicus" is one argument.
func splitArgs(line string) []string {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, cur.String())
	}
	return args
}

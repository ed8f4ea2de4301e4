package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ShowStories(ctx context.Context) error
	ShowFavorites(ctx context.Context) error
	ShowOwnStories(ctx context.Context) error
	Submit(ctx context.Context) error
	Delete(ctx context.Context, storyID string) error
	Favorite(ctx context.Context, storyID string) error
	Unfavorite(ctx context.Context, storyID string) error
	Star(ctx context.Context, storyID string) error
}

const (
	helpAnonymous = "Available commands: (l)stories, signup, login, exit"
	helpLoggedIn  = "Available commands: (l)stories, favorites, mine, submit, delete <id>, fav <id>, unfav <id>, star <id>, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the hackorsnooze CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                 — show available commands
//	  - stories | all | l    — reload and list all stories
//	  - signup | login       — create an account / authenticate
//	  - exit | quit          — leave the program
//
//	Logged in:
//	  - favorites | favs     — list favorite stories
//	  - mine                 — list own stories
//	  - submit               — post a story
//	  - delete <id>          — delete an own story
//	  - fav | unfav <id>     — add / remove a favorite
//	  - star <id>            — toggle a favorite
//	  - whoami               — show the current user
//	  - logout               — log out and forget the login
//
// Any errors returned by command handlers are ignored here; handlers print
// their own user-facing messages. This keeps the REPL loop resilient and
// focused on I/O.
//
// Command prompts read from the same reader, so the loop never buffers
// past the current line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("hns (%s) > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "stories", "all", "l":
			_ = a.ShowStories(ctx)

		case "favorites", "favs":
			_ = a.ShowFavorites(ctx)

		case "mine":
			_ = a.ShowOwnStories(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "delete", "fav", "unfav", "star":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "delete":
				_ = a.Delete(ctx, args[0])
			case "fav":
				_ = a.Favorite(ctx, args[0])
			case "unfav":
				_ = a.Unfavorite(ctx, args[0])
			case "star":
				_ = a.Star(ctx, args[0])
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

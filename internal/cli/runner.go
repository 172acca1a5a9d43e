package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/lostfound/internal/api"
	"github.com/idilsaglam/lostfound/internal/form"
	"github.com/idilsaglam/lostfound/internal/model"
	"github.com/idilsaglam/lostfound/internal/page"
	"github.com/idilsaglam/lostfound/internal/session"
	"github.com/idilsaglam/lostfound/internal/tui"
	"github.com/idilsaglam/lostfound/internal/ui"
)

// Options carries what main built once: one API client, one session store.
type Options struct {
	Client  *api.Client
	Session *session.Store
	Log     *zap.Logger
	Stdin   io.Reader // password prompts; os.Stdin when nil

	in *bufio.Reader
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Log == nil {
		opt.Log = zap.NewNop()
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	opt.in = bufio.NewReader(opt.Stdin)
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(ctx, opt)

	case "add":
		fs := newFlagSet("add")
		place := fs.String("place", "", "where the item was lost")
		if err := fs.Parse(a); err != nil || fs.NArg() == 0 {
			ui.Fail("usage: lostfound add [--place P] <title...>")
			return 2
		}
		return doAdd(ctx, opt, strings.Join(fs.Args(), " "), *place)

	case "search":
		return doSearch(ctx, opt, strings.Join(a, " "))

	case "login":
		fs := newFlagSet("login")
		password := fs.String("password", "", "password (prompted when empty)")
		if err := fs.Parse(a); err != nil || fs.NArg() != 1 {
			ui.Fail("usage: lostfound login [--password P] <email>")
			return 2
		}
		return doLogin(ctx, opt, fs.Arg(0), *password)

	case "signup":
		fs := newFlagSet("signup")
		password := fs.String("password", "", "password (prompted when empty)")
		if err := fs.Parse(a); err != nil || fs.NArg() < 2 {
			ui.Fail("usage: lostfound signup [--password P] <email> <name...>")
			return 2
		}
		return doSignup(ctx, opt, fs.Arg(0), strings.Join(fs.Args()[1:], " "), *password)

	case "logout":
		return doLogout(ctx, opt)

	case "profile":
		fs := newFlagSet("profile")
		phone := fs.String("phone", "", "phone number")
		if err := fs.Parse(a); err != nil || fs.NArg() == 0 {
			ui.Fail("usage: lostfound profile [--phone P] <name...>")
			return 2
		}
		return doProfile(ctx, opt, strings.Join(fs.Args(), " "), *phone)

	case "passwd":
		return doPasswd(ctx, opt)

	case "status":
		return doStatus(opt)

	case "whoami":
		fs := newFlagSet("whoami")
		remote := fs.Bool("remote", false, "ask the server (needs a token)")
		if err := fs.Parse(a); err != nil {
			ui.Fail("usage: lostfound whoami [--remote]")
			return 2
		}
		return doWhoAmI(ctx, opt, *remote)

	case "check-email":
		if len(a) != 1 {
			ui.Fail("usage: lostfound check-email <email>")
			return 2
		}
		return doCheckEmail(ctx, opt, a[0])

	case "report":
		return doTUI(ctx, opt, page.RouteReport)

	case "tui":
		path := "/home"
		if len(a) > 0 {
			path = a[0]
		}
		return doTUI(ctx, opt, page.Resolve(path))
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprintf(ui.Stdout, `lostfound - Lost & Found terminal client

Usage:
  lostfound [--api URL] [--theme classic|neon|mono] <subcommand> [args]

Subcommands:
  ls                            List lost items
  add [--place P] <title...>    Register an item, then reload the list
  search <keyword...>           Filter items by title, place or source
  report                        Open the report form
  login [--password P] <email>  Log in (password is prompted when omitted)
  signup [--password P] <email> <name...>
  logout                        Forget the session
  status                        Show the local session
  whoami [--remote]             Print the signed-in user
  profile [--phone P] <name...> Update your name and phone (needs a server token)
  passwd                        Change your password (needs a server token)
  check-email <email>           Ask whether an email is still free
  tui [path]                    Interactive client (/home, /login, /signup, /report, /search)

Environment:
  LOSTFOUND_API_BASE_URL        API root (default http://localhost:8080)

Examples:
  lostfound add --place Library "Black wallet"
  lostfound search umbrella
  lostfound login a@b.com
`)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// exitCode maps an error to 2 for local validation, 1 otherwise.
func exitCode(err error) int {
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		return 2
	}
	return 1
}

// -------------- subcommand impls ----------------

func doList(ctx context.Context, opt Options) int {
	home := page.NewHome(page.NewItems(opt.Client.LostItems, opt.Log), opt.Client.LostItems)
	if err := home.Mount(ctx); err != nil {
		ui.Fail(form.Message(err, page.FallbackLoad))
		return 1
	}
	printItems("Lost & Found", home.Items().Snapshot().Items)
	return 0
}

func doAdd(ctx context.Context, opt Options, title, place string) int {
	home := page.NewHome(page.NewItems(opt.Client.LostItems, opt.Log), opt.Client.LostItems)
	if err := home.Mount(ctx); err != nil {
		ui.Fail(form.Message(err, page.FallbackLoad))
		return 1
	}
	f := form.ItemForm{Title: strings.TrimSpace(title), Place: strings.TrimSpace(place)}
	if err := home.Create(ctx, f); err != nil {
		ui.Fail(form.Message(err, page.FallbackCreate))
		return exitCode(err)
	}
	ui.OK("registered")
	printItems("Lost & Found", home.Items().Snapshot().Items)
	return 0
}

func doSearch(ctx context.Context, opt Options, q string) int {
	s := page.NewSearch(page.NewItems(opt.Client.LostItems, opt.Log))
	if err := s.Mount(ctx); err != nil {
		ui.Fail(form.Message(err, page.FallbackLoad))
		return 1
	}
	title := "Search"
	if q = strings.TrimSpace(q); q != "" {
		title = fmt.Sprintf("Search %q", q)
	}
	printItems(title, s.Results(q))
	return 0
}

func doLogin(ctx context.Context, opt Options, email, password string) int {
	if password == "" {
		pw, err := prompt(opt.in, "Password: ")
		if err != nil {
			ui.Fail("read password: " + err.Error())
			return 1
		}
		password = pw
	}
	out, err := page.NewLogin(opt.Client.Auth, opt.Session, opt.Log).
		Submit(ctx, form.LoginForm{Email: email, Password: password})
	if err != nil {
		ui.Fail(form.Message(err, page.FallbackLogin))
		return exitCode(err)
	}
	ui.OK(out.Notice)
	ui.Hint("Next: lostfound ls")
	return 0
}

func doSignup(ctx context.Context, opt Options, email, name, password string) int {
	if password == "" {
		pw, err := prompt(opt.in, "Password: ")
		if err != nil {
			ui.Fail("read password: " + err.Error())
			return 1
		}
		password = pw
	}
	out, err := page.NewSignup(opt.Client.Auth, opt.Log).
		Submit(ctx, form.SignupForm{Email: email, Password: password, Name: name})
	if err != nil {
		ui.Fail(form.Message(err, page.FallbackSignup))
		return exitCode(err)
	}
	ui.OK(out.Notice)
	ui.Hint("Next: lostfound login " + email)
	return 0
}

func doLogout(ctx context.Context, opt Options) int {
	if !opt.Session.LoggedIn() {
		fmt.Fprintln(ui.Stdout, ui.Dim("not logged in"))
		return 0
	}
	if err := page.NewLogout(opt.Client.Auth, opt.Session, opt.Log).Submit(ctx); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func doStatus(opt Options) int {
	u := opt.Session.User()
	if u == nil {
		fmt.Fprintln(ui.Stdout, ui.Dim("not logged in"))
		fmt.Fprintln(ui.Stdout, "Run: lostfound login <email>")
		return 0
	}
	fmt.Fprintf(ui.Stdout, "email: %s\n", u.Email)
	if u.Token != "" {
		fmt.Fprintln(ui.Stdout, "token: issued by server")
	} else {
		fmt.Fprintln(ui.Stdout, "token: (none)")
	}
	fmt.Fprintf(ui.Stdout, "session file: %s\n", opt.Session.Path())
	fmt.Fprintf(ui.Stdout, "api: %s\n", opt.Client.BaseURL())
	return 0
}

func doWhoAmI(ctx context.Context, opt Options, remote bool) int {
	u := opt.Session.User()
	if u == nil {
		ui.Fail(session.ErrNotLoggedIn.Error() + ". Run: lostfound login <email>")
		return 2
	}
	if !remote {
		fmt.Fprintln(ui.Stdout, u.Email)
		return 0
	}
	email, ok := needToken(opt)
	if !ok {
		return 2
	}
	p, err := opt.Client.Auth.Me(ctx)
	if api.IsStatus(err, http.StatusUnauthorized) {
		ui.Fail("the server rejected the stored token. Run: lostfound login " + email)
		return 1
	}
	if err != nil {
		ui.Fail(form.Message(err, "could not reach the server"))
		return 1
	}
	fmt.Fprintf(ui.Stdout, "%s (%s)\n", p.Email, p.Name)
	return 0
}

// needToken fails unless the session holds a server-issued token.
func needToken(opt Options) (string, bool) {
	u := opt.Session.User()
	if u == nil {
		ui.Fail(session.ErrNotLoggedIn.Error() + ". Run: lostfound login <email>")
		return "", false
	}
	if u.Token == "" {
		ui.Fail("no server token stored; log in again against a server that issues one")
		return "", false
	}
	return u.Email, true
}

func doProfile(ctx context.Context, opt Options, name, phone string) int {
	if _, ok := needToken(opt); !ok {
		return 2
	}
	p, err := opt.Client.Auth.UpdateMe(ctx, model.UpdateProfileRequest{Name: name, Phone: phone})
	if err != nil {
		ui.Fail(form.Message(err, "could not update profile"))
		return 1
	}
	ui.OK(fmt.Sprintf("profile updated: %s (%s)", p.Name, p.Email))
	return 0
}

func doPasswd(ctx context.Context, opt Options) int {
	if _, ok := needToken(opt); !ok {
		return 2
	}
	var f form.PasswordForm
	for _, q := range []struct {
		label string
		dst   *string
	}{
		{"Current password: ", &f.Current},
		{"New password: ", &f.New},
		{"Repeat new password: ", &f.Confirm},
	} {
		v, err := prompt(opt.in, q.label)
		if err != nil {
			ui.Fail("read password: " + err.Error())
			return 1
		}
		*q.dst = v
	}
	if err := f.Validate(); err != nil {
		ui.Fail(form.Message(err, ""))
		return 2
	}
	err := opt.Client.Auth.ChangePassword(ctx, model.ChangePasswordRequest{
		CurrentPassword: f.Current,
		NewPassword:     f.New,
		ConfirmPassword: f.Confirm,
	})
	if err != nil {
		ui.Fail(form.Message(err, "could not change password"))
		return 1
	}
	ui.OK("password changed")
	return 0
}

func doCheckEmail(ctx context.Context, opt Options, email string) int {
	res, err := opt.Client.Auth.CheckEmail(ctx, email)
	if err != nil {
		ui.Fail(form.Message(err, "could not check email"))
		return 1
	}
	msg := res.Message
	if msg == "" {
		msg = "taken"
		if res.Available {
			msg = "available"
		}
	}
	if res.Available {
		ui.OK(msg)
	} else {
		ui.Fail(msg)
	}
	return 0
}

func doTUI(ctx context.Context, opt Options, start page.Route) int {
	err := tui.Run(ctx, tui.Deps{Client: opt.Client, Session: opt.Session, Log: opt.Log}, start)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	return 0
}

// -------------- helpers --------------

func printItems(title string, items []model.LostItem) {
	var lines []string
	lines = append(lines, ui.Header(title, items))
	lines = append(lines, "")
	lines = append(lines, ui.ItemLines(items)...)
	lines = append(lines, "")
	lines = append(lines, ui.Dim("Tip: add with `lostfound add --place Library \"Black wallet\"`"))
	ui.Panel(lines)
}

func prompt(r *bufio.Reader, label string) (string, error) {
	fmt.Fprint(ui.Stdout, label)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

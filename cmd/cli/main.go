// Command teletela is a CLI client for the Teletela storefront backend.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/teletela/storefront/internal/api"
	"github.com/teletela/storefront/internal/auth"
	"github.com/teletela/storefront/internal/cart"
	"github.com/teletela/storefront/internal/config"
	"github.com/teletela/storefront/internal/errs"
	"github.com/teletela/storefront/internal/guard"
	"github.com/teletela/storefront/internal/model"
	"github.com/teletela/storefront/internal/session"
	"github.com/teletela/storefront/internal/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// routes mirrors the storefront's navigation tree; guard metadata lives on
// the leaves.
var routes = []guard.Route{
	{Path: "/login", Public: true},
	{Path: "/cadastro", Public: true},
	{Path: "/recuperar-senha", Public: true},
	{Path: "/carrinho", Public: true},
	{Path: "/", Public: true},
	{Path: "/checkout"},
	{Path: "/perfil", Children: []guard.Route{
		{Path: "/dados"},
		{Path: "/enderecos"},
		{Path: "/pedidos"},
	}},
	{Path: "/adm", Roles: []model.Role{model.RoleAdmin}, Children: []guard.Route{
		{Path: "/:entity", Roles: []model.Role{model.RoleAdmin}},
	}},
}

// app bundles the singletons built once per invocation.
type app struct {
	cfg  config.Config
	log  *zap.Logger
	sess *session.Store
	cart *cart.Store
	api  *api.Client
	auth *auth.Manager
	cep  *api.CEPClient
}

func newApp(cfg config.Config, log *zap.Logger) (*app, error) {
	kv, err := storage.New(cfg.StateDir)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log}
	a.sess = session.New(kv, log)
	a.cart = cart.New(kv, log)

	// The unauthorized hook closes over the manager, which needs the client:
	// resolve the cycle with a late-bound pointer.
	a.api, err = api.New(cfg.APIURL, a.sess, cfg.HTTPTimeout, log, func() {
		if a.auth != nil {
			a.log.Warn("authorization rejected (401/403), clearing session")
			a.auth.Logout()
		}
	})
	if err != nil {
		return nil, err
	}
	a.auth = auth.New(a.api, a.sess, a.cart, log)
	a.auth.Restore()
	a.cep = api.NewCEPClient(cfg.ViaCEPURL, cfg.HTTPTimeout)
	return a, nil
}

// navigate runs the guard chain for a target path, applying the forced-logout
// side effect of a failing auth guard.
func (a *app) navigate(target string) {
	leaf, _ := guard.Match(routes, target)
	if d := guard.Auth(a.sess, leaf, target); !d.Allowed {
		if d.Logout {
			a.auth.Logout()
		}
		fail(fmt.Errorf("login required (would redirect to %s): %w", d.RedirectTo, errs.ErrSessionExpired))
	}
	if d := guard.Role(a.sess, leaf); !d.Allowed {
		fail(fmt.Errorf("access denied for this account (would redirect to %s)", d.RedirectTo))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `teletela CLI
Usage:
  teletela [-api URL] [-state DIR] [-v] <cmd> [args]

Commands:
  version
  register          -u <username> -p <password> -cpf <cpf>
  login             -u <username> -p <password>
  logout
  whoami
  recover-password  -u <username> -cpf <cpf> -p <new password>
  catalog           [-page N] [-size N] [-brand X ...] [-type X ...] [-max-inches N] [-sort F]
  tv                -id <id>
  cart              add|rm|qty|show|clear [args]
  address           list|add|rm|cep [args]
  checkout          -address <id> -method pix|boleto|card [card flags]
  orders                                           (my orders)
  order             -id <id>
  admin             <entity> <verb> [args]         (back office)
`)
	os.Exit(2)
}

func main() {
	apiURL := flag.String("api", "", "backend base URL (overrides env)")
	stateDir := flag.String("state", "", "state dir (overrides env)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *stateDir != "" {
		cfg.StateDir = *stateDir
	}

	log := zap.NewNop()
	if *verbose {
		log, _ = zap.NewDevelopment()
	}
	defer func() { _ = log.Sync() }()

	if cmd == "version" {
		fmt.Printf("teletela %s (%s)\n", version, buildDate)
		return
	}

	a, err := newApp(cfg, log)
	if err != nil {
		fail(err)
	}

	ctx := context.Background()

	switch cmd {
	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		u := fs.String("u", "", "username")
		p := fs.String("p", "", "password")
		cpf := fs.String("cpf", "", "CPF (11 digits)")
		_ = fs.Parse(args)
		profile, err := a.api.Register(ctx, model.RegisterRequest{Username: *u, Password: *p, CPF: *cpf})
		if err != nil {
			fail(err)
		}
		printJSON(profile)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		u := fs.String("u", "", "username")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)
		profile, err := a.auth.Login(ctx, *u, *p)
		if err != nil {
			fail(err)
		}
		fmt.Printf("ok: logged in as %s (%s)\n", profile.Username, profile.Role)

	case "logout":
		a.auth.Logout()
		fmt.Println("ok")

	case "whoami":
		profile := a.auth.Current()
		if profile == nil {
			fmt.Println("not logged in")
			return
		}
		printJSON(profile)

	case "recover-password":
		fs := flag.NewFlagSet("recover-password", flag.ExitOnError)
		u := fs.String("u", "", "username")
		cpf := fs.String("cpf", "", "CPF (11 digits)")
		p := fs.String("p", "", "new password")
		_ = fs.Parse(args)
		if err := a.api.RecoverPassword(ctx, model.RecoverPasswordRequest{
			Username: *u, CPF: *cpf, NewPassword: *p,
		}); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "catalog":
		cmdCatalog(ctx, a, args)
	case "tv":
		cmdTV(ctx, a, args)
	case "cart":
		cmdCart(ctx, a, args)
	case "address":
		cmdAddress(ctx, a, args)
	case "checkout":
		cmdCheckout(ctx, a, args)
	case "orders":
		a.navigate("/perfil/pedidos")
		orders, err := a.api.MyOrders(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(orders)
	case "order":
		fs := flag.NewFlagSet("order", flag.ExitOnError)
		id := fs.Int64("id", 0, "order id")
		_ = fs.Parse(args)
		a.navigate("/adm/pedidos")
		order, err := a.api.Order(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(order)
	case "admin":
		cmdAdmin(ctx, a, args)
	default:
		usage()
	}
}

// ---- helpers ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			fmt.Fprintf(os.Stderr, "error: %s (status %d)\n", apiErr.Message, apiErr.Status)
		} else {
			fmt.Fprintf(os.Stderr, "error: status %d\n", apiErr.Status)
		}
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

// prompt reads one trimmed line from stdin.
func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

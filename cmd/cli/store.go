package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/teletela/storefront/internal/api"
	"github.com/teletela/storefront/internal/checkout"
	"github.com/teletela/storefront/internal/model"
)

// stringList collects repeatable flags (-brand X -brand Y).
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdCatalog(ctx context.Context, a *app, args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 10, "page size")
	maxInches := fs.Float64("max-inches", 0, "max screen size")
	sort := fs.String("sort", "", "sort field")
	var brands, types stringList
	fs.Var(&brands, "brand", "brand filter (repeatable)")
	fs.Var(&types, "type", "screen type filter (repeatable)")
	_ = fs.Parse(args)

	a.navigate("/")
	result, err := a.api.Televisions(ctx, *page, *size, &api.TVFilter{
		Brands: brands, Types: types, MaxInches: *maxInches, Sort: *sort,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("%d of %d televisions (page %d)\n", len(result.Items), result.TotalCount, *page)
	for _, tv := range result.Items {
		fmt.Printf("  #%d  %-30s R$ %9.2f  stock %d\n", tv.ID, tv.Brand+" "+tv.Model, tv.Price, tv.Stock)
	}
}

func cmdTV(ctx context.Context, a *app, args []string) {
	fs := flag.NewFlagSet("tv", flag.ExitOnError)
	id := fs.Int64("id", 0, "television id")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	tv, err := a.api.Television(ctx, *id)
	if err != nil {
		fail(err)
	}
	printJSON(tv)
}

func cmdCart(ctx context.Context, a *app, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "need cart subcommand: add|rm|qty|show|clear")
		os.Exit(1)
	}
	a.navigate("/carrinho")

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		id := fs.Int64("id", 0, "television id")
		_ = fs.Parse(args[1:])
		tv, err := a.api.Television(ctx, *id)
		if err != nil {
			fail(err)
		}
		a.cart.Add(*tv)
		fmt.Printf("added %s %s\n", tv.Brand, tv.Model)
	case "rm":
		fs := flag.NewFlagSet("cart rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "television id")
		_ = fs.Parse(args[1:])
		a.cart.Remove(*id)
		fmt.Println("ok")
	case "qty":
		fs := flag.NewFlagSet("cart qty", flag.ExitOnError)
		id := fs.Int64("id", 0, "television id")
		n := fs.Int("n", 1, "new quantity (<=0 removes)")
		_ = fs.Parse(args[1:])
		a.cart.SetQuantity(*id, *n)
		fmt.Println("ok")
	case "clear":
		a.cart.Clear()
		fmt.Println("ok")
	case "show":
		items := a.cart.Items()
		if len(items) == 0 {
			fmt.Println("cart is empty")
			return
		}
		for _, it := range items {
			fmt.Printf("  #%d  %-30s x%d  R$ %9.2f\n", it.ID, it.Name, it.Quantity, it.Subtotal())
		}
		fmt.Printf("total: R$ %.2f  (namespace %s)\n", a.cart.Total(), a.cart.Namespace())
	default:
		fmt.Fprintln(os.Stderr, "unknown cart subcommand:", args[0])
		os.Exit(1)
	}
}

func cmdAddress(ctx context.Context, a *app, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "need address subcommand: list|add|rm|cep|cities|ensure-city")
		os.Exit(1)
	}
	switch args[0] {
	case "cities":
		cities, err := a.api.Municipalities(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(cities)
	case "ensure-city":
		fs := flag.NewFlagSet("address ensure-city", flag.ExitOnError)
		city := fs.String("city", "", "city name")
		uf := fs.String("uf", "", "state (2 letters)")
		_ = fs.Parse(args[1:])
		m, err := a.api.EnsureMunicipality(ctx, model.MunicipalityCheckRequest{City: *city, State: *uf})
		if err != nil {
			fail(err)
		}
		printJSON(m)
	case "cep":
		fs := flag.NewFlagSet("address cep", flag.ExitOnError)
		cep := fs.String("cep", "", "8-digit CEP")
		_ = fs.Parse(args[1:])
		result, err := a.cep.Lookup(ctx, *cep)
		if err != nil {
			fail(err)
		}
		printJSON(result)
	case "list":
		a.navigate("/perfil/enderecos")
		addrs, err := a.api.MyAddresses(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(addrs)
	case "add":
		a.navigate("/perfil/enderecos")
		fs := flag.NewFlagSet("address add", flag.ExitOnError)
		cep := fs.String("cep", "", "8-digit CEP")
		district := fs.String("district", "", "district")
		number := fs.Int("number", 0, "street number")
		complement := fs.String("complement", "", "complement")
		municipality := fs.Int64("municipality", 0, "municipality id")
		_ = fs.Parse(args[1:])
		addr, err := a.api.CreateAddress(ctx, model.AddressRequest{
			CEP: *cep, District: *district, Number: *number,
			Complement: *complement, MunicipalityID: *municipality,
		})
		if err != nil {
			fail(err)
		}
		printJSON(addr)
	case "rm":
		a.navigate("/perfil/enderecos")
		fs := flag.NewFlagSet("address rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "address id")
		_ = fs.Parse(args[1:])
		if err := a.api.DeleteAddress(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	default:
		fmt.Fprintln(os.Stderr, "unknown address subcommand:", args[0])
		os.Exit(1)
	}
}

// cmdCheckout walks the whole payment flow in one invocation: submit, show
// the payment code, wait for the manual confirmation, then the success
// acknowledgement that finally clears the cart.
func cmdCheckout(ctx context.Context, a *app, args []string) {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	addressID := fs.Int64("address", 0, "delivery address id")
	method := fs.String("method", "pix", "payment method: pix|boleto|card")
	holder := fs.String("card-holder", "", "card holder (card method)")
	number := fs.String("card-number", "", "card number (card method)")
	cvv := fs.String("card-cvv", "", "card cvv (card method)")
	expiry := fs.String("card-expiry", "", "card expiry YYYY-MM-DD (card method)")
	_ = fs.Parse(args)

	a.navigate("/checkout")

	flow := checkout.New(a.api, a.cart, a.log)
	if err := flow.SelectAddress(*addressID); err != nil {
		fail(err)
	}
	fmt.Printf("shipping: R$ %.2f, delivery in %d days\n", flow.ShippingFee(), flow.DeliveryDays())

	var card *model.CardRequest
	if checkout.Method(*method) == checkout.MethodCard {
		card = &model.CardRequest{Holder: *holder, Number: *number, CVV: *cvv, Expiry: *expiry}
	}
	if err := flow.SelectPayment(checkout.Method(*method), card); err != nil {
		fail(err)
	}

	fmt.Printf("order total: R$ %.2f\n", flow.Total())
	if prompt("place order? [y/N] ") != "y" {
		fmt.Println("aborted, cart kept")
		return
	}
	if err := flow.Submit(ctx); err != nil {
		fail(err)
	}

	switch flow.State() {
	case checkout.StatePaymentInitiated:
		if key := flow.PixKey(); key != "" {
			fmt.Println("PIX key:", key)
		}
		if line := flow.BoletoNumber(); line != "" {
			fmt.Println("boleto:", line)
		}
		if prompt("confirm payment? [y/N] ") != "y" {
			fmt.Println("payment pending, cart kept for retry")
			return
		}
		if err := flow.ConfirmPayment(ctx); err != nil {
			fail(err)
		}
	case checkout.StatePaymentConfirmed:
		// card branch paid on submit
	}

	order := flow.Order()
	fmt.Printf("payment confirmed for order #%d\n", order.ID)
	prompt("press enter to finish... ")
	if err := flow.AcknowledgeSuccess(); err != nil {
		fail(err)
	}
	fmt.Println("done, cart cleared")
}

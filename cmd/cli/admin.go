package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/teletela/storefront/internal/api"
	"github.com/teletela/storefront/internal/model"
)

// int64List collects repeatable id flags (-brand 1 -brand 2).
type int64List []int64

func (l *int64List) String() string { return fmt.Sprint([]int64(*l)) }
func (l *int64List) Set(v string) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	*l = append(*l, n)
	return nil
}

// cmdAdmin dispatches the back-office screens. The role guard runs before
// every entity screen, exactly as the browser routes do.
func cmdAdmin(ctx context.Context, a *app, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, `usage: admin <entity> <verb> [args]
entities: brand model manufacturer supplier characteristic employee tv user order`)
		os.Exit(1)
	}
	entity, verb := args[0], args[1]
	rest := args[2:]
	a.navigate("/adm/" + entity)

	switch entity {
	case "brand":
		catalogVerbs(ctx, a.api.Brands, verb, rest, func(fs *flag.FlagSet) func() model.BrandRequest {
			name := fs.String("name", "", "brand name")
			return func() model.BrandRequest { return model.BrandRequest{Name: *name} }
		})
	case "model":
		if verb == "by-brand" {
			fs := flag.NewFlagSet("admin model by-brand", flag.ExitOnError)
			brandID := fs.Int64("brand", 0, "brand id")
			_ = fs.Parse(rest)
			models, err := a.api.ModelsByBrand(ctx, *brandID)
			if err != nil {
				fail(err)
			}
			printJSON(models)
			return
		}
		catalogVerbs(ctx, a.api.Models, verb, rest, func(fs *flag.FlagSet) func() model.TVModelRequest {
			name := fs.String("name", "", "model name")
			brandID := fs.Int64("brand", 0, "brand id")
			return func() model.TVModelRequest { return model.TVModelRequest{Name: *name, BrandID: *brandID} }
		})
	case "manufacturer":
		catalogVerbs(ctx, a.api.Manufacturers, verb, rest, func(fs *flag.FlagSet) func() model.ManufacturerRequest {
			name := fs.String("name", "", "company name")
			cnpj := fs.String("cnpj", "", "CNPJ (14 digits)")
			return func() model.ManufacturerRequest { return model.ManufacturerRequest{Name: *name, CNPJ: *cnpj} }
		})
	case "supplier":
		if verb == "associate-brands" {
			fs := flag.NewFlagSet("admin supplier associate-brands", flag.ExitOnError)
			id := fs.Int64("id", 0, "supplier id")
			var brandIDs int64List
			fs.Var(&brandIDs, "brand", "brand id (repeatable)")
			_ = fs.Parse(rest)
			s, err := a.api.AssociateBrands(ctx, *id, brandIDs)
			if err != nil {
				fail(err)
			}
			printJSON(s)
			return
		}
		catalogVerbs(ctx, a.api.Suppliers, verb, rest, func(fs *flag.FlagSet) func() model.SupplierRequest {
			name := fs.String("name", "", "company name")
			cnpj := fs.String("cnpj", "", "CNPJ (14 digits)")
			email := fs.String("email", "", "contact email")
			return func() model.SupplierRequest {
				return model.SupplierRequest{Name: *name, CNPJ: *cnpj, Email: *email}
			}
		})
	case "characteristic":
		catalogVerbs(ctx, a.api.Characteristics, verb, rest, func(fs *flag.FlagSet) func() model.CharacteristicRequest {
			name := fs.String("name", "", "characteristics name")
			osName := fs.String("os", "", "operating system")
			hdmi := fs.Int("hdmi", 0, "HDMI port count")
			usb := fs.Int("usb", 0, "USB port count")
			smart := fs.Bool("smart", false, "smart TV")
			return func() model.CharacteristicRequest {
				return model.CharacteristicRequest{
					Name: *name, OperatingSystem: *osName,
					HDMIPorts: *hdmi, USBPorts: *usb, SmartTV: *smart,
				}
			}
		})
	case "employee":
		adminEmployee(ctx, a, verb, rest)
	case "tv":
		adminTV(ctx, a, verb, rest)
	case "user":
		adminUser(ctx, a, verb, rest)
	case "order":
		adminOrder(ctx, a, verb, rest)
	default:
		fmt.Fprintln(os.Stderr, "unknown admin entity:", entity)
		os.Exit(1)
	}
}

// catalogVerbs maps the shared verb set onto a CatalogResource. build
// registers the entity's flags and returns the request constructor.
func catalogVerbs[T any, R any](ctx context.Context, res *api.CatalogResource[T, R], verb string, args []string, build func(*flag.FlagSet) func() R) {
	fs := flag.NewFlagSet("admin "+verb, flag.ExitOnError)
	id := fs.Int64("id", 0, "record id")
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 10, "page size")
	makeReq := build(fs)
	_ = fs.Parse(args)

	switch verb {
	case "list":
		result, err := res.List(ctx, *page, *size)
		if err != nil {
			fail(err)
		}
		fmt.Printf("// total: %d\n", result.TotalCount)
		printJSON(result.Items)
	case "inactive":
		result, err := res.Inactive(ctx, *page, *size)
		if err != nil {
			fail(err)
		}
		fmt.Printf("// total: %d\n", result.TotalCount)
		printJSON(result.Items)
	case "get":
		item, err := res.Get(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(item)
	case "add":
		item, err := res.Create(ctx, makeReq())
		if err != nil {
			fail(err)
		}
		printJSON(item)
	case "update":
		if err := res.Update(ctx, *id, makeReq()); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "deactivate":
		if err := res.Deactivate(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "restore":
		if err := res.Restore(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	default:
		fmt.Fprintln(os.Stderr, "unknown verb:", verb)
		os.Exit(1)
	}
}

func adminTV(ctx context.Context, a *app, verb string, args []string) {
	fs := flag.NewFlagSet("admin tv "+verb, flag.ExitOnError)
	id := fs.Int64("id", 0, "television id")
	modelID := fs.Int64("model", 0, "model id")
	resolutionID := fs.Int64("resolution", 0, "resolution id")
	screenTypeID := fs.Int64("screen-type", 0, "screen type id")
	price := fs.Float64("price", 0, "price")
	stock := fs.Int("stock", 0, "stock")
	description := fs.String("description", "", "description")
	height := fs.Float64("height", 0, "height (cm)")
	width := fs.Float64("width", 0, "width (cm)")
	inches := fs.Float64("inches", 0, "screen size")
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 10, "page size")
	imageFile := fs.String("image", "", "image file path")
	_ = fs.Parse(args)

	req := func() model.TelevisionRequest {
		return model.TelevisionRequest{
			ModelID: *modelID, ResolutionID: *resolutionID, ScreenTypeID: *screenTypeID,
			Price: *price, Stock: *stock, Description: *description,
			Height: *height, Width: *width, Inches: *inches,
		}
	}

	switch verb {
	case "inactive":
		result, err := a.api.InactiveTelevisions(ctx, *page, *size)
		if err != nil {
			fail(err)
		}
		fmt.Printf("// total: %d\n", result.TotalCount)
		printJSON(result.Items)
	case "brands":
		brands, err := a.api.TelevisionBrands(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(brands)
	case "add":
		tv, err := a.api.CreateTelevision(ctx, req())
		if err != nil {
			fail(err)
		}
		printJSON(tv)
	case "update":
		if err := a.api.UpdateTelevision(ctx, *id, req()); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "deactivate":
		if err := a.api.DeactivateTelevision(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "restore":
		if err := a.api.RestoreTelevision(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "upload-image":
		f, err := os.Open(*imageFile)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		if err := a.api.UploadTelevisionImage(ctx, *id, filepath.Base(*imageFile), f); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	default:
		fmt.Fprintln(os.Stderr, "unknown verb:", verb)
		os.Exit(1)
	}
}

func adminEmployee(ctx context.Context, a *app, verb string, args []string) {
	fs := flag.NewFlagSet("admin employee "+verb, flag.ExitOnError)
	id := fs.Int64("id", 0, "employee id")
	name := fs.String("name", "", "first name")
	surname := fs.String("surname", "", "surname")
	cpf := fs.String("cpf", "", "CPF (11 digits)")
	email := fs.String("email", "", "email")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (initial, or the target's for update/rm)")
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 10, "page size")
	_ = fs.Parse(args)

	switch verb {
	case "list":
		var result api.Page[model.Employee]
		var err error
		switch {
		case *name != "":
			result, err = a.api.EmployeesByName(ctx, *name, *page, *size)
		case *username != "":
			result, err = a.api.EmployeesByUsername(ctx, *username, *page, *size)
		default:
			result, err = a.api.Employees(ctx, *page, *size)
		}
		if err != nil {
			fail(err)
		}
		fmt.Printf("// total: %d\n", result.TotalCount)
		printJSON(result.Items)
	case "get":
		e, err := a.api.Employee(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(e)
	case "add":
		e, err := a.api.CreateEmployee(ctx, model.EmployeeRequest{
			Name: *name, Surname: *surname, CPF: *cpf, Email: *email,
			Username: *username, Password: *password,
		})
		if err != nil {
			fail(err)
		}
		printJSON(e)
	case "update":
		if err := a.api.UpdateEmployeeData(ctx, model.EmployeeDataUpdate{
			EmployeeID: *id, Name: *name, Surname: *surname, CPF: *cpf,
			Email: *email, TargetPassword: *password,
		}); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "rm":
		if err := a.api.DeleteEmployee(ctx, model.EmployeeDeleteRequest{
			EmployeeID: *id, TargetPassword: *password,
		}); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	default:
		fmt.Fprintln(os.Stderr, "unknown verb:", verb)
		os.Exit(1)
	}
}

func adminUser(ctx context.Context, a *app, verb string, args []string) {
	fs := flag.NewFlagSet("admin user "+verb, flag.ExitOnError)
	id := fs.Int64("id", 0, "user id")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	cpf := fs.String("cpf", "", "CPF (11 digits)")
	page := fs.Int("page", 0, "page number")
	size := fs.Int("size", 10, "page size")
	_ = fs.Parse(args)

	switch verb {
	case "list":
		result, err := a.api.Users(ctx, *page, *size)
		if err != nil {
			fail(err)
		}
		fmt.Printf("// total: %d\n", result.TotalCount)
		printJSON(result.Items)
	case "get":
		var profile *model.Profile
		var err error
		if *username != "" {
			profile, err = a.api.UserByUsername(ctx, *username)
		} else {
			profile, err = a.api.User(ctx, *id)
		}
		if err != nil {
			fail(err)
		}
		printJSON(profile)
	case "add":
		profile, err := a.api.CreateUserAdmin(ctx, model.RegisterRequest{
			Username: *username, Password: *password, CPF: *cpf,
		})
		if err != nil {
			fail(err)
		}
		printJSON(profile)
	case "rm":
		if err := a.api.DeleteUserAdmin(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	default:
		fmt.Fprintln(os.Stderr, "unknown verb:", verb)
		os.Exit(1)
	}
}

func adminOrder(ctx context.Context, a *app, verb string, args []string) {
	fs := flag.NewFlagSet("admin order "+verb, flag.ExitOnError)
	id := fs.Int64("id", 0, "order id")
	username := fs.String("u", "", "username filter")
	status := fs.Int("status", 0, "status id")
	_ = fs.Parse(args)

	switch verb {
	case "list":
		if *username != "" {
			orders, err := a.api.OrdersByUsername(ctx, *username)
			if err != nil {
				fail(err)
			}
			printJSON(orders)
			return
		}
		orders, err := a.api.Orders(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(orders)
	case "status":
		if err := a.api.UpdateOrderStatus(ctx, *id, *status); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "rm":
		if err := a.api.DeleteOrder(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	default:
		fmt.Fprintln(os.Stderr, "unknown verb:", verb)
		os.Exit(1)
	}
}
